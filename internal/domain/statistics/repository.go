package statistics

import "context"

// Repository computes aggregate statistics over the roster dataset.
//
// Tenure based statistics only use records with clean dates: a parsed join
// date and no approximated or unparsed date text.
type Repository interface {
	PlayersWithMostDaysInCurrentTeam(ctx context.Context, limit int) ([]PlayerTeamDays, error)
	PlayersWithMostTeams(ctx context.Context, limit int) ([]PlayerCount, error)
	ActivePlayersByCountry(ctx context.Context, limit int) ([]CountryCount, error)
	TeamsWithMostPlayers(ctx context.Context, limit int) ([]TeamCount, error)
	PlayersWithMostTeammates(ctx context.Context, limit int) ([]PlayerCount, error)
	TeammatePairsWithMostTime(ctx context.Context, limit int) ([]PairDays, error)
}
