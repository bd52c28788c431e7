package statistics

import "fmt"

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// PlayerTeamDays is the time a player has spent on the team they are still on.
type PlayerTeamDays struct {
	PlayerID string
	TeamID   string
	Days     int
}

type PlayerCount struct {
	PlayerID string
	Count    int
}

type CountryCount struct {
	FlagName string
	Count    int
}

type TeamCount struct {
	TeamID string
	Count  int
}

// PairDays is the total time two players spent on the same team.
// Player1 always sorts before Player2.
type PairDays struct {
	Player1 string
	Player2 string
	Days    int
}

// Overview groups every statistics category.
type Overview struct {
	MostDaysInCurrentTeam []PlayerTeamDays
	MostTeams             []PlayerCount
	ActiveByCountry       []CountryCount
	TeamsWithMostPlayers  []TeamCount
	MostTeammates         []PlayerCount
	LongestPairs          []PairDays
}

func ValidateLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("limit must be positive")
	}
	if limit > MaxLimit {
		return fmt.Errorf("limit must not exceed %d", MaxLimit)
	}
	return nil
}
