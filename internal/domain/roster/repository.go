package roster

import (
	"context"
	"time"
)

// Repository describes roster dataset access needed by use cases.
type Repository interface {
	// GetPlayers returns the records of a team whose active period intersects
	// [from, to]. Records without a join date are always included.
	GetPlayers(ctx context.Context, teamID string, from, to time.Time) ([]Player, error)
	// GetPlayer returns every tenure record of a player across all teams.
	GetPlayer(ctx context.Context, playerID string) ([]Player, error)
	GetTeam(ctx context.Context, teamID string) (Team, bool, error)
	ListTeamIDs(ctx context.Context) ([]string, error)
	ListPlayerIDs(ctx context.Context) ([]string, error)
	// Version is the date the dataset was scraped, when known.
	Version(ctx context.Context) (time.Time, bool, error)
	ReplaceDataset(ctx context.Context, dataset Dataset) error
}
