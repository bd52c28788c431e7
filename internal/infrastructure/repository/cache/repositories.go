package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/domain/roster"
	"github.com/riskibarqy/roster-wayback/internal/domain/statistics"
	basecache "github.com/riskibarqy/roster-wayback/internal/platform/cache"
)

const (
	rosterKeyPrefix     = "roster:"
	statisticsKeyPrefix = "statistics:"
)

type RosterRepository struct {
	next  roster.Repository
	cache *basecache.Store
}

func NewRosterRepository(next roster.Repository, cache *basecache.Store) *RosterRepository {
	return &RosterRepository{next: next, cache: cache}
}

func (r *RosterRepository) GetPlayers(ctx context.Context, teamID string, from, to time.Time) ([]roster.Player, error) {
	key := rosterKeyPrefix + "players:" + teamID + ":" + from.Format(time.DateOnly) + ":" + to.Format(time.DateOnly)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GetPlayers(ctx, teamID, from, to)
		if err != nil {
			return nil, err
		}
		return append([]roster.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]roster.Player)
	return append([]roster.Player(nil), items...), nil
}

func (r *RosterRepository) GetPlayer(ctx context.Context, playerID string) ([]roster.Player, error) {
	key := rosterKeyPrefix + "player:" + playerID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GetPlayer(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return append([]roster.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]roster.Player)
	return append([]roster.Player(nil), items...), nil
}

func (r *RosterRepository) GetTeam(ctx context.Context, teamID string) (roster.Team, bool, error) {
	key := rosterKeyPrefix + "team:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return roster.Team{}, false, err
	}

	cached, _ := v.(cachedTeam)
	return cached.value, cached.exists, nil
}

type cachedTeam struct {
	value  roster.Team
	exists bool
}

func (r *RosterRepository) ListTeamIDs(ctx context.Context) ([]string, error) {
	return r.cachedIDs(ctx, rosterKeyPrefix+"team-ids", r.next.ListTeamIDs)
}

func (r *RosterRepository) ListPlayerIDs(ctx context.Context) ([]string, error) {
	return r.cachedIDs(ctx, rosterKeyPrefix+"player-ids", r.next.ListPlayerIDs)
}

func (r *RosterRepository) cachedIDs(ctx context.Context, key string, load func(context.Context) ([]string, error)) ([]string, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return append([]string(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]string)
	return append([]string(nil), items...), nil
}

func (r *RosterRepository) Version(ctx context.Context) (time.Time, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, rosterKeyPrefix+"version", func(ctx context.Context) (any, error) {
		value, ok, err := r.next.Version(ctx)
		if err != nil {
			return nil, err
		}
		return cachedVersion{value: value, ok: ok}, nil
	})
	if err != nil {
		return time.Time{}, false, err
	}

	cached, _ := v.(cachedVersion)
	return cached.value, cached.ok, nil
}

type cachedVersion struct {
	value time.Time
	ok    bool
}

// ReplaceDataset writes through and drops every cached roster and statistics
// entry of this process.
func (r *RosterRepository) ReplaceDataset(ctx context.Context, dataset roster.Dataset) error {
	if err := r.next.ReplaceDataset(ctx, dataset); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, rosterKeyPrefix, statisticsKeyPrefix)
	return nil
}

type StatisticsRepository struct {
	next  statistics.Repository
	cache *basecache.Store
}

func NewStatisticsRepository(next statistics.Repository, cache *basecache.Store) *StatisticsRepository {
	return &StatisticsRepository{next: next, cache: cache}
}

func (r *StatisticsRepository) PlayersWithMostDaysInCurrentTeam(ctx context.Context, limit int) ([]statistics.PlayerTeamDays, error) {
	return cachedList(ctx, r.cache, statisticsKey("most-days", limit), func(ctx context.Context) ([]statistics.PlayerTeamDays, error) {
		return r.next.PlayersWithMostDaysInCurrentTeam(ctx, limit)
	})
}

func (r *StatisticsRepository) PlayersWithMostTeams(ctx context.Context, limit int) ([]statistics.PlayerCount, error) {
	return cachedList(ctx, r.cache, statisticsKey("most-teams", limit), func(ctx context.Context) ([]statistics.PlayerCount, error) {
		return r.next.PlayersWithMostTeams(ctx, limit)
	})
}

func (r *StatisticsRepository) ActivePlayersByCountry(ctx context.Context, limit int) ([]statistics.CountryCount, error) {
	return cachedList(ctx, r.cache, statisticsKey("by-country", limit), func(ctx context.Context) ([]statistics.CountryCount, error) {
		return r.next.ActivePlayersByCountry(ctx, limit)
	})
}

func (r *StatisticsRepository) TeamsWithMostPlayers(ctx context.Context, limit int) ([]statistics.TeamCount, error) {
	return cachedList(ctx, r.cache, statisticsKey("team-sizes", limit), func(ctx context.Context) ([]statistics.TeamCount, error) {
		return r.next.TeamsWithMostPlayers(ctx, limit)
	})
}

func (r *StatisticsRepository) PlayersWithMostTeammates(ctx context.Context, limit int) ([]statistics.PlayerCount, error) {
	return cachedList(ctx, r.cache, statisticsKey("most-teammates", limit), func(ctx context.Context) ([]statistics.PlayerCount, error) {
		return r.next.PlayersWithMostTeammates(ctx, limit)
	})
}

func (r *StatisticsRepository) TeammatePairsWithMostTime(ctx context.Context, limit int) ([]statistics.PairDays, error) {
	return cachedList(ctx, r.cache, statisticsKey("pairs", limit), func(ctx context.Context) ([]statistics.PairDays, error) {
		return r.next.TeammatePairsWithMostTime(ctx, limit)
	})
}

func statisticsKey(name string, limit int) string {
	return statisticsKeyPrefix + name + ":" + strconv.Itoa(limit)
}

func cachedList[T any](ctx context.Context, cache *basecache.Store, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	v, err := cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return append([]T(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]T)
	return append([]T(nil), items...), nil
}
