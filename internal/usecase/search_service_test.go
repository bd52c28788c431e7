package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/roster-wayback/internal/domain/roster"
	rostermock "github.com/riskibarqy/roster-wayback/internal/mocks/domain/roster"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSearchService_ListEntities_TeamsFirstSorted(t *testing.T) {
	t.Parallel()

	repo := rostermock.NewRepository(t)
	repo.On("ListTeamIDs", mock.Anything).Return([]string{"fnatic", "Astralis", "", "fnatic"}, nil).Once()
	repo.On("ListPlayerIDs", mock.Anything).Return([]string{"s1mple", "device"}, nil).Once()

	got, err := NewSearchService(repo).ListEntities(context.Background())
	require.NoError(t, err)

	items := make([]string, 0, len(got))
	for _, item := range got {
		items = append(items, item.String())
	}
	require.Equal(t, []string{"team:Astralis", "team:fnatic", "player:device", "player:s1mple"}, items)
}

func TestSearchService_Resolve(t *testing.T) {
	t.Parallel()

	repo := rostermock.NewRepository(t)
	repo.On("GetTeam", mock.Anything, "Team_Liquid").Return(roster.Team{}, false, nil).Once()
	repo.On("GetTeam", mock.Anything, "Team Liquid").Return(roster.Team{ID: "Team Liquid"}, true, nil).Once()
	repo.On("GetPlayer", mock.Anything, "EliGE").Return([]roster.Player{{PlayerID: "EliGE"}}, nil).Once()
	repo.On("GetPlayer", mock.Anything, "nobody").Return([]roster.Player{}, nil).Once()

	service := NewSearchService(repo)

	team, err := service.Resolve(context.Background(), "team:Team_Liquid")
	require.NoError(t, err)
	require.Equal(t, EntityRef{Kind: EntityKindTeam, ID: "Team Liquid"}, team)

	player, err := service.Resolve(context.Background(), "player:EliGE")
	require.NoError(t, err)
	require.Equal(t, EntityRef{Kind: EntityKindPlayer, ID: "EliGE"}, player)

	_, err = service.Resolve(context.Background(), "player:nobody")
	require.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestParseEntityRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query   string
		want    EntityRef
		wantErr bool
	}{
		{query: "team:fnatic", want: EntityRef{Kind: EntityKindTeam, ID: "fnatic"}},
		{query: " Player: s1mple ", want: EntityRef{Kind: EntityKindPlayer, ID: "s1mple"}},
		{query: "coach:zonic", wantErr: true},
		{query: "team:", wantErr: true},
		{query: "fnatic", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseEntityRef(tc.query)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("ParseEntityRef(%q): expected invalid input, got %v", tc.query, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseEntityRef(%q): %v", tc.query, err)
		}
		if got != tc.want {
			t.Fatalf("ParseEntityRef(%q) = %+v, want %+v", tc.query, got, tc.want)
		}
	}
}
