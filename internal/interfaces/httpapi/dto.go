package httpapi

import (
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/domain/daterange"
	"github.com/riskibarqy/roster-wayback/internal/domain/roster"
	"github.com/riskibarqy/roster-wayback/internal/domain/statistics"
	"github.com/riskibarqy/roster-wayback/internal/usecase"
)

const (
	displayDateLayout   = "2 Jan 2006"
	missingValue        = "-"
	presentLabel        = "present"
	invalidBucketPeriod = "Entries with invalid dates"
)

type entitiesDTO struct {
	SearchItems []string `json:"search_items"`
}

type rosterPlayerDTO struct {
	Nickname        string `json:"nickname"`
	Name            string `json:"name"`
	IsCaptain       bool   `json:"is_captain"`
	IsCoach         bool   `json:"is_coach"`
	PlayerPageURL   string `json:"player_page_url"`
	LiquipediaURL   string `json:"liquipedia_url,omitempty"`
	FlagURL         string `json:"flag_url"`
	Country         string `json:"country"`
	Position        string `json:"position"`
	JoinDate        string `json:"join_date"`
	InactiveDate    string `json:"inactive_date"`
	LeaveDate       string `json:"leave_date"`
	JoinDateRaw     string `json:"join_date_raw"`
	InactiveDateRaw string `json:"inactive_date_raw"`
	LeaveDateRaw    string `json:"leave_date_raw"`
}

type rosterDTO struct {
	Period      string            `json:"period"`
	GameVersion string            `json:"game_version"`
	Days        int               `json:"days,omitempty"`
	Players     []rosterPlayerDTO `json:"players"`
}

type teamRostersDTO struct {
	TeamID        string      `json:"team_id"`
	TeamName      string      `json:"team_name"`
	LiquipediaURL string      `json:"liquipedia_url"`
	From          string      `json:"from"`
	To            string      `json:"to"`
	Rosters       []rosterDTO `json:"rosters"`
}

type playerTeamDTO struct {
	TeamID          string `json:"team_id"`
	Position        string `json:"position"`
	JoinDate        string `json:"join_date"`
	InactiveDate    string `json:"inactive_date"`
	LeaveDate       string `json:"leave_date"`
	JoinDateRaw     string `json:"join_date_raw"`
	InactiveDateRaw string `json:"inactive_date_raw"`
	LeaveDateRaw    string `json:"leave_date_raw"`
	TeamPageURL     string `json:"team_page_url"`
}

type playerPageDTO struct {
	PlayerID       string          `json:"player_id"`
	PlayerNickname string          `json:"player_nickname"`
	Country        string          `json:"country"`
	FlagURL        string          `json:"flag_url"`
	LiquipediaURL  string          `json:"liquipedia_url,omitempty"`
	Teams          []playerTeamDTO `json:"teams"`
}

type playerTeamDaysDTO struct {
	PlayerID string `json:"player_id"`
	TeamID   string `json:"team_id"`
	Days     int    `json:"days"`
}

type playerCountDTO struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}

type countryCountDTO struct {
	Country string `json:"country"`
	FlagURL string `json:"flag_url"`
	Count   int    `json:"count"`
}

type teamCountDTO struct {
	TeamID string `json:"team_id"`
	Count  int    `json:"count"`
}

type pairDaysDTO struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Days    int    `json:"days"`
}

type statisticsDTO struct {
	MostDaysInCurrentTeam []playerTeamDaysDTO `json:"most_days_in_current_team"`
	MostTeams             []playerCountDTO    `json:"most_teams"`
	ActiveByCountry       []countryCountDTO   `json:"active_by_country"`
	TeamsWithMostPlayers  []teamCountDTO      `json:"teams_with_most_players"`
	MostTeammates         []playerCountDTO    `json:"most_teammates"`
	LongestPairs          []pairDaysDTO       `json:"longest_pairs"`
}

type metaDTO struct {
	UpdatedAt *string `json:"updated_at"`
}

type ingestionResultDTO struct {
	RunID          string `json:"run_id,omitempty"`
	Teams          int    `json:"teams"`
	Records        int    `json:"records"`
	InvalidRecords int    `json:"invalid_records"`
	Replaced       bool   `json:"replaced"`
	UpdatedAt      string `json:"updated_at"`
	DurationMs     int64  `json:"duration_ms"`
	Message        string `json:"message"`
}

func entitiesToDTO(items []usecase.EntityRef) entitiesDTO {
	out := entitiesDTO{SearchItems: make([]string, 0, len(items))}
	for _, item := range items {
		out.SearchItems = append(out.SearchItems, item.String())
	}
	return out
}

func teamRostersToDTO(result usecase.TeamRosters) teamRostersDTO {
	out := teamRostersDTO{
		TeamID:        result.Team.ID,
		TeamName:      result.Team.Name,
		LiquipediaURL: result.Team.LiquipediaURL,
		From:          result.From.Format(time.DateOnly),
		To:            result.To.Format(time.DateOnly),
		Rosters:       make([]rosterDTO, 0, len(result.Rosters)),
	}
	for _, item := range result.Rosters {
		out.Rosters = append(out.Rosters, rosterToDTO(item))
	}
	return out
}

func rosterToDTO(item roster.Roster) rosterDTO {
	players := make([]rosterPlayerDTO, 0, len(item.Players))
	for _, p := range item.Players {
		players = append(players, rosterPlayerToDTO(p))
	}

	if item.IsInvalidBucket() {
		return rosterDTO{
			Period:      invalidBucketPeriod,
			GameVersion: roster.UnknownGameVersion,
			Players:     players,
		}
	}

	slices.SortStableFunc(players, func(a, b rosterPlayerDTO) int {
		return strings.Compare(a.Nickname, b.Nickname)
	})
	out := rosterDTO{
		Period:      formatPeriod(item.ActivePeriod),
		GameVersion: item.GameVersion(),
		Players:     players,
	}
	if !item.ActivePeriod.IsOngoing() {
		out.Days = item.ActivePeriod.Days()
	}
	return out
}

func rosterPlayerToDTO(p roster.Player) rosterPlayerDTO {
	position := p.DisplayPosition()
	return rosterPlayerDTO{
		Nickname:        p.Nickname,
		Name:            p.Name,
		IsCaptain:       p.IsCaptain,
		IsCoach:         strings.Contains(position, roster.PositionCoach),
		PlayerPageURL:   playerPageURL(p.PlayerID),
		LiquipediaURL:   p.LiquipediaURL,
		FlagURL:         flagURL(p.FlagName),
		Country:         orMissing(p.FlagName),
		Position:        position,
		JoinDate:        formatDate(p.JoinDate),
		InactiveDate:    formatDate(p.InactiveDate),
		LeaveDate:       formatDate(p.LeaveDate),
		JoinDateRaw:     p.JoinDateRaw,
		InactiveDateRaw: p.InactiveDateRaw,
		LeaveDateRaw:    p.LeaveDateRaw,
	}
}

func playerPageToDTO(history usecase.PlayerHistory) playerPageDTO {
	out := playerPageDTO{
		PlayerID:       history.Player.PlayerID,
		PlayerNickname: history.Player.Nickname,
		Country:        orMissing(history.Player.FlagName),
		FlagURL:        flagURL(history.Player.FlagName),
		LiquipediaURL:  history.Player.LiquipediaURL,
		Teams:          make([]playerTeamDTO, 0, len(history.Tenures)),
	}
	for _, item := range history.Tenures {
		out.Teams = append(out.Teams, playerTeamDTO{
			TeamID:          item.TeamID,
			Position:        item.DisplayPosition(),
			JoinDate:        formatDate(item.JoinDate),
			InactiveDate:    formatDate(item.InactiveDate),
			LeaveDate:       formatDate(item.LeaveDate),
			JoinDateRaw:     item.JoinDateRaw,
			InactiveDateRaw: item.InactiveDateRaw,
			LeaveDateRaw:    item.LeaveDateRaw,
			TeamPageURL:     teamPageURL(item.TeamID),
		})
	}
	return out
}

func statisticsToDTO(overview statistics.Overview) statisticsDTO {
	out := statisticsDTO{
		MostDaysInCurrentTeam: make([]playerTeamDaysDTO, 0, len(overview.MostDaysInCurrentTeam)),
		MostTeams:             playerCountsToDTO(overview.MostTeams),
		ActiveByCountry:       make([]countryCountDTO, 0, len(overview.ActiveByCountry)),
		TeamsWithMostPlayers:  make([]teamCountDTO, 0, len(overview.TeamsWithMostPlayers)),
		MostTeammates:         playerCountsToDTO(overview.MostTeammates),
		LongestPairs:          make([]pairDaysDTO, 0, len(overview.LongestPairs)),
	}
	for _, item := range overview.MostDaysInCurrentTeam {
		out.MostDaysInCurrentTeam = append(out.MostDaysInCurrentTeam, playerTeamDaysDTO{
			PlayerID: item.PlayerID,
			TeamID:   item.TeamID,
			Days:     item.Days,
		})
	}
	for _, item := range overview.ActiveByCountry {
		out.ActiveByCountry = append(out.ActiveByCountry, countryCountDTO{
			Country: orMissing(item.FlagName),
			FlagURL: flagURL(item.FlagName),
			Count:   item.Count,
		})
	}
	for _, item := range overview.TeamsWithMostPlayers {
		out.TeamsWithMostPlayers = append(out.TeamsWithMostPlayers, teamCountDTO{TeamID: item.TeamID, Count: item.Count})
	}
	for _, item := range overview.LongestPairs {
		out.LongestPairs = append(out.LongestPairs, pairDaysDTO{
			Player1: item.Player1,
			Player2: item.Player2,
			Days:    item.Days,
		})
	}
	return out
}

func playerCountsToDTO(items []statistics.PlayerCount) []playerCountDTO {
	out := make([]playerCountDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerCountDTO{PlayerID: item.PlayerID, Count: item.Count})
	}
	return out
}

func metaToDTO(meta usecase.DatasetMeta) metaDTO {
	if meta.UpdatedAt == nil {
		return metaDTO{}
	}
	value := meta.UpdatedAt.Format(time.DateOnly)
	return metaDTO{UpdatedAt: &value}
}

func ingestionResultToDTO(result usecase.IngestionResult) ingestionResultDTO {
	return ingestionResultDTO{
		RunID:          result.RunID,
		Teams:          result.Teams,
		Records:        result.Records,
		InvalidRecords: result.InvalidRecords,
		Replaced:       result.Replaced,
		UpdatedAt:      result.UpdatedAt.Format(time.DateOnly),
		DurationMs:     result.DurationMs,
		Message:        result.Message(),
	}
}

func formatPeriod(period daterange.DateRange) string {
	end := presentLabel
	if !period.IsOngoing() {
		end = period.End.Format(displayDateLayout)
	}
	return period.Start.Format(displayDateLayout) + " - " + end
}

func formatDate(value *time.Time) string {
	if value == nil {
		return missingValue
	}
	return value.Format(displayDateLayout)
}

func flagURL(flagName string) string {
	flagName = strings.TrimSpace(flagName)
	if flagName == "" {
		return missingValue
	}
	return "/img/f/" + roster.Slugify(flagName) + ".svg"
}

func orMissing(value string) string {
	if strings.TrimSpace(value) == "" {
		return missingValue
	}
	return value
}
