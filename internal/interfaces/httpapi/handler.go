package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/roster-wayback/internal/domain/roster"
	"github.com/riskibarqy/roster-wayback/internal/platform/logging"
	"github.com/riskibarqy/roster-wayback/internal/usecase"
)

const queryDateLayout = time.DateOnly

type Handler struct {
	rosterService     *usecase.RosterService
	playerService     *usecase.PlayerService
	searchService     *usecase.SearchService
	statisticsService *usecase.StatisticsService
	metaService       *usecase.MetaService
	ingestionService  *usecase.IngestionService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	rosterService *usecase.RosterService,
	playerService *usecase.PlayerService,
	searchService *usecase.SearchService,
	statisticsService *usecase.StatisticsService,
	metaService *usecase.MetaService,
	ingestionService *usecase.IngestionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		rosterService:     rosterService,
		playerService:     playerService,
		searchService:     searchService,
		statisticsService: statisticsService,
		metaService:       metaService,
		ingestionService:  ingestionService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type teamRostersRequest struct {
	TeamID  string `validate:"required,max=200"`
	From    string `validate:"omitempty,datetime=2006-01-02"`
	To      string `validate:"omitempty,datetime=2006-01-02"`
	MinDays string `validate:"omitempty,number"`
}

type statisticsRequest struct {
	Limit string `validate:"omitempty,number"`
}

type gotoRequest struct {
	Query string `validate:"required,max=300"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListEntities(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEntities")
	defer span.End()

	items, err := h.searchService.ListEntities(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list entities failed", "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, entitiesToDTO(items))
}

// Goto redirects a search box query to the matching team or player resource.
func (h *Handler) Goto(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Goto")
	defer span.End()

	req := gotoRequest{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(w, err)
		return
	}

	ref, err := h.searchService.Resolve(ctx, req.Query)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve search query failed", "query", req.Query, "error", err)
		writeError(w, err)
		return
	}

	http.Redirect(w, r.WithContext(ctx), entityPageURL(ref), http.StatusFound)
}

func (h *Handler) GetTeamRosters(w http.ResponseWriter, r *http.Request) {
	teamID := strings.TrimSpace(r.PathValue("teamID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRosters", teamAttr(teamID))
	defer span.End()

	query := r.URL.Query()
	req := teamRostersRequest{
		TeamID:  teamID,
		From:    strings.TrimSpace(query.Get("from")),
		To:      strings.TrimSpace(query.Get("to")),
		MinDays: strings.TrimSpace(query.Get("min_days")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(w, err)
		return
	}

	input, err := teamRostersQueryFromRequest(req)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.rosterService.GetTeamRosters(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "get team rosters failed", "team_id", req.TeamID, "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, teamRostersToDTO(result))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer", playerAttr(playerID))
	defer span.End()

	history, err := h.playerService.GetPlayerHistory(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player history failed", "player_id", playerID, "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, playerPageToDTO(history))
}

func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStatistics")
	defer span.End()

	req := statisticsRequest{Limit: strings.TrimSpace(r.URL.Query().Get("limit"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(w, err)
		return
	}

	limit := 0
	if req.Limit != "" {
		parsed, err := strconv.Atoi(req.Limit)
		if err != nil {
			writeError(w, fmt.Errorf("%w: invalid limit: %v", usecase.ErrInvalidInput, err))
			return
		}
		limit = parsed
	}

	overview, err := h.statisticsService.Overview(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "get statistics failed", "limit", limit, "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, statisticsToDTO(overview))
}

func (h *Handler) GetMeta(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMeta")
	defer span.End()

	meta, err := h.metaService.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dataset meta failed", "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, metaToDTO(meta))
}

func (h *Handler) RunRescrapeJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRescrapeJob")
	defer span.End()

	if h.ingestionService == nil {
		writeError(w, fmt.Errorf("%w: ingestion service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	// A crawl runs far past APP_WRITE_TIMEOUT.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.logger.WarnContext(ctx, "clear write deadline failed", "error", err)
	}

	result, err := h.ingestionService.Rescrape(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run rescrape job failed", "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, ingestionResultToDTO(result))
}

func teamRostersQueryFromRequest(req teamRostersRequest) (usecase.TeamRostersQuery, error) {
	out := usecase.TeamRostersQuery{TeamID: req.TeamID}

	if req.From != "" {
		from, err := time.Parse(queryDateLayout, req.From)
		if err != nil {
			return usecase.TeamRostersQuery{}, fmt.Errorf("%w: invalid from date: %v", usecase.ErrInvalidInput, err)
		}
		out.From = &from
	}
	if req.To != "" {
		to, err := time.Parse(queryDateLayout, req.To)
		if err != nil {
			return usecase.TeamRostersQuery{}, fmt.Errorf("%w: invalid to date: %v", usecase.ErrInvalidInput, err)
		}
		out.To = &to
	}
	if req.MinDays != "" {
		minDays, err := strconv.Atoi(req.MinDays)
		if err != nil {
			return usecase.TeamRostersQuery{}, fmt.Errorf("%w: invalid min_days: %v", usecase.ErrInvalidInput, err)
		}
		out.MinDays = &minDays
	}

	return out, nil
}

func entityPageURL(ref usecase.EntityRef) string {
	if ref.Kind == usecase.EntityKindTeam {
		return teamPageURL(ref.ID)
	}
	return playerPageURL(ref.ID)
}

func teamPageURL(teamID string) string {
	return "/v1/teams/" + pathEscapeSlug(teamID) + "/rosters"
}

func playerPageURL(playerID string) string {
	return "/v1/players/" + pathEscapeSlug(playerID)
}

func pathEscapeSlug(id string) string {
	return url.PathEscape(roster.Slugify(id))
}
