package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/friendstories/internal/common"
	"github.com/dmitrijs2005/friendstories/internal/logging"
	"github.com/dmitrijs2005/friendstories/internal/server/models"
	"github.com/dmitrijs2005/friendstories/internal/server/services"
	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
}

type StoryService interface {
	Feed(ctx context.Context, page, limit int) (*models.FeedPage, error)
	Create(ctx context.Context, req *models.CreateStoryRequest) (*models.Story, error)
}

type HealthChecker interface {
	PingContext(ctx context.Context) error
}

type dataEnvelope struct {
	Data any `json:"data"`
}

type errorBody struct {
	Error string `json:"error"`
}

type ApiController struct {
	logger  logging.Logger
	users   UserService
	stories StoryService
	health  HealthChecker
	cache   ResponseCache
	metrics Metrics
}

func NewApiController(logger logging.Logger, users UserService, stories StoryService, health HealthChecker, cache ResponseCache, metrics Metrics) *ApiController {
	return &ApiController{
		logger:  logger.With("module", "api"),
		users:   users,
		stories: stories,
		health:  health,
		cache:   cache,
		metrics: metrics,
	}
}

// Routes registers the API on a new Router.
func (ac *ApiController) Routes() *Router {
	rt := NewRouter()
	rt.Get("/api/users", http.HandlerFunc(ac.GetUsers))
	rt.Get("/api/stories", http.HandlerFunc(ac.GetStories))
	rt.Post("/api/stories", http.HandlerFunc(ac.CreateStory))
	rt.Get("/healthz", http.HandlerFunc(ac.Health))
	if h := ac.metrics.Handler(); h != nil {
		rt.Get("/metrics", h)
	}
	return rt
}

// parseLeadingInt reads an optional sign and the digits that follow it,
// ignoring anything after them. ok is false when no digit is present.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// queryInt returns the parameter value, or def when it is missing,
// non-numeric or zero.
func queryInt(r *http.Request, name string, def int) int {
	n, ok := parseLeadingInt(r.URL.Query().Get(name))
	if !ok || n == 0 {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (ac *ApiController) writeError(w http.ResponseWriter, status int, msg string) {
	body, _ := json.Marshal(errorBody{Error: msg})
	writeJSON(w, status, body)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, compute func() (any, error)) {
	key := r.URL.Path + "?" + r.URL.RawQuery
	if data, ok := ac.cache.Get(key); ok {
		ac.metrics.IncCacheHits()
		writeJSON(w, http.StatusOK, data)
		return
	}
	ac.metrics.IncCacheMisses()

	result, err := compute()
	if err != nil {
		ac.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		ac.writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		ac.logger.Error(r.Context(), "encode failed", "path", r.URL.Path, "error", err)
		ac.writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	ac.cache.Set(key, body)
	writeJSON(w, http.StatusOK, body)
}

func (ac *ApiController) GetUsers(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, func() (any, error) {
		users, err := ac.users.List(r.Context())
		if err != nil {
			return nil, err
		}
		if users == nil {
			users = []models.User{}
		}
		return dataEnvelope{Data: users}, nil
	})
}

func (ac *ApiController) GetStories(w http.ResponseWriter, r *http.Request) {
	page := max(queryInt(r, "page", common.DefaultPage), common.DefaultPage)
	limit := common.ClampLimit(queryInt(r, "limit", common.DefaultLimit))

	ac.serveFromCacheOrCompute(w, r, func() (any, error) {
		return ac.stories.Feed(r.Context(), page, limit)
	})
}

func (ac *ApiController) CreateStory(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var req models.CreateStoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ac.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	story, err := ac.stories.Create(r.Context(), &req)
	switch {
	case errors.Is(err, common.ErrorValidation):
		ac.writeError(w, http.StatusBadRequest, services.MsgStoryFieldsRequired)
		return
	case errors.Is(err, common.ErrorNotFound):
		ac.writeError(w, http.StatusNotFound, services.MsgUserNotFound)
		return
	case err != nil:
		ac.logger.Error(r.Context(), "create story failed", "error", err)
		ac.writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	ac.cache.Clear()
	ac.metrics.IncStoriesCreated()
	ac.logger.Info(r.Context(), "story created", "story_id", story.ID, "user_id", story.UserID)

	body, err := json.Marshal(dataEnvelope{Data: story})
	if err != nil {
		ac.writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusCreated, body)
}

func (ac *ApiController) Health(w http.ResponseWriter, r *http.Request) {
	if ac.health != nil {
		if err := ac.health.PingContext(r.Context()); err != nil {
			ac.logger.Warn(r.Context(), "health check failed", "error", err)
			ac.writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, []byte(`{"status":"ok"}`))
}
