package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vybbi/vybbi_api/util"
	"github.com/vybbi/vybbi_api/util/apperr"
	"github.com/vybbi/vybbi_api/util/tracing"
	"github.com/vybbi/vybbi_api/util/values"
)

// feedLoadCooldown is the re-entrancy guard window: a second load for the
// same viewer+category inside it is a no-op.
const feedLoadCooldown = 1 * time.Second

func (api *API) FeedRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Method(http.MethodGet, "/", Handler(api.GetFeed))
	})

	return mux
}

// GetFeed returns one reverse-chronological page.
// Query Params: ?category=all|prestations|events|annonces|messages,
// ?cursor=<opaque>, ?limit=20
func (api *API) GetFeed(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		category = values.CategoryAll
	}
	if !validFeedCategory(category) {
		return respondWithAppError(apperr.Validation("unknown feed category"), "unknown feed category", &tc)
	}

	limit := 20
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		limit, err = strconv.Atoi(rawLimit)
		if err != nil || limit < 1 || limit > 50 {
			return respondWithAppError(apperr.Validation("invalid limit"), "invalid limit", &tc)
		}
	}

	// Only one load per viewer+category may be in flight; repeated calls
	// inside the cooldown are answered without touching the database.
	latchKey := fmt.Sprintf("feed:%s:%s", session.UserID, category)
	if !api.Deps.Cache.TryAcquire(r.Context(), latchKey, feedLoadCooldown) {
		return respondWithAppError(apperr.InFlight("feed load already in flight"), "feed load already in flight", &tc)
	}

	page, status, message, err := api.LoadFeedPageHelper(r.Context(), session.ProfileID, category, r.URL.Query().Get("cursor"), limit)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       page,
	}
}

func validFeedCategory(category string) bool {
	switch category {
	case values.CategoryAll, values.CategoryPrestations, values.CategoryEvents,
		values.CategoryAnnonces, values.CategoryMessages:
		return true
	}
	return false
}
