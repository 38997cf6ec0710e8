package rest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vybbi/vybbi_api/internal/http/aisearch"
	"github.com/vybbi/vybbi_api/util"
	"github.com/vybbi/vybbi_api/util/apperr"
	"github.com/vybbi/vybbi_api/util/tracing"
	"github.com/vybbi/vybbi_api/util/values"
)

func (api *API) SearchRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		// Query Params: ?q=..., ?types=artist,venue, ?limit=10
		r.Method(http.MethodGet, "/", Handler(api.SearchProfiles))
	})

	return mux
}

// SearchProfiles forwards a semantic query to the search service.
func (api *API) SearchProfiles(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		return respondWithAppError(apperr.Validation("query is required"), "query is required", &tc)
	}

	req := aisearch.SearchRequest{Query: query, Limit: 10}
	if rawTypes := r.URL.Query().Get("types"); rawTypes != "" {
		for _, t := range strings.Split(rawTypes, ",") {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			if !validProfileType(t) {
				return respondWithAppError(apperr.Validation("unknown profile type"), "unknown profile type", &tc)
			}
			req.ProfileTypes = append(req.ProfileTypes, t)
		}
	}

	result, err := api.Deps.AISearch.Search(r.Context(), req)
	if err != nil {
		return respondWithError(err, "Search failed", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Search completed successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       result,
	}
}

// HandleRealtime upgrades the connection for live chat delivery. Browsers
// cannot set Authorization headers on websocket dials, so the access token
// rides in the query string.
func (api *API) HandleRealtime(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeErrorResponse(w, apperr.Unauthenticated("token is required"), values.NotAuthorised, "token is required")
		return
	}

	claims, err := api.verifyToken(token, false)
	if err != nil {
		writeErrorResponse(w, err, values.NotAuthorised, "invalid-token")
		return
	}

	api.Deps.Hub.HandleConnections(w, r, claims.UserID)
}
