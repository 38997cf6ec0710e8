package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vybbi/vybbi_api/util"
	"github.com/vybbi/vybbi_api/util/apperr"
	"github.com/vybbi/vybbi_api/util/tracing"
	"github.com/vybbi/vybbi_api/util/values"
)

// ContentRoutes serves the static knowledge base. Public, no auth wall.
func (api *API) ContentRoutes() chi.Router {
	mux := chi.NewRouter()

	// Query Params: ?category=...
	mux.Method(http.MethodGet, "/", Handler(api.ListContent))
	mux.Method(http.MethodGet, "/{slug}", Handler(api.GetContent))

	return mux
}

func (api *API) ListContent(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	entries := api.Content.List(r.URL.Query().Get("category"))

	return &ServerResponse{
		Message:    "Content fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       entries,
	}
}

func (api *API) GetContent(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	entry, ok := api.Content.Get(chi.URLParam(r, "slug"))
	if !ok {
		return respondWithAppError(apperr.NotFound("article not found"), "article not found", &tc)
	}

	return &ServerResponse{
		Message:    "Content fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       entry,
	}
}
