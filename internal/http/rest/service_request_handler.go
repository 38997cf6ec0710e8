package rest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vybbi/vybbi_api/internal/model"
	"github.com/vybbi/vybbi_api/util"
	"github.com/vybbi/vybbi_api/util/apperr"
	"github.com/vybbi/vybbi_api/util/tracing"
	"github.com/vybbi/vybbi_api/util/values"
)

func (api *API) ServiceRequestRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)

		r.Method(http.MethodPost, "/", Handler(api.CreateServiceRequest))
		r.Method(http.MethodGet, "/{requestID}", Handler(api.GetServiceRequestByID))
	})

	return mux
}

func (api *API) AnnouncementRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		// Query Params: ?budget=low|medium|high, ?category=..., ?type=offer|demand,
		// ?page=1, ?pageSize=20
		r.Method(http.MethodGet, "/", Handler(api.ListAnnouncements))
	})

	return mux
}

// CreateServiceRequest publishes a listing and its feed post in one shot.
func (api *API) CreateServiceRequest(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}
	if session.ProfileID == uuid.Nil {
		return respondWithAppError(apperr.Forbidden("complete your profile before publishing"), "complete your profile before publishing", &tc)
	}

	var req model.CreateServiceRequestRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	req.Description = strings.TrimSpace(req.Description)
	if validErr := util.ValidateStruct(req); validErr != nil {
		return respondWithAppError(apperr.Wrap(apperr.KindValidation, "invalid service request", validErr), "invalid service request", &tc)
	}
	if req.BudgetMin != nil && req.BudgetMax != nil && *req.BudgetMin > *req.BudgetMax {
		return respondWithAppError(apperr.Validation("budget_min exceeds budget_max"), "budget_min exceeds budget_max", &tc)
	}

	req.AuthorID = session.ProfileID
	request, status, message, err := api.CreateServiceRequestHelper(r.Context(), req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       request,
	}
}

func (api *API) GetServiceRequestByID(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	requestID, err := util.StringToUUID(chi.URLParam(r, "requestID"))
	if err != nil {
		return respondWithAppError(apperr.Validation("invalid request id"), "invalid request id", &tc)
	}

	request, status, message, err := api.GetServiceRequestHelper(r.Context(), requestID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       request,
	}
}

func (api *API) ListAnnouncements(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	params := model.AnnouncementsParams{
		Category:     r.URL.Query().Get("category"),
		RequestType:  r.URL.Query().Get("type"),
		BudgetFilter: r.URL.Query().Get("budget"),
		Page:         1,
		PageSize:     20,
	}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return respondWithAppError(apperr.Validation("invalid page"), "invalid page", &tc)
		}
		params.Page = page
	}
	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > 50 {
			return respondWithAppError(apperr.Validation("invalid pageSize"), "invalid pageSize", &tc)
		}
		params.PageSize = size
	}
	if params.BudgetFilter != "" && !validBudgetFilter(params.BudgetFilter) {
		return respondWithAppError(apperr.Validation("unknown budget filter"), "unknown budget filter", &tc)
	}

	requests, status, message, err := api.ListAnnouncementsHelper(r.Context(), params)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       requests,
	}
}

func validBudgetFilter(filter string) bool {
	switch filter {
	case "low", "medium", "high":
		return true
	}
	return false
}
