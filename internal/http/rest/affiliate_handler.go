package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vybbi/vybbi_api/internal/model"
	"github.com/vybbi/vybbi_api/util"
	"github.com/vybbi/vybbi_api/util/apperr"
	"github.com/vybbi/vybbi_api/util/tracing"
	"github.com/vybbi/vybbi_api/util/values"
)

func (api *API) AffiliateRoutes() chi.Router {
	mux := chi.NewRouter()

	// Click and conversion recording are hit from referred landings, so they
	// sit outside the auth wall.
	mux.Method(http.MethodPost, "/r/{code}", Handler(api.RecordAffiliateClick))
	mux.Method(http.MethodPost, "/r/{code}/conversion", Handler(api.RecordAffiliateConversion))

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)

		r.Method(http.MethodPost, "/links", Handler(api.CreateAffiliateLink))
		r.Method(http.MethodGet, "/links", Handler(api.ListAffiliateLinks))
		r.Method(http.MethodGet, "/links/{linkID}/stats", Handler(api.GetAffiliateStats))
	})

	return mux
}

func (api *API) CreateAffiliateLink(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}
	if session.ProfileID == uuid.Nil {
		return respondWithAppError(apperr.Forbidden("complete your profile first"), "complete your profile first", &tc)
	}

	var req model.CreateAffiliateLinkRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	if validErr := util.ValidateStruct(req); validErr != nil {
		return respondWithAppError(apperr.Wrap(apperr.KindValidation, "invalid affiliate link", validErr), "invalid affiliate link", &tc)
	}

	link, err := api.CreateAffiliateLinkRepo(r.Context(), session.ProfileID, req.CommissionRate)
	if err != nil {
		return respondWithError(err, "Failed to create affiliate link", util.StatusFromError(err), &tc)
	}

	return &ServerResponse{
		Message:    "Affiliate link created successfully",
		Status:     values.Created,
		StatusCode: util.StatusCode(values.Created),
		Data:       link,
	}
}

func (api *API) ListAffiliateLinks(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}

	links, err := api.ListAffiliateLinksRepo(r.Context(), session.ProfileID)
	if err != nil {
		return respondWithError(err, "Failed to fetch affiliate links", util.StatusFromError(err), &tc)
	}

	return &ServerResponse{
		Message:    "Affiliate links fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       links,
	}
}

// RecordAffiliateClick bumps the click counter for a referral code.
func (api *API) RecordAffiliateClick(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	code := chi.URLParam(r, "code")
	if code == "" {
		return respondWithAppError(apperr.Validation("referral code is required"), "referral code is required", &tc)
	}

	if err := api.RecordClickRepo(r.Context(), code); err != nil {
		return respondWithError(err, "Failed to record click", util.StatusFromError(err), &tc)
	}

	return &ServerResponse{
		Message:    "Click recorded",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
	}
}

// RecordAffiliateConversion records a purchase attributed to a referral code.
// Commission is computed server-side from the link's rate.
func (api *API) RecordAffiliateConversion(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	code := chi.URLParam(r, "code")
	if code == "" {
		return respondWithAppError(apperr.Validation("referral code is required"), "referral code is required", &tc)
	}

	var req model.RecordConversionRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	if validErr := util.ValidateStruct(req); validErr != nil {
		return respondWithAppError(apperr.Wrap(apperr.KindValidation, "invalid conversion", validErr), "invalid conversion", &tc)
	}

	conversion, err := api.RecordConversionRepo(r.Context(), code, req.Amount)
	if err != nil {
		return respondWithError(err, "Failed to record conversion", util.StatusFromError(err), &tc)
	}

	return &ServerResponse{
		Message:    "Conversion recorded",
		Status:     values.Created,
		StatusCode: util.StatusCode(values.Created),
		Data:       conversion,
	}
}

func (api *API) GetAffiliateStats(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}

	linkID, err := util.StringToUUID(chi.URLParam(r, "linkID"))
	if err != nil {
		return respondWithAppError(apperr.Validation("invalid link id"), "invalid link id", &tc)
	}

	stats, err := api.GetAffiliateStatsRepo(r.Context(), linkID, session.ProfileID)
	if err != nil {
		return respondWithError(err, "Failed to fetch affiliate stats", util.StatusFromError(err), &tc)
	}

	return &ServerResponse{
		Message:    "Affiliate stats fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       stats,
	}
}
