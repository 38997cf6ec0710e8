package rest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vybbi/vybbi_api/internal/model"
	"github.com/vybbi/vybbi_api/util"
	"github.com/vybbi/vybbi_api/util/apperr"
	"github.com/vybbi/vybbi_api/util/tracing"
	"github.com/vybbi/vybbi_api/util/values"
)

func (api *API) CommunityRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)

		r.Method(http.MethodPost, "/", Handler(api.CreateCommunity))
		r.Method(http.MethodGet, "/", Handler(api.ListCommunities))
		r.Method(http.MethodGet, "/{communityID}", Handler(api.GetCommunityScreen))
		r.Method(http.MethodPost, "/{communityID}/join", Handler(api.JoinCommunity))
		r.Method(http.MethodPost, "/{communityID}/leave", Handler(api.LeaveCommunity))
		r.Method(http.MethodGet, "/{communityID}/channels/{channelID}/messages", Handler(api.GetChannelMessages))
		r.Method(http.MethodPost, "/{communityID}/channels/{channelID}/messages", Handler(api.SendChannelMessage))
		r.Method(http.MethodDelete, "/{communityID}/channels/{channelID}/messages/{messageID}", Handler(api.DeleteChannelMessage))
	})

	return mux
}

func (api *API) CreateCommunity(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}

	var req model.CreateCommunityRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	req.Name = strings.TrimSpace(req.Name)
	if validErr := util.ValidateStruct(req); validErr != nil {
		return respondWithAppError(apperr.Wrap(apperr.KindValidation, "invalid community", validErr), "invalid community", &tc)
	}

	community, status, message, err := api.CreateCommunityHelper(r.Context(), session.UserID, req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       community,
	}
}

func (api *API) ListCommunities(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}

	communities, status, message, err := api.ListCommunitiesHelper(r.Context(), session.UserID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       communities,
	}
}

// GetCommunityScreen returns the community with its channel list and the
// default channel selection. Non-members get a membership error, not the
// channel list.
func (api *API) GetCommunityScreen(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}

	communityID, err := util.StringToUUID(chi.URLParam(r, "communityID"))
	if err != nil {
		return respondWithAppError(apperr.Validation("invalid community id"), "invalid community id", &tc)
	}

	screen, status, message, err := api.GetCommunityScreenHelper(r.Context(), communityID, session.UserID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       screen,
	}
}

func (api *API) JoinCommunity(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}

	communityID, err := util.StringToUUID(chi.URLParam(r, "communityID"))
	if err != nil {
		return respondWithAppError(apperr.Validation("invalid community id"), "invalid community id", &tc)
	}

	membership, status, message, err := api.JoinCommunityHelper(r.Context(), communityID, session.UserID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       membership,
	}
}

func (api *API) LeaveCommunity(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}

	communityID, err := util.StringToUUID(chi.URLParam(r, "communityID"))
	if err != nil {
		return respondWithAppError(apperr.Validation("invalid community id"), "invalid community id", &tc)
	}

	status, message, err := api.LeaveCommunityHelper(r.Context(), communityID, session.UserID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

// GetChannelMessages returns the latest window of messages in ascending
// creation order.
func (api *API) GetChannelMessages(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}

	communityID, err := util.StringToUUID(chi.URLParam(r, "communityID"))
	if err != nil {
		return respondWithAppError(apperr.Validation("invalid community id"), "invalid community id", &tc)
	}

	channelID, err := util.StringToUUID(chi.URLParam(r, "channelID"))
	if err != nil {
		return respondWithAppError(apperr.Validation("invalid channel id"), "invalid channel id", &tc)
	}

	messages, status, message, err := api.GetChannelMessagesHelper(r.Context(), communityID, channelID, session.UserID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       messages,
	}
}

func (api *API) SendChannelMessage(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}
	if session.ProfileID == uuid.Nil {
		return respondWithAppError(apperr.Forbidden("complete your profile before chatting"), "complete your profile before chatting", &tc)
	}

	communityID, err := util.StringToUUID(chi.URLParam(r, "communityID"))
	if err != nil {
		return respondWithAppError(apperr.Validation("invalid community id"), "invalid community id", &tc)
	}

	channelID, err := util.StringToUUID(chi.URLParam(r, "channelID"))
	if err != nil {
		return respondWithAppError(apperr.Validation("invalid channel id"), "invalid channel id", &tc)
	}

	var req model.SendMessageRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	// Whitespace-only content is rejected before anything is written.
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return respondWithAppError(apperr.Validation("message cannot be empty"), "message cannot be empty", &tc)
	}

	msg, status, message, err := api.SendMessageHelper(r.Context(), communityID, channelID, session, req.Content)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       msg,
	}
}

func (api *API) DeleteChannelMessage(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}

	communityID, err := util.StringToUUID(chi.URLParam(r, "communityID"))
	if err != nil {
		return respondWithAppError(apperr.Validation("invalid community id"), "invalid community id", &tc)
	}

	messageID, err := util.StringToUUID(chi.URLParam(r, "messageID"))
	if err != nil {
		return respondWithAppError(apperr.Validation("invalid message id"), "invalid message id", &tc)
	}

	status, message, err := api.DeleteMessageHelper(r.Context(), communityID, messageID, session)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}
