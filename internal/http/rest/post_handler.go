package rest

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vybbi/vybbi_api/internal/model"
	"github.com/vybbi/vybbi_api/util"
	"github.com/vybbi/vybbi_api/util/apperr"
	"github.com/vybbi/vybbi_api/util/tracing"
	"github.com/vybbi/vybbi_api/util/values"
)

// likeToggleGuard collapses rapid repeated toggles into one mutation.
const likeToggleGuard = 1 * time.Second

func (api *API) PostRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)

		r.Method(http.MethodPost, "/", Handler(api.CreatePost))
		r.Method(http.MethodGet, "/{postID}", Handler(api.GetPostByID))
		r.Method(http.MethodPost, "/{postID}/like", Handler(api.ToggleLike))
		r.Method(http.MethodPost, "/{postID}/comments", Handler(api.CommentOnPost))
		r.Method(http.MethodGet, "/{postID}/comments", Handler(api.GetComments))
	})

	return mux
}

func (api *API) CreatePost(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}
	if session.ProfileID == uuid.Nil {
		return respondWithAppError(apperr.Forbidden("complete your profile before posting"), "complete your profile before posting", &tc)
	}

	var req model.CreatePostRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	req.Content = strings.TrimSpace(req.Content)
	if validErr := util.ValidateStruct(req); validErr != nil {
		return respondWithAppError(apperr.Wrap(apperr.KindValidation, "invalid post", validErr), "invalid post", &tc)
	}

	req.AuthorID = session.ProfileID
	post, status, message, err := api.CreatePostHelper(r.Context(), req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       post,
	}
}

func (api *API) GetPostByID(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	postID, err := util.StringToUUID(chi.URLParam(r, "postID"))
	if err != nil {
		return respondWithAppError(apperr.Validation("invalid post id"), "invalid post id", &tc)
	}

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}

	item, status, message, err := api.GetPostByIDHelper(r.Context(), postID, session.ProfileID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       item,
	}
}

func (api *API) ToggleLike(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}

	postID, err := util.StringToUUID(chi.URLParam(r, "postID"))
	if err != nil {
		return respondWithAppError(apperr.Validation("invalid post id"), "invalid post id", &tc)
	}

	// Rapid duplicate toggles inside the guard window reach the database
	// at most once.
	latchKey := fmt.Sprintf("like:%s:%s", session.ProfileID, postID)
	if !api.Deps.Cache.TryAcquire(r.Context(), latchKey, likeToggleGuard) {
		return respondWithAppError(apperr.InFlight("like toggle already in flight"), "like toggle already in flight", &tc)
	}

	result, status, message, err := api.ToggleLikeHelper(r.Context(), postID, session.ProfileID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       result,
	}
}

func (api *API) CommentOnPost(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}

	postID, err := util.StringToUUID(chi.URLParam(r, "postID"))
	if err != nil {
		return respondWithAppError(apperr.Validation("invalid post id"), "invalid post id", &tc)
	}

	var req model.AddCommentRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	req.Comment = strings.TrimSpace(req.Comment)
	if req.Comment == "" {
		return respondWithAppError(apperr.Validation("comment cannot be empty"), "comment cannot be empty", &tc)
	}

	comment, status, message, err := api.AddCommentHelper(r.Context(), postID, session.ProfileID, req.Comment)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       comment,
	}
}

func (api *API) GetComments(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	postID, err := util.StringToUUID(chi.URLParam(r, "postID"))
	if err != nil {
		return respondWithAppError(apperr.Validation("invalid post id"), "invalid post id", &tc)
	}

	comments, status, message, err := api.GetCommentsHelper(r.Context(), postID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       comments,
	}
}
