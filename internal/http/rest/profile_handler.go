package rest

import (
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vybbi/vybbi_api/internal/http/presskit"
	"github.com/vybbi/vybbi_api/internal/model"
	"github.com/vybbi/vybbi_api/util"
	"github.com/vybbi/vybbi_api/util/apperr"
	"github.com/vybbi/vybbi_api/util/tracing"
	"github.com/vybbi/vybbi_api/util/values"
)

const maxAvatarBytes = 5 << 20 // 5 MiB

func (api *API) ProfileRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)

		// Query Params: ?type=artist|venue|agent|manager|influencer
		r.Method(http.MethodGet, "/", Handler(api.ListProfiles))
		r.Method(http.MethodPut, "/me", Handler(api.UpsertMyProfile))
		r.Method(http.MethodPost, "/me/avatar", Handler(api.UploadAvatar))
		r.Method(http.MethodPost, "/me/presskit", Handler(api.GeneratePressKit))
		r.Method(http.MethodGet, "/{idOrSlug}", Handler(api.GetProfile))
	})

	return mux
}

// ListProfiles is the public directory, optionally filtered by profile type.
func (api *API) ListProfiles(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	profileType := r.URL.Query().Get("type")
	if profileType != "" && !validProfileType(profileType) {
		return respondWithAppError(apperr.Validation("unknown profile type"), "unknown profile type", &tc)
	}

	profiles, err := api.ListProfilesRepo(r.Context(), profileType)
	if err != nil {
		return respondWithError(err, "Failed to fetch profiles", util.StatusFromError(err), &tc)
	}

	return &ServerResponse{
		Message:    "Profiles fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       profiles,
	}
}

// GetProfile resolves either a profile id or its slug.
func (api *API) GetProfile(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	idOrSlug := chi.URLParam(r, "idOrSlug")

	var profile model.Profile
	var err error
	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		profile, err = api.GetProfileByIDRepo(r.Context(), id)
	} else {
		profile, err = api.GetProfileBySlugRepo(r.Context(), idOrSlug)
	}
	if err != nil {
		return respondWithError(err, "Failed to fetch profile", util.StatusFromError(err), &tc)
	}

	return &ServerResponse{
		Message:    "Profile fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       profile,
	}
}

// UpsertMyProfile creates the viewer's profile on first call and updates it
// afterwards. The slug is derived from the display name.
func (api *API) UpsertMyProfile(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}

	var req model.UpsertProfileRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if validErr := util.ValidateStruct(req); validErr != nil {
		return respondWithAppError(apperr.Wrap(apperr.KindValidation, "invalid profile", validErr), "invalid profile", &tc)
	}

	profile, err := api.UpsertProfileRepo(r.Context(), session.UserID, req)
	if err != nil {
		return respondWithError(err, "Failed to save profile", util.StatusFromError(err), &tc)
	}

	return &ServerResponse{
		Message:    "Profile saved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       profile,
	}
}

// UploadAvatar takes a multipart "avatar" file, pushes it to the image host
// and stores the hosted URL on the profile.
func (api *API) UploadAvatar(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}
	if session.ProfileID == uuid.Nil {
		return respondWithAppError(apperr.Forbidden("complete your profile first"), "complete your profile first", &tc)
	}

	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		return respondWithError(err, "unable to parse upload", values.BadRequestBody, &tc)
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		return respondWithError(err, "avatar file is required", values.BadRequestBody, &tc)
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "avatar-*"+sanitizeExt(header.Filename))
	if err != nil {
		return respondWithError(err, "unable to stage upload", values.Error, &tc)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		return respondWithError(err, "unable to stage upload", values.Error, &tc)
	}
	tmp.Close()

	avatarURL, err := api.Deps.Cloudinary.UploadImage(r.Context(), tmp.Name(), "avatars")
	if err != nil {
		return respondWithError(err, "Failed to upload avatar", values.Error, &tc)
	}

	profile, err := api.UpdateAvatarRepo(r.Context(), session.ProfileID, avatarURL)
	if err != nil {
		return respondWithError(err, "Failed to save avatar", util.StatusFromError(err), &tc)
	}

	return &ServerResponse{
		Message:    "Avatar updated successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       profile,
	}
}

// GeneratePressKit asks the render service for a PDF of the viewer's profile.
func (api *API) GeneratePressKit(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	session, err := sessionFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get session from context", values.NotAuthorised, &tc)
	}
	if session.ProfileID == uuid.Nil {
		return respondWithAppError(apperr.Forbidden("complete your profile first"), "complete your profile first", &tc)
	}

	locale := r.URL.Query().Get("locale")
	result, err := api.Deps.PressKit.Generate(r.Context(), presskit.GenerateRequest{
		ProfileID: session.ProfileID.String(),
		Locale:    locale,
	})
	if err != nil {
		return respondWithError(err, "Failed to generate press kit", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Press kit generated successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       result,
	}
}

func validProfileType(profileType string) bool {
	switch profileType {
	case values.ProfileArtist, values.ProfileVenue, values.ProfileAgent,
		values.ProfileManager, values.ProfileInfluencer:
		return true
	}
	return false
}

func sanitizeExt(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	ext := filename[idx:]
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
