package rest

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vybbi/vybbi_api/internal/model"
	"github.com/vybbi/vybbi_api/util"
	"github.com/vybbi/vybbi_api/util/apperr"
)

const profileColumns = `
    id, user_id, display_name, slug, profile_type, bio, avatar_url, location,
    is_public, created_at, updated_at
`

func scanProfile(row pgx.Row) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.DisplayName, &p.Slug, &p.ProfileType, &p.Bio,
		&p.AvatarURL, &p.Location, &p.IsPublic, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (api *API) GetProfileByIDRepo(ctx context.Context, profileID uuid.UUID) (model.Profile, error) {
	profile, err := scanProfile(api.DB.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM profiles WHERE id = $1", profileColumns), profileID))
	if err == pgx.ErrNoRows {
		return model.Profile{}, apperr.NotFound("profile not found")
	}
	if err != nil {
		return model.Profile{}, apperr.Wrap(apperr.KindInternal, "fetching profile", err)
	}
	return profile, nil
}

func (api *API) GetProfileBySlugRepo(ctx context.Context, slug string) (model.Profile, error) {
	profile, err := scanProfile(api.DB.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM profiles WHERE slug = $1", profileColumns), slug))
	if err == pgx.ErrNoRows {
		return model.Profile{}, apperr.NotFound("profile not found")
	}
	if err != nil {
		return model.Profile{}, apperr.Wrap(apperr.KindInternal, "fetching profile", err)
	}
	return profile, nil
}

// GetProfileByUserID returns the profile owned by userID, or NotFound while
// the user is still onboarding.
func (api *API) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	profile, err := scanProfile(api.DB.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM profiles WHERE user_id = $1", profileColumns), userID))
	if err == pgx.ErrNoRows {
		return model.Profile{}, apperr.NotFound("profile not found")
	}
	if err != nil {
		return model.Profile{}, apperr.Wrap(apperr.KindInternal, "fetching profile", err)
	}
	return profile, nil
}

// GetProfileSummaryByID is the sender lookup the realtime hub uses to enrich
// outgoing messages.
func (api *API) GetProfileSummaryByID(ctx context.Context, profileID uuid.UUID) (*model.ProfileSummary, error) {
	var summary model.ProfileSummary
	err := api.DB.QueryRow(ctx, `
        SELECT id, display_name, avatar_url, profile_type
        FROM profiles WHERE id = $1
    `, profileID).Scan(
		&summary.ID, &summary.DisplayName, &summary.AvatarURL, &summary.ProfileType,
	)
	if err == pgx.ErrNoRows {
		return nil, apperr.NotFound("profile not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "fetching profile summary", err)
	}
	return &summary, nil
}

func (api *API) ListProfilesRepo(ctx context.Context, profileType string) ([]model.Profile, error) {
	query := fmt.Sprintf("SELECT %s FROM profiles WHERE is_public = TRUE", profileColumns)
	var args []interface{}

	if profileType != "" {
		query += " AND profile_type = $1"
		args = append(args, profileType)
	}
	query += " ORDER BY display_name ASC"

	rows, err := api.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

// UpsertProfileRepo creates or updates the user's single profile. The slug is
// derived from the display name plus the id's short prefix on first insert
// and never changes afterwards, so profile URLs stay stable across renames.
func (api *API) UpsertProfileRepo(ctx context.Context, userID uuid.UUID, req model.UpsertProfileRequest) (model.Profile, error) {
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	profileID := uuid.New()
	slug := fmt.Sprintf("%s-%s", util.Slugify(req.DisplayName), profileID.String()[:8])

	profile, err := scanProfile(api.DB.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO profiles (
            id, user_id, display_name, slug, profile_type, bio, location,
            is_public, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
        ON CONFLICT (user_id) DO UPDATE SET
            display_name = EXCLUDED.display_name,
            profile_type = EXCLUDED.profile_type,
            bio          = EXCLUDED.bio,
            location     = EXCLUDED.location,
            is_public    = EXCLUDED.is_public,
            updated_at   = NOW()
        RETURNING %s
    `, profileColumns),
		profileID, userID, req.DisplayName, slug, req.ProfileType,
		req.Bio, req.Location, isPublic,
	))
	if err != nil {
		log.Println("error upserting profile", err)
		return model.Profile{}, apperr.Wrap(apperr.KindInternal, "saving profile", err)
	}
	return profile, nil
}

func (api *API) UpdateAvatarRepo(ctx context.Context, profileID uuid.UUID, avatarURL string) (model.Profile, error) {
	profile, err := scanProfile(api.DB.QueryRow(ctx, fmt.Sprintf(`
        UPDATE profiles SET avatar_url = $2, updated_at = NOW()
        WHERE id = $1
        RETURNING %s
    `, profileColumns), profileID, avatarURL))
	if err == pgx.ErrNoRows {
		return model.Profile{}, apperr.NotFound("profile not found")
	}
	if err != nil {
		return model.Profile{}, apperr.Wrap(apperr.KindInternal, "saving avatar", err)
	}
	return profile, nil
}
