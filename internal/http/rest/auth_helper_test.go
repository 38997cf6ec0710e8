package rest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/vybbi/vybbi_api/internal/model"
)

func TestBuildLoginResponse(t *testing.T) {
	first := "Nova"
	lang := "fr"
	user := model.User{
		ID:                uuid.New(),
		FirstName:         &first,
		Email:             "nova@example.com",
		IsVerified:        true,
		PreferredLanguage: &lang,
	}
	profile := model.Profile{
		ID:          uuid.New(),
		UserID:      user.ID,
		DisplayName: "DJ Nova",
		Slug:        "dj-nova-abc12345",
		ProfileType: "artist",
	}

	tests := []struct {
		name    string
		profile *model.Profile
	}{
		{name: "onboarded user carries the profile", profile: &profile},
		{name: "pre-onboarding user has no profile", profile: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := buildLoginResponse(user, tt.profile, "tok-123")

			if resp.User == nil {
				t.Fatal("response user is nil")
			}
			if resp.User.ID != user.ID {
				t.Errorf("user id = %v; want %v", resp.User.ID, user.ID)
			}
			if resp.User.Email != user.Email {
				t.Errorf("email = %q; want %q", resp.User.Email, user.Email)
			}
			if resp.User.FirstName == nil || *resp.User.FirstName != first {
				t.Errorf("firstname = %v; want %q", resp.User.FirstName, first)
			}
			if !resp.User.IsVerified {
				t.Error("is_verified must be carried over")
			}
			if resp.Token != "tok-123" {
				t.Errorf("token = %q; want %q", resp.Token, "tok-123")
			}

			if tt.profile == nil {
				if resp.Profile != nil {
					t.Errorf("profile = %+v; want nil", resp.Profile)
				}
				return
			}
			if resp.Profile == nil {
				t.Fatal("login response must attach the profile on every path")
			}
			if resp.Profile.Slug != profile.Slug {
				t.Errorf("profile slug = %q; want %q", resp.Profile.Slug, profile.Slug)
			}
		})
	}
}
