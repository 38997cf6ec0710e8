package rest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/vybbi/vybbi_api/config"
)

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return token
}

func TestVerifyToken(t *testing.T) {
	const secret = "access-secret"
	api := &API{Config: &config.Config{JwtSecret: secret, RefreshSecret: "refresh-secret"}}

	tests := []struct {
		name    string
		claims  jwt.MapClaims
		secret  string
		wantErr bool
	}{
		{
			name: "valid access token",
			claims: jwt.MapClaims{
				"sub": "user-1",
				"typ": "access",
				"exp": time.Now().Add(time.Hour).Unix(),
				"iat": time.Now().Unix(),
			},
			secret: secret,
		},
		{
			name: "signed token without exp is rejected",
			claims: jwt.MapClaims{
				"sub": "user-1",
				"typ": "access",
				"iat": time.Now().Unix(),
			},
			secret:  secret,
			wantErr: true,
		},
		{
			name: "expired token is rejected",
			claims: jwt.MapClaims{
				"sub": "user-1",
				"typ": "access",
				"exp": time.Now().Add(-time.Hour).Unix(),
			},
			secret:  secret,
			wantErr: true,
		},
		{
			name: "refresh token on the access path is rejected",
			claims: jwt.MapClaims{
				"sub": "user-1",
				"typ": "refresh",
				"exp": time.Now().Add(time.Hour).Unix(),
			},
			secret:  secret,
			wantErr: true,
		},
		{
			name: "token signed with the wrong secret is rejected",
			claims: jwt.MapClaims{
				"sub": "user-1",
				"typ": "access",
				"exp": time.Now().Add(time.Hour).Unix(),
			},
			secret:  "someone-elses-secret",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := signTestToken(t, tt.secret, tt.claims)

			claims, err := api.verifyToken(token, false)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("verifyToken returned error: %v", err)
			}
			if claims.UserID != "user-1" {
				t.Errorf("user id = %q; want %q", claims.UserID, "user-1")
			}
			if claims.Type != "access" {
				t.Errorf("token type = %q; want %q", claims.Type, "access")
			}
			if claims.Exp == 0 {
				t.Error("exp must be carried onto the claims")
			}
		})
	}
}
