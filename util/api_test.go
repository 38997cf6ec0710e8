package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/vybbi/vybbi_api/util/apperr"
	"github.com/vybbi/vybbi_api/util/values"
)

func TestStatusCode(t *testing.T) {
	testCases := []struct {
		name         string
		status       string
		expectedCode int
	}{
		{"Success", values.Success, http.StatusOK},
		{"Created", values.Created, http.StatusCreated},
		{"Error", values.Error, http.StatusInternalServerError},
		{"Bad Request", values.BadRequestBody, http.StatusBadRequest},
		{"Not Found", values.NotFound, http.StatusNotFound},
		{"Conflict", values.Conflict, http.StatusConflict},
		{"Not Authorised", values.NotAuthorised, http.StatusUnauthorized},
		{"Token Expired", values.TokenExpired, http.StatusUnauthorized},
		{"Not Allowed", values.NotAllowed, http.StatusForbidden},
		{"In Flight", values.InFlight, http.StatusTooManyRequests},
		{"Unknown Defaults To OK", "something-else", http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if code := StatusCode(tc.status); code != tc.expectedCode {
				t.Errorf("StatusCode(%q) = %d; want %d", tc.status, code, tc.expectedCode)
			}
		})
	}
}

func TestStatusFromError(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus string
	}{
		{"Validation", apperr.Validation("bad"), values.BadRequestBody},
		{"Not Found", apperr.NotFound("missing"), values.NotFound},
		{"Conflict", apperr.Conflict("dup"), values.Conflict},
		{"Unauthenticated", apperr.Unauthenticated("who"), values.NotAuthorised},
		{"Forbidden", apperr.Forbidden("no"), values.NotAllowed},
		{"In Flight", apperr.InFlight("busy"), values.InFlight},
		{"Wrapped Kind Survives", fmt.Errorf("ctx: %w", apperr.NotFound("gone")), values.NotFound},
		{"Plain Error", errors.New("boom"), values.Error},
		{"Internal", apperr.Internal("oops"), values.Error},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if status := StatusFromError(tc.err); status != tc.expectedStatus {
				t.Errorf("StatusFromError(%v) = %q; want %q", tc.err, status, tc.expectedStatus)
			}
		})
	}
}

func TestValidEmail(t *testing.T) {
	if err := ValidEmail("artist@example.com"); err != nil {
		t.Errorf("ValidEmail rejected a valid address: %v", err)
	}
	for _, email := range []string{"", "not-an-email", "@nope"} {
		if err := ValidEmail(email); err == nil {
			t.Errorf("ValidEmail(%q) succeeded; want error", email)
		}
	}
}
