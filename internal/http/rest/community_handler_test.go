package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vybbi/vybbi_api/internal/model"
	"github.com/vybbi/vybbi_api/util/tracing"
	"github.com/vybbi/vybbi_api/util/values"
)

// newMessageRequest builds an authenticated send-message request without a
// live router. The API has no database attached, so any accidental repo call
// fails loudly.
func newMessageRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("communityID", uuid.New().String())
	routeCtx.URLParams.Add("channelID", uuid.New().String())

	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx)
	ctx = context.WithValue(ctx, values.ContextTracingKey, tracing.Context{
		RequestID:     "test",
		RequestSource: "test",
	})
	ctx = context.WithValue(ctx, values.ContextSessionKey, model.Session{
		UserID:    uuid.New(),
		ProfileID: uuid.New(),
	})
	return r.WithContext(ctx)
}

func TestSendChannelMessageRejectsBlankContent(t *testing.T) {
	api := &API{}

	testCases := []struct {
		name string
		body string
	}{
		{"Empty", `{"content": ""}`},
		{"Spaces Only", `{"content": "   "}`},
		{"Tabs And Newlines", `{"content": "\t\n  \t"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := api.SendChannelMessage(nil, newMessageRequest(tc.body))
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status code = %d; want %d", resp.StatusCode, http.StatusBadRequest)
			}
			if resp.Status != values.BadRequestBody {
				t.Errorf("status = %q; want %q", resp.Status, values.BadRequestBody)
			}
		})
	}
}

func TestSendChannelMessageRequiresProfile(t *testing.T) {
	api := &API{}

	r := newMessageRequest(`{"content": "hello"}`)
	ctx := context.WithValue(r.Context(), values.ContextSessionKey, model.Session{
		UserID: uuid.New(), // no profile yet
	})

	resp := api.SendChannelMessage(nil, r.WithContext(ctx))
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status code = %d; want %d", resp.StatusCode, http.StatusForbidden)
	}
}
