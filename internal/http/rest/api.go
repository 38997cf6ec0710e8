package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vybbi/vybbi_api/config"
	"github.com/vybbi/vybbi_api/internal/content"
	deps "github.com/vybbi/vybbi_api/internal/debs"
	smtp "github.com/vybbi/vybbi_api/util/email"
	"github.com/vybbi/vybbi_api/util/values"
)

const (
	defaultIdleTimeout    = time.Minute
	defaultReadTimeout    = 5 * time.Second
	defaultWriteTimeout   = 10 * time.Second
	defaultShutdownPeriod = 30 * time.Second
)

type Handler func(w http.ResponseWriter, r *http.Request) *ServerResponse

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := h(w, r)
	respByte, err := json.Marshal(resp)
	if err != nil {
		writeErrorResponse(w, err, values.Error, "unable to marshal server response")
		return
	}
	writeJSONResponse(w, respByte, resp.StatusCode)
}

type API struct {
	Server  *http.Server
	Config  *config.Config
	Deps    *deps.Dependencies
	Mailer  *smtp.Mailer
	DB      *pgxpool.Pool
	Content *content.Store
}

// Init wires the pieces that need the API's repos: the realtime hub resolves
// message senders through the profile repo and checks channel access against
// community membership.
func (api *API) Init() {
	api.Deps.Hub.SetResolver(api.GetProfileSummaryByID)
	api.Deps.Hub.SetMembership(api.UserCanAccessChannel)
}

func (api *API) Serve() error {
	api.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", api.Config.Port),
		IdleTimeout:  defaultIdleTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		Handler:      api.setUpServerHandler(),
	}
	return api.Server.ListenAndServe()
}

func (api *API) setUpServerHandler() http.Handler {
	mux := chi.NewRouter()
	mux.Use(RequestTracing)

	mux.Get("/",
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("Vybbi API"))
		},
	)

	mux.Mount("/auth", api.AuthRoutes())
	mux.Mount("/feed", api.FeedRoutes())
	mux.Mount("/posts", api.PostRoutes())
	mux.Mount("/service-requests", api.ServiceRequestRoutes())
	mux.Mount("/announcements", api.AnnouncementRoutes())
	mux.Mount("/communities", api.CommunityRoutes())
	mux.Mount("/profiles", api.ProfileRoutes())
	mux.Mount("/affiliate", api.AffiliateRoutes())
	mux.Mount("/content", api.ContentRoutes())
	mux.Mount("/search", api.SearchRoutes())
	mux.Mount("/users", api.UserRoutes())

	mux.Get("/ws", api.HandleRealtime)

	return mux
}

func (a *API) Shutdown() error {
	err := a.Server.Shutdown(context.Background())
	if err != nil {
		return err
	}
	return nil
}
