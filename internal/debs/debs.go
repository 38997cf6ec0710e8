package deps

import (
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vybbi/vybbi_api/config"
	"github.com/vybbi/vybbi_api/internal/cache"
	"github.com/vybbi/vybbi_api/internal/db"
	"github.com/vybbi/vybbi_api/internal/http/aisearch"
	"github.com/vybbi/vybbi_api/internal/http/presskit"
	"github.com/vybbi/vybbi_api/util/realtime"
	"github.com/vybbi/vybbi_api/util/storage"
)

type Dependencies struct {
	DB         *db.DB
	Cache      *cache.Cache
	Cloudinary *storage.Cloudinary
	Hub        *realtime.Hub
	AISearch   *aisearch.Client
	PressKit   *presskit.Client
}

func New(cfg *config.Config) *Dependencies {
	database, err := db.New(cfg.Dsn)
	if err != nil {
		log.Panicln("failed to connect to database", "error", err)
	}

	cloudinary := storage.NewCloudinary(cfg)
	// sender resolver is attached once the API layer is wired, see api.Init
	hub := realtime.NewHub(nil)

	deps := Dependencies{
		DB:         database,
		Cache:      cache.New(cfg.RedisURL),
		Cloudinary: cloudinary,
		Hub:        hub,
		AISearch:   aisearch.NewClient(cfg.AISearchURL, cfg.AISearchAPIKey),
		PressKit:   presskit.NewClient(cfg.PressKitURL),
	}
	return &deps
}

func (d *Dependencies) Pool() *pgxpool.Pool {
	return d.DB.Pool()
}
