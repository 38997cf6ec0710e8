package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vybbi/vybbi_api/config"
	"github.com/vybbi/vybbi_api/internal/content"
	deps "github.com/vybbi/vybbi_api/internal/debs"
	api "github.com/vybbi/vybbi_api/internal/http/rest"
	smtp "github.com/vybbi/vybbi_api/util/email"
)

const (
	allowConnectionsAfterShutdown = 1 * time.Second
)

func main() {
	cfg := config.New()
	deps := deps.New(cfg)

	mailer := smtp.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)

	kb, err := content.Load()
	if err != nil {
		log.Panicln("failed to load knowledge base", "error", err)
	}

	a := &api.API{
		Config:  cfg,
		Deps:    deps,
		Mailer:  mailer,
		DB:      deps.Pool(),
		Content: kb,
	}
	a.Init()
	go deps.Hub.Run()
	go func() {
		log.Printf("Server running on port %v ...", cfg.Port)
		log.Fatal(a.Serve())
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-stopChan

	log.Println("Request to shutdown server. Doing nothing for ", allowConnectionsAfterShutdown)
	waitTimer := time.NewTimer(allowConnectionsAfterShutdown)
	<-waitTimer.C

	log.Println("Shutting down server...")

	deps.DB.Close()
	deps.Cache.Close()
	log.Println("Database connections closed.")

	log.Fatal(a.Shutdown())
}
