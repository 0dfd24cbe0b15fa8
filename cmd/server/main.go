package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/hedging-my-bets/myTaskLists/internal/config"
	"github.com/hedging-my-bets/myTaskLists/internal/serverapp"
)

func main() {
	// Optional local overrides; a missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load("mytasklists.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.ApplyEnv()

	app, err := serverapp.New(serverapp.Options{
		Config: cfg,
		Logger: log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}
	defer app.Close()

	app.StartTicker(time.Minute)

	log.Printf("listening on http://localhost%s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, app.Handler()))
}
