package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/nextapp/fleetview/api"
	"github.com/nextapp/fleetview/config"
	"github.com/nextapp/fleetview/internal"
	"github.com/nextapp/fleetview/mapview"
	"github.com/nextapp/fleetview/session"
	"github.com/nextapp/fleetview/ui"
)

func main() {
	baseURL := flag.String("baseURL", "", "API base URL (overrides config)")
	sessionFile := flag.String("session", "", "session file path (overrides config)")
	previewPort := flag.Int("previewPort", -1, "local map preview port, 0 picks a free one (overrides config)")
	flag.Parse()

	internal.InitLogging()
	_ = godotenv.Load()
	if err := config.LoadAppConfig(); err != nil {
		panic(err)
	}
	cfg := config.Config
	if *baseURL != "" {
		cfg.Server.BaseURL = *baseURL
	}
	if *sessionFile != "" {
		cfg.UI.SessionFile = *sessionFile
	}
	if *previewPort >= 0 {
		cfg.UI.PreviewPort = *previewPort
	}
	if v := os.Getenv("FLEETVIEW_BASE_URL"); v != "" && *baseURL == "" {
		cfg.Server.BaseURL = v
	}

	store, err := session.OpenFileStore(cfg.UI.SessionFile)
	if err != nil {
		panic(err)
	}
	client := api.NewClient(cfg.Server, store.ClientID())

	sources := []api.PositionSource{client.LastPositionsSource()}
	if cfg.Feeds.GTFSRTVehiclePositionsURL != "" {
		sources = append(sources, api.NewGTFSRTSource(cfg.Feeds.GTFSRTVehiclePositionsURL, cfg.Server.Timeout()))
	}
	sources = append(sources, client.RosterSource())

	preview := mapview.NewPreview(cfg.UI.PreviewPort)
	preview.Start()
	defer func() {
		if err := preview.Shutdown(context.Background()); err != nil {
			log.Printf("preview shutdown: %v", err)
		}
	}()

	loop := ui.NewLoop()
	deps := ui.Deps{
		Auth:     client,
		Vehicles: client,
		Store:    store,
		Preview:  preview,
		Sources:  sources,
	}
	if cfg.Feeds.LiveStreamURL != "" {
		deps.Live = api.NewLiveStream(cfg.Feeds.LiveStreamURL)
	}

	ctx, cancel := context.WithCancel(context.Background())
	router := ui.NewRouter(loop, termRenderer(os.Stdout), deps, ui.RouterConfig{
		SplashDelay:  cfg.UI.SplashDelay(),
		SuccessGrace: cfg.UI.SuccessGrace(),
		OnExit:       cancel,
	})

	router.Start()
	go readInput(ctx, loop, router, os.Stdin)
	loop.Run(ctx)
}
