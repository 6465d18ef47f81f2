package main

import (
	"context"
	"fmt"
	"log"

	"textsim/internal/analyzer"
	"textsim/internal/auth"
	"textsim/internal/config"
	"textsim/internal/embedding"
	"textsim/internal/logger"
	"textsim/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

func checkCredentials() {
	user, pass := config.Credentials()
	if user == "" || pass == "" {
		displayCredentialsWarning()
	}
}

func displayCredentialsWarning() {
	fmt.Println("⚠️  Warning: AUTH_USER or AUTH_PASSWORD is not set. Every login attempt will be rejected.")
}

func main() {
	cfg := config.Load()
	checkCredentials()

	zlog := logger.NewFileLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer zlog.Sync()

	if _, ok := embedding.Lookup(cfg.App.DefaultModel); !ok {
		zlog.Warn("main", "unknown default model, using first registered model", map[string]interface{}{
			"model": cfg.App.DefaultModel,
		})
	}

	loader := embedding.NewHubLoader(cfg.Embedding.InferenceEndpoint, cfg.Embedding.APIToken, cfg.Embedding.HubCacheDir, zlog)
	provider := embedding.NewProvider(loader, zlog)
	service := analyzer.NewService(provider, zlog)
	gate := auth.NewGate(config.Credentials, zlog)
	controller := session.NewController(gate, service, zlog)

	zlog.Info("main", "starting", map[string]interface{}{
		"environment": cfg.App.Environment,
		"endpoint":    cfg.Embedding.InferenceEndpoint,
	})

	p := tea.NewProgram(initialModel(context.Background(), controller, provider, cfg.App.DefaultModel))
	if _, err := p.Run(); err != nil {
		zlog.Error("main", "program exited with error", map[string]interface{}{"error": err.Error()})
		_ = zlog.Sync()
		log.Fatal(err)
	}

	zlog.Info("main", "exiting", nil)
}
