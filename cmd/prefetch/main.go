// Command prefetch downloads the configuration and tokenizer files of the
// registered models into the local hub cache, so the first comparison with
// each model does not wait on the Hub.
//
// Usage:
//
//	prefetch [model ...]
//
// With no arguments every registered model is fetched.
package main

import (
	"fmt"
	"os"

	"textsim/internal/config"
	"textsim/internal/embedding"
	"textsim/internal/logger"
)

func main() {
	cfg := config.Load()
	zlog := logger.NewFileLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer zlog.Sync()

	names := os.Args[1:]
	if len(names) == 0 {
		names = embedding.Names()
	}

	models := make([]embedding.Model, 0, len(names))
	for _, name := range names {
		m, ok := embedding.Lookup(name)
		if !ok {
			fmt.Printf("Error: unknown model %q\n", name)
			fmt.Printf("Available models: %v\n", embedding.Names())
			os.Exit(1)
		}
		models = append(models, m)
	}

	loader := embedding.NewHubLoader(cfg.Embedding.InferenceEndpoint, cfg.Embedding.APIToken, cfg.Embedding.HubCacheDir, zlog)
	fmt.Printf("Hub cache: %s\n\n", cfg.Embedding.HubCacheDir)

	failed := 0
	for i, m := range models {
		fmt.Printf("[%d/%d] %s (%s)\n", i+1, len(models), m.Name, m.RepoID)

		files, err := loader.FetchFiles(m)
		if err != nil {
			fmt.Printf("  ❌ %v\n", err)
			zlog.Error("prefetch", "failed to fetch model files", map[string]interface{}{
				"model": m.Name,
				"error": err.Error(),
			})
			failed++
			continue
		}

		printFile("config", files.ConfigPath)
		printFile("tokenizer", files.TokenizerPath)
		printFile("modules", files.ModulesPath)
		printFile("sentence config", files.SentenceConfigPath)

		if info, err := embedding.ReadModelInfo(files.ConfigPath); err == nil {
			fmt.Printf("  ✅ %s, hidden size %d\n", info.ModelType, info.HiddenSize)
		}
		fmt.Println()
	}

	if failed > 0 {
		fmt.Printf("%d of %d models failed\n", failed, len(models))
		_ = zlog.Sync()
		os.Exit(1)
	}
}

func printFile(label, path string) {
	if path == "" {
		fmt.Printf("  - %-16s not provided\n", label)
		return
	}
	fmt.Printf("  - %-16s %s\n", label, path)
}
