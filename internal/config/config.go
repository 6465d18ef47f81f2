package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Embedding EmbeddingConfig
}

type AppConfig struct {
	Environment  string
	LogFilePath  string
	DefaultModel string
}

type EmbeddingConfig struct {
	InferenceEndpoint string
	HubCacheDir       string
	APIToken          string
}

const (
	userEnvName     = "AUTH_USER"
	passwordEnvName = "AUTH_PASSWORD"
)

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Environment:  getEnv("GO_ENV", "development"),
			LogFilePath:  getEnv("LOG_FILE_PATH", "textsim.log"),
			DefaultModel: getEnv("DEFAULT_MODEL", "paraphrase-multilingual-MiniLM-L12-v2"),
		},
		Embedding: EmbeddingConfig{
			InferenceEndpoint: getEnv("HF_INFERENCE_ENDPOINT", "https://router.huggingface.co/hf-inference/models"),
			HubCacheDir:       getEnv("HF_HUB_CACHE_DIR", defaultHubCacheDir()),
			APIToken:          getEnv("HF_TOKEN", ""),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Credentials returns the configured username and password. They are read
// from the environment on every call, so a login check always sees the
// current values.
func Credentials() (string, string) {
	return os.Getenv(userEnvName), os.Getenv(passwordEnvName)
}

func defaultHubCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", "huggingface", "hub")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
