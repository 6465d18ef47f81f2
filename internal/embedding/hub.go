package embedding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"textsim/internal/logger"

	"github.com/gomlx/go-huggingface/hub"
)

// ModelInfo is the subset of a model's config.json the tool relies on.
type ModelInfo struct {
	ModelType  string `json:"model_type"`
	HiddenSize int    `json:"hidden_size"`
}

// ModelFiles holds paths to downloaded model artifacts. Optional files that
// the repository does not provide have empty paths.
type ModelFiles struct {
	ConfigPath         string
	TokenizerPath      string
	ModulesPath        string
	SentenceConfigPath string
}

// HubLoader loads models by fetching their configuration from the Hugging
// Face Hub and binding them to a feature-extraction endpoint.
type HubLoader struct {
	endpoint string
	token    string
	cacheDir string
	client   *http.Client
	logger   logger.ILogger
}

func NewHubLoader(endpoint string, token string, cacheDir string, log logger.ILogger) *HubLoader {
	return &HubLoader{
		endpoint: endpoint,
		token:    token,
		cacheDir: cacheDir,
		client:   &http.Client{},
		logger:   log,
	}
}

// Load implements Loader.
func (l *HubLoader) Load(ctx context.Context, model Model) (Encoder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	configPath, err := l.repo(model).DownloadFile("config.json")
	if err != nil {
		return nil, fmt.Errorf("failed to download config.json for %s: %w", model.RepoID, err)
	}

	info, err := ReadModelInfo(configPath)
	if err != nil {
		return nil, err
	}

	l.logger.Info("embedding", "model loaded", map[string]interface{}{
		"model":       model.Name,
		"repo":        model.RepoID,
		"model_type":  info.ModelType,
		"hidden_size": info.HiddenSize,
	})

	return NewRemoteModel(model, l.endpoint, l.token, info.HiddenSize, l.client), nil
}

// FetchFiles downloads the configuration and tokenizer artifacts of model
// into the hub cache. Weights are left to the inference service.
func (l *HubLoader) FetchFiles(model Model) (*ModelFiles, error) {
	repo := l.repo(model)
	files := &ModelFiles{}

	configPath, err := repo.DownloadFile("config.json")
	if err != nil {
		return nil, fmt.Errorf("failed to download config.json: %w", err)
	}
	files.ConfigPath = configPath

	if tokPath, err := repo.DownloadFile("tokenizer.json"); err == nil {
		files.TokenizerPath = tokPath
	} else if tokPath, err := repo.DownloadFile("vocab.txt"); err == nil {
		files.TokenizerPath = tokPath
	}

	// sentence-transformers repositories only
	if modulesPath, err := repo.DownloadFile("modules.json"); err == nil {
		files.ModulesPath = modulesPath
	}
	if stPath, err := repo.DownloadFile("sentence_bert_config.json"); err == nil {
		files.SentenceConfigPath = stPath
	}

	return files, nil
}

func (l *HubLoader) repo(model Model) *hub.Repo {
	repo := hub.New(model.RepoID)
	if l.cacheDir != "" {
		repo = repo.WithCacheDir(l.cacheDir)
	}
	return repo
}

// ReadModelInfo parses a Hugging Face config.json file.
func ReadModelInfo(path string) (ModelInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ModelInfo{}, fmt.Errorf("failed to read model config: %w", err)
	}

	var info ModelInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return ModelInfo{}, fmt.Errorf("failed to parse model config %s: %w", path, err)
	}
	return info, nil
}
