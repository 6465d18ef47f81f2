// Package analyzer compares two texts: normalize, embed both in one batch,
// then score with cosine similarity.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"textsim/internal/logger"
	"textsim/internal/similarity"
	"textsim/internal/textnorm"
)

// ErrEmptyInput is returned when either text is blank.
var ErrEmptyInput = errors.New("both texts must be filled in")

// Embedder encodes a batch of texts with the named model.
type Embedder interface {
	Encode(ctx context.Context, texts []string, modelName string) ([][]float32, error)
}

// Result is the outcome of one comparison. Percent is always Similarity*100.
type Result struct {
	ModelName  string
	Similarity float64
	Percent    float64
}

func newResult(modelName string, score float64) Result {
	return Result{
		ModelName:  modelName,
		Similarity: score,
		Percent:    score * 100,
	}
}

type Service struct {
	embedder Embedder
	logger   logger.ILogger
}

func NewService(embedder Embedder, log logger.ILogger) *Service {
	return &Service{
		embedder: embedder,
		logger:   log,
	}
}

// Analyze returns the similarity between text1 and text2 under modelName.
func (s *Service) Analyze(ctx context.Context, text1, text2, modelName string) (Result, error) {
	if strings.TrimSpace(text1) == "" || strings.TrimSpace(text2) == "" {
		return Result{}, ErrEmptyInput
	}

	normalized1 := textnorm.Normalize(text1)
	normalized2 := textnorm.Normalize(text2)

	s.logger.Debug("analyzer", "texts normalized", map[string]interface{}{
		"model": modelName,
		"text1": normalized1,
		"text2": normalized2,
	})

	// Both texts go in one call; some providers embed batches differently.
	embeddings, err := s.embedder.Encode(ctx, []string{normalized1, normalized2}, modelName)
	if err != nil {
		return Result{}, err
	}
	if len(embeddings) != 2 {
		return Result{}, fmt.Errorf("%w: expected 2 embeddings, got %d", similarity.ErrInvalidInput, len(embeddings))
	}

	score, err := similarity.Cosine(embeddings[0], embeddings[1])
	if err != nil {
		return Result{}, err
	}

	result := newResult(modelName, score)
	s.logger.Info("analyzer", "similarity computed", map[string]interface{}{
		"model":      result.ModelName,
		"similarity": result.Similarity,
		"percent":    result.Percent,
	})
	return result, nil
}
