// Package embedding turns text into sentence embeddings through a registry
// of pretrained models. Loaded models are cached for the process lifetime.
package embedding

import (
	"context"
	"fmt"

	"textsim/internal/logger"
	"textsim/internal/similarity"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// Encoder is a loaded model.
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}

// Loader produces an Encoder for a registered model.
type Loader interface {
	Load(ctx context.Context, model Model) (Encoder, error)
}

// Provider encodes texts with a model selected by name. Each model is loaded
// at most once; it is never evicted.
type Provider struct {
	loader Loader
	models *cache.Cache
	group  singleflight.Group
	logger logger.ILogger
}

func NewProvider(loader Loader, log logger.ILogger) *Provider {
	return &Provider{
		loader: loader,
		models: cache.New(cache.NoExpiration, 0),
		logger: log,
	}
}

// Encode returns one L2-normalized vector per text, in input order.
func (p *Provider) Encode(ctx context.Context, texts []string, modelName string) ([][]float32, error) {
	enc, err := p.model(ctx, modelName)
	if err != nil {
		return nil, err
	}

	vectors, err := enc.Encode(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode with %s: %w", modelName, err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d", similarity.ErrInvalidInput, len(texts), len(vectors))
	}

	for i := range vectors {
		similarity.Normalize(vectors[i])
	}
	return vectors, nil
}

// Preload loads the named models ahead of the first Encode.
func (p *Provider) Preload(ctx context.Context, names ...string) error {
	for _, name := range names {
		if _, err := p.model(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// Loaded reports whether the named model is already in the cache.
func (p *Provider) Loaded(name string) bool {
	_, found := p.models.Get(name)
	return found
}

func (p *Provider) model(ctx context.Context, name string) (Encoder, error) {
	if x, found := p.models.Get(name); found {
		return x.(Encoder), nil
	}

	model, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}

	v, err, _ := p.group.Do(name, func() (interface{}, error) {
		if x, found := p.models.Get(name); found {
			return x, nil
		}

		p.logger.Info("embedding", "loading model", map[string]interface{}{"model": name})
		enc, err := p.loader.Load(ctx, model)
		if err != nil {
			p.logger.Error("embedding", "failed to load model", map[string]interface{}{
				"model": name,
				"error": err.Error(),
			})
			return nil, fmt.Errorf("failed to load model %s: %w", name, err)
		}

		p.models.Set(name, enc, cache.NoExpiration)
		return enc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Encoder), nil
}
