package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"textsim/internal/similarity"
)

// FeatureExtractionRequest is the body accepted by the Hugging Face
// feature-extraction pipeline.
type FeatureExtractionRequest struct {
	Inputs  []string                 `json:"inputs"`
	Options FeatureExtractionOptions `json:"options"`
}

type FeatureExtractionOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// RemoteModel is a loaded model served by a feature-extraction endpoint.
type RemoteModel struct {
	model     Model
	endpoint  string
	token     string
	dimension int
	client    *http.Client
}

// NewRemoteModel binds model to the inference endpoint. dimension is the
// expected vector length; zero disables the check.
func NewRemoteModel(model Model, endpoint string, token string, dimension int, client *http.Client) *RemoteModel {
	if client == nil {
		client = &http.Client{}
	}
	return &RemoteModel{
		model:     model,
		endpoint:  strings.TrimRight(endpoint, "/"),
		token:     token,
		dimension: dimension,
		client:    client,
	}
}

func (m *RemoteModel) Model() Model {
	return m.model
}

func (m *RemoteModel) Dimension() int {
	return m.dimension
}

func (m *RemoteModel) URL() string {
	return fmt.Sprintf("%s/%s/pipeline/feature-extraction", m.endpoint, m.model.RepoID)
}

// Encode returns one L2-normalized vector per input text, in input order.
func (m *RemoteModel) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("texts cannot be empty")
	}

	reqBody := FeatureExtractionRequest{
		Inputs:  texts,
		Options: FeatureExtractionOptions{WaitForModel: true},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.URL(), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if m.token != "" {
		req.Header.Set("Authorization", "Bearer "+m.token)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feature-extraction error (status %d): %s", resp.StatusCode, string(body))
	}

	vectors, err := decodeVectors(body, len(texts))
	if err != nil {
		return nil, err
	}

	for i, vec := range vectors {
		if m.dimension > 0 && len(vec) != m.dimension {
			return nil, fmt.Errorf("%w: model %s returned %d dimensions, expected %d",
				similarity.ErrInvalidInput, m.model.Name, len(vec), m.dimension)
		}
		similarity.Normalize(vectors[i])
	}

	return vectors, nil
}

// decodeVectors accepts sentence-level output ([][]float32), token-level
// output ([][][]float32, mean-pooled) or a bare vector for a single input.
func decodeVectors(body []byte, want int) ([][]float32, error) {
	trimmed := bytes.TrimSpace(body)
	if want == 1 && isFlatArray(trimmed) {
		var vec []float32
		if err := json.Unmarshal(trimmed, &vec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}
		return [][]float32{vec}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(items) != want {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d", similarity.ErrInvalidInput, want, len(items))
	}

	vectors := make([][]float32, len(items))
	for i, item := range items {
		if isFlatArray(item) {
			if err := json.Unmarshal(item, &vectors[i]); err != nil {
				return nil, fmt.Errorf("failed to unmarshal embedding %d: %w", i, err)
			}
			continue
		}

		var tokens [][]float32
		if err := json.Unmarshal(item, &tokens); err != nil {
			return nil, fmt.Errorf("failed to unmarshal token embeddings %d: %w", i, err)
		}
		pooled, err := meanPool(tokens)
		if err != nil {
			return nil, fmt.Errorf("embedding %d: %w", i, err)
		}
		vectors[i] = pooled
	}
	return vectors, nil
}

// isFlatArray reports whether raw is a JSON array of numbers.
func isFlatArray(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) < 2 || raw[0] != '[' {
		return false
	}
	rest := bytes.TrimSpace(raw[1:])
	return len(rest) > 0 && rest[0] != '['
}

func meanPool(tokens [][]float32) ([]float32, error) {
	if len(tokens) == 0 || len(tokens[0]) == 0 {
		return nil, fmt.Errorf("%w: no token embeddings", similarity.ErrInvalidInput)
	}

	dim := len(tokens[0])
	sums := make([]float64, dim)
	for _, tok := range tokens {
		if len(tok) != dim {
			return nil, fmt.Errorf("%w: ragged token embeddings", similarity.ErrInvalidInput)
		}
		for j, v := range tok {
			sums[j] += float64(v)
		}
	}

	pooled := make([]float32, dim)
	for j, s := range sums {
		pooled[j] = float32(s / float64(len(tokens)))
	}
	return pooled, nil
}
