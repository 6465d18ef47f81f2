package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"textsim/internal/logger"
	"textsim/internal/similarity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, status int, body string, check func(r *http.Request, req FeatureExtractionRequest)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req FeatureExtractionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if check != nil {
			check(r, req)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteModelSentenceLevel(t *testing.T) {
	model, _ := Lookup("all-MiniLM-L6-v2")
	srv := newTestServer(t, http.StatusOK, `[[3, 4, 0], [0, 0, 2]]`, func(r *http.Request, req FeatureExtractionRequest) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sentence-transformers/all-MiniLM-L6-v2/pipeline/feature-extraction", r.URL.Path)
		assert.Equal(t, "Bearer hf_secret", r.Header.Get("Authorization"))
		assert.Equal(t, []string{"gato corre", "cão dorme"}, req.Inputs)
		assert.True(t, req.Options.WaitForModel)
	})

	m := NewRemoteModel(model, srv.URL+"/", "hf_secret", 3, srv.Client())
	vecs, err := m.Encode(context.Background(), []string{"gato corre", "cão dorme"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.InDeltaSlice(t, []float32{0.6, 0.8, 0}, vecs[0], 1e-6)
	assert.InDeltaSlice(t, []float32{0, 0, 1}, vecs[1], 1e-6)
}

func TestRemoteModelTokenLevelIsMeanPooled(t *testing.T) {
	model, _ := Lookup("bert-base-uncased")
	srv := newTestServer(t, http.StatusOK, `[[[1, 0], [3, 0]], [[0, 2], [0, 4], [0, 6]]]`, func(r *http.Request, req FeatureExtractionRequest) {
		assert.Empty(t, r.Header.Get("Authorization"))
	})

	m := NewRemoteModel(model, srv.URL, "", 2, srv.Client())
	vecs, err := m.Encode(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{1, 0}, vecs[0], 1e-6)
	assert.InDeltaSlice(t, []float32{0, 1}, vecs[1], 1e-6)
}

func TestRemoteModelSingleFlatVector(t *testing.T) {
	model, _ := Lookup("all-MiniLM-L6-v2")
	srv := newTestServer(t, http.StatusOK, `[0, 5]`, nil)

	m := NewRemoteModel(model, srv.URL, "", 0, srv.Client())
	vecs, err := m.Encode(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0, 1}, vecs[0], 1e-6)
}

func TestRemoteModelErrors(t *testing.T) {
	model, _ := Lookup("all-MiniLM-L6-v2")

	tests := []struct {
		name      string
		status    int
		body      string
		dimension int
		invalid   bool
	}{
		{name: "http error", status: http.StatusServiceUnavailable, body: `{"error":"loading"}`},
		{name: "malformed json", status: http.StatusOK, body: `{"error":`},
		{name: "count mismatch", status: http.StatusOK, body: `[[1, 2]]`, invalid: true},
		{name: "dimension mismatch", status: http.StatusOK, body: `[[1, 2], [3, 4]]`, dimension: 384, invalid: true},
		{name: "ragged tokens", status: http.StatusOK, body: `[[[1, 2], [3]], [[1, 2]]]`, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.status, tt.body, nil)
			m := NewRemoteModel(model, srv.URL, "", tt.dimension, srv.Client())

			_, err := m.Encode(context.Background(), []string{"a", "b"})
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, similarity.ErrInvalidInput)
			}
		})
	}
}

func TestRemoteModelRejectsEmptyBatch(t *testing.T) {
	model, _ := Lookup("all-MiniLM-L6-v2")
	m := NewRemoteModel(model, "http://127.0.0.1:0", "", 0, nil)

	_, err := m.Encode(context.Background(), nil)
	assert.Error(t, err)
}

func TestReadModelInfo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"model_type":"bert","hidden_size":384,"num_hidden_layers":6}`), 0o644))

	info, err := ReadModelInfo(path)
	require.NoError(t, err)
	assert.Equal(t, ModelInfo{ModelType: "bert", HiddenSize: 384}, info)

	_, err = ReadModelInfo(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`not json`), 0o644))
	_, err = ReadModelInfo(bad)
	assert.Error(t, err)
}

func TestHubLoaderHonorsCancelledContext(t *testing.T) {
	model, _ := Lookup("all-MiniLM-L6-v2")
	l := NewHubLoader("http://127.0.0.1:0", "", t.TempDir(), logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Load(ctx, model)
	assert.ErrorIs(t, err, context.Canceled)
}
