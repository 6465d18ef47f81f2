package analyzer

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"testing"

	"textsim/internal/logger"
	"textsim/internal/similarity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stemEmbedder is a bag-of-stems embedder: accents folded, tokens cut to
// four runes, hashed into a fixed number of buckets.
type stemEmbedder struct {
	calls  int
	inputs [][]string
	models []string
}

var folder = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ã", "a", "õ", "o", "ç", "c")

func (e *stemEmbedder) Encode(ctx context.Context, texts []string, modelName string) ([][]float32, error) {
	e.calls++
	e.inputs = append(e.inputs, texts)
	e.models = append(e.models, modelName)

	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, 64)
		vec[63] = 0.01
		for _, tok := range strings.Fields(folder.Replace(text)) {
			runes := []rune(tok)
			if len(runes) > 4 {
				runes = runes[:4]
			}
			h := fnv.New32a()
			_, _ = h.Write([]byte(string(runes)))
			vec[h.Sum32()%63]++
		}
		similarity.Normalize(vec)
		out[i] = vec
	}
	return out, nil
}

type stubEmbedder struct {
	vectors [][]float32
	err     error
}

func (e *stubEmbedder) Encode(ctx context.Context, texts []string, modelName string) ([][]float32, error) {
	return e.vectors, e.err
}

func TestAnalyzeSimilarSentences(t *testing.T) {
	emb := &stemEmbedder{}
	svc := NewService(emb, logger.NewNop())

	res, err := svc.Analyze(context.Background(), "O gato corre rápido", "O gato corre rapidamente", "paraphrase-multilingual-MiniLM-L12-v2")
	require.NoError(t, err)

	assert.Greater(t, res.Similarity, 0.8)
	assert.Equal(t, "paraphrase-multilingual-MiniLM-L12-v2", res.ModelName)
	assert.InDelta(t, res.Similarity*100, res.Percent, 1e-9)

	require.Equal(t, 1, emb.calls, "both texts must be embedded in a single call")
	assert.Equal(t, []string{"gato corre rápido", "gato corre rapidamente"}, emb.inputs[0])
	assert.Equal(t, []string{"paraphrase-multilingual-MiniLM-L12-v2"}, emb.models)
}

func TestAnalyzeUnrelatedSentencesScoreLower(t *testing.T) {
	svc := NewService(&stemEmbedder{}, logger.NewNop())

	related, err := svc.Analyze(context.Background(), "O gato corre rápido", "O gato corre rapidamente", "all-MiniLM-L6-v2")
	require.NoError(t, err)
	unrelated, err := svc.Analyze(context.Background(), "O gato corre rápido", "A bolsa de valores caiu ontem", "all-MiniLM-L6-v2")
	require.NoError(t, err)

	assert.Less(t, unrelated.Similarity, related.Similarity)
}

func TestAnalyzeIsSymmetric(t *testing.T) {
	svc := NewService(&stemEmbedder{}, logger.NewNop())

	pairs := [][2]string{
		{"O gato corre rápido", "O cachorro dorme"},
		{"Receita de pão caseiro", "Como fazer pão em casa"},
		{"o a de", "palavras soltas"},
	}
	for _, p := range pairs {
		ab, err := svc.Analyze(context.Background(), p[0], p[1], "bert-base-uncased")
		require.NoError(t, err)
		ba, err := svc.Analyze(context.Background(), p[1], p[0], "bert-base-uncased")
		require.NoError(t, err)
		assert.Equal(t, ab, ba, "pair %q", p)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	tests := []struct {
		name         string
		text1, text2 string
	}{
		{name: "first empty", text1: "", text2: "qualquer coisa"},
		{name: "second empty", text1: "qualquer coisa", text2: ""},
		{name: "whitespace only", text1: " \t\n", text2: "qualquer coisa"},
		{name: "both empty", text1: "", text2: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emb := &stemEmbedder{}
			svc := NewService(emb, logger.NewNop())

			_, err := svc.Analyze(context.Background(), tt.text1, tt.text2, "all-MiniLM-L6-v2")
			assert.ErrorIs(t, err, ErrEmptyInput)
			assert.Zero(t, emb.calls)
		})
	}
}

func TestAnalyzeInvalidEmbeddings(t *testing.T) {
	tests := []struct {
		name    string
		vectors [][]float32
	}{
		{name: "single vector", vectors: [][]float32{{1, 0}}},
		{name: "dimension mismatch", vectors: [][]float32{{1, 0}, {1, 0, 0}}},
		{name: "empty vector", vectors: [][]float32{{}, {1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&stubEmbedder{vectors: tt.vectors}, logger.NewNop())
			_, err := svc.Analyze(context.Background(), "um texto", "outro texto", "all-MiniLM-L6-v2")
			assert.ErrorIs(t, err, similarity.ErrInvalidInput)
		})
	}
}

func TestAnalyzeProviderError(t *testing.T) {
	boom := errors.New("inference unavailable")
	svc := NewService(&stubEmbedder{err: boom}, logger.NewNop())

	_, err := svc.Analyze(context.Background(), "um texto", "outro texto", "all-MiniLM-L6-v2")
	assert.ErrorIs(t, err, boom)
}
