// Package similarity provides vector similarity functions for embeddings.
package similarity

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when two vectors cannot be compared: one of
// them is empty, their lengths differ, or one has zero magnitude.
var ErrInvalidInput = errors.New("invalid input vectors")

func validate(a, b []float32) error {
	if len(a) == 0 || len(b) == 0 {
		return fmt.Errorf("%w: empty vector", ErrInvalidInput)
	}
	if len(a) != len(b) {
		return fmt.Errorf("%w: dimension mismatch (%d != %d)", ErrInvalidInput, len(a), len(b))
	}
	return nil
}

// Cosine computes the cosine similarity between two vectors.
// Returns a value in [-1, 1] where 1 means identical direction.
func Cosine(a, b []float32) (float64, error) {
	if err := validate(a, b); err != nil {
		return 0, err
	}

	var dotProduct, normA, normB float64
	for i := range a {
		av := float64(a[i])
		bv := float64(b[i])
		dotProduct += av * bv
		normA += av * av
		normB += bv * bv
	}

	normA = math.Sqrt(normA)
	normB = math.Sqrt(normB)

	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("%w: zero magnitude", ErrInvalidInput)
	}

	return dotProduct / (normA * normB), nil
}

// Dot returns the dot product of two vectors. For unit-length vectors this
// equals their cosine similarity.
func Dot(a, b []float32) (float64, error) {
	if err := validate(a, b); err != nil {
		return 0, err
	}

	var dotProduct float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
	}
	return dotProduct, nil
}

// Normalize scales vec in place to unit length. A zero vector is left as is.
func Normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	magnitude := math.Sqrt(sum)
	if magnitude == 0 || math.IsNaN(magnitude) {
		return
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / magnitude)
	}
}
