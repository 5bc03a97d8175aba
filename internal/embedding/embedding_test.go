package embedding

import (
	"context"
	"errors"
	"math"
	"testing"
)

type fakeLLM struct {
	reply string
	err   error
	calls int
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestEmbedProducesFixedDimension(t *testing.T) {
	p := NewProvider(&fakeLLM{reply: "0.5 0.5"})
	p.Rand = func() float64 { return 0.5 }

	v := p.Embed(context.Background(), "some document text with several words")
	if len(v) != Dim {
		t.Fatalf("expected %d dimensions, got %d", Dim, len(v))
	}
	for i, x := range v {
		if x < 0 || x > 1 {
			t.Fatalf("component %d out of [0,1]: %v", i, x)
		}
	}
	if v[3] != 0.95 {
		t.Fatalf("stochastic component = %v, want 0.95", v[3])
	}
}

func TestEmbedFallsBackOnUpstreamFailure(t *testing.T) {
	p := NewProvider(&fakeLLM{err: errors.New("capability down")})

	v := p.Embed(context.Background(), "text")
	if len(v) != Dim {
		t.Fatalf("expected %d dimensions, got %d", Dim, len(v))
	}
	for i, x := range v {
		if x != 0.5 {
			t.Fatalf("component %d = %v, want neutral 0.5", i, x)
		}
	}
}

func TestCosineSelfSimilarityIsOne(t *testing.T) {
	v := []float64{0.2, 0.8, 0.4, 0.9}
	got := Cosine(v, v)
	if math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("Cosine(v, v) = %v, want 1.0", got)
	}
}

func TestCosineZeroVector(t *testing.T) {
	v := []float64{0.2, 0.8, 0.4, 0.9}
	zero := []float64{0, 0, 0, 0}
	if got := Cosine(v, zero); got != 0 {
		t.Fatalf("Cosine(v, zero) = %v, want 0", got)
	}
}

func TestCosineDefensiveCases(t *testing.T) {
	v := []float64{0.2, 0.8}
	if got := Cosine(v, nil); got != 0 {
		t.Fatalf("Cosine(v, nil) = %v, want 0", got)
	}
	if got := Cosine(v, []float64{1, 2, 3}); got != 0 {
		t.Fatalf("Cosine mismatched dims = %v, want 0", got)
	}
}

func TestCosineOppositeVectors(t *testing.T) {
	a := []float64{1, 0}
	b := []float64{-1, 0}
	got := Cosine(a, b)
	if math.Abs(got+1.0) > 1e-9 {
		t.Fatalf("Cosine(a, -a) = %v, want -1.0", got)
	}
}
