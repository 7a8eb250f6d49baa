// Package postprocess turns raw model outputs into answers. It covers
// the classification tail end: softmax over logits and top-k selection.
package postprocess

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Prediction is one ranked classification result.
type Prediction struct {
	// Index is the class index in the model's output vector.
	Index int
	// Score is the class probability (after Softmax) or raw logit.
	Score float32
}

// Softmax converts logits into probabilities. The input is shifted by
// its maximum before exponentiation for numerical stability. The result
// is a new slice; logits is left untouched.
func Softmax(logits []float32) []float32 {
	if len(logits) == 0 {
		return nil
	}

	f64 := make([]float64, len(logits))
	for i, v := range logits {
		f64[i] = float64(v)
	}

	max := floats.Max(f64)
	for i := range f64 {
		f64[i] = math.Exp(f64[i] - max)
	}
	sum := floats.Sum(f64)

	out := make([]float32, len(logits))
	for i := range f64 {
		out[i] = float32(f64[i] / sum)
	}
	return out
}

// TopK returns the k highest-scoring entries of scores in descending
// order. k larger than len(scores) is clamped.
func TopK(scores []float32, k int) []Prediction {
	if k <= 0 || len(scores) == 0 {
		return nil
	}
	if k > len(scores) {
		k = len(scores)
	}

	preds := make([]Prediction, len(scores))
	for i, s := range scores {
		preds[i] = Prediction{Index: i, Score: s}
	}
	sort.Slice(preds, func(i, j int) bool {
		if preds[i].Score != preds[j].Score {
			return preds[i].Score > preds[j].Score
		}
		return preds[i].Index < preds[j].Index
	})
	return preds[:k]
}

// Classify applies Softmax then TopK in one step.
func Classify(logits []float32, k int) []Prediction {
	return TopK(Softmax(logits), k)
}
