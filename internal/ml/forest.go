package ml

import (
	"errors"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Forest is a bagged ensemble of CART classification trees. Training is
// deterministic for a given seed.
type Forest struct {
	trees   []*treeNode
	classes int
}

// ForestConfig mirrors the classifier hyperparameters the model is trained
// with: 100 trees of depth at most 10, a fixed seed for reproducibility.
type ForestConfig struct {
	Trees    int
	MaxDepth int
	MinLeaf  int
	Seed     int64
}

func DefaultForestConfig() ForestConfig {
	return ForestConfig{Trees: 100, MaxDepth: 10, MinLeaf: 1, Seed: 42}
}

var errEmptyTrainingData = errors.New("ml: empty training data")

// FitForest trains a forest on encoded feature rows x with class labels y in
// [0, classes). Each tree sees a bootstrap sample of the rows and considers
// sqrt(features) candidate features per split.
func FitForest(x [][]float64, y []int, classes int, cfg ForestConfig) (*Forest, error) {
	if len(x) == 0 || len(x) != len(y) || classes == 0 {
		return nil, errEmptyTrainingData
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	tcfg := treeConfig{
		maxDepth:    cfg.MaxDepth,
		minLeaf:     cfg.MinLeaf,
		featuresPer: int(math.Ceil(math.Sqrt(float64(len(x[0]))))),
	}

	f := &Forest{classes: classes, trees: make([]*treeNode, 0, cfg.Trees)}
	n := len(x)
	for t := 0; t < cfg.Trees; t++ {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		f.trees = append(f.trees, buildTree(x, y, idx, classes, 0, tcfg, rng))
	}
	return f, nil
}

// Proba returns the class probability distribution for one feature row,
// averaged over the leaf distributions of all trees. The result sums to 1.
func (f *Forest) Proba(row []float64) []float64 {
	acc := make([]float64, f.classes)
	for _, t := range f.trees {
		floats.Add(acc, t.proba(row))
	}
	floats.Scale(1/float64(len(f.trees)), acc)
	return acc
}

// Predict returns the argmax class for one feature row.
func (f *Forest) Predict(row []float64) int {
	return floats.MaxIdx(f.Proba(row))
}
