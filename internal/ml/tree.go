package ml

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// treeNode is one node of a CART classification tree. Internal nodes route
// on feature <= threshold; leaves hold a class probability distribution.
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	dist      []float64 // non-nil only at leaves
}

type treeConfig struct {
	maxDepth    int
	minLeaf     int
	featuresPer int // features sampled per split (mtry)
}

// buildTree grows a tree on the sample rows indexed by idx.
func buildTree(x [][]float64, y []int, idx []int, classes int, depth int, cfg treeConfig, rng *rand.Rand) *treeNode {
	dist := classDistribution(y, idx, classes)

	if depth >= cfg.maxDepth || len(idx) < 2*cfg.minLeaf || isPure(dist) {
		return &treeNode{dist: dist}
	}

	feature, threshold, ok := bestSplit(x, y, idx, classes, cfg, rng)
	if !ok {
		return &treeNode{dist: dist}
	}

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if x[i][feature] <= threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	if len(leftIdx) < cfg.minLeaf || len(rightIdx) < cfg.minLeaf {
		return &treeNode{dist: dist}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      buildTree(x, y, leftIdx, classes, depth+1, cfg, rng),
		right:     buildTree(x, y, rightIdx, classes, depth+1, cfg, rng),
	}
}

// proba walks the tree to a leaf and returns its class distribution.
func (n *treeNode) proba(row []float64) []float64 {
	for n.dist == nil {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.dist
}

func classDistribution(y []int, idx []int, classes int) []float64 {
	dist := make([]float64, classes)
	for _, i := range idx {
		dist[y[i]]++
	}
	if s := floats.Sum(dist); s > 0 {
		floats.Scale(1/s, dist)
	}
	return dist
}

func isPure(dist []float64) bool {
	nonZero := 0
	for _, p := range dist {
		if p > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

// gini computes the impurity of the class counts in counts with total n.
func gini(counts []float64, n float64) float64 {
	if n == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := c / n
		g -= p * p
	}
	return g
}

// bestSplit scans a random subset of features for the threshold with the
// lowest weighted child impurity. Thresholds are midpoints between adjacent
// distinct values of the sampled rows.
func bestSplit(x [][]float64, y []int, idx []int, classes int, cfg treeConfig, rng *rand.Rand) (int, float64, bool) {
	nFeatures := len(x[idx[0]])
	order := rng.Perm(nFeatures)
	mtry := cfg.featuresPer
	if mtry > nFeatures {
		mtry = nFeatures
	}

	parent := gini(counts(y, idx, classes), float64(len(idx)))

	bestGain := 0.0
	bestFeature, bestThreshold := -1, 0.0

	for _, f := range order[:mtry] {
		values := make([]float64, 0, len(idx))
		for _, i := range idx {
			values = append(values, x[i][f])
		}
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)

		for k := 0; k+1 < len(sorted); k++ {
			if sorted[k] == sorted[k+1] {
				continue
			}
			threshold := (sorted[k] + sorted[k+1]) / 2

			leftCounts := make([]float64, classes)
			rightCounts := make([]float64, classes)
			var nLeft, nRight float64
			for _, i := range idx {
				if x[i][f] <= threshold {
					leftCounts[y[i]]++
					nLeft++
				} else {
					rightCounts[y[i]]++
					nRight++
				}
			}

			n := nLeft + nRight
			child := (nLeft/n)*gini(leftCounts, nLeft) + (nRight/n)*gini(rightCounts, nRight)
			if gain := parent - child; gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = threshold
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}

func counts(y []int, idx []int, classes int) []float64 {
	c := make([]float64, classes)
	for _, i := range idx {
		c[y[i]]++
	}
	return c
}
