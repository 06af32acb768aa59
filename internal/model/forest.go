package model

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/huangsam/nowcast/internal/contract"
	"github.com/huangsam/nowcast/schema"
)

// Tunable defaults for the forest learner.
const (
	defaultTrees    = 100
	defaultMaxDepth = 10
	defaultMinLeaf  = 2
)

// ForestOptions configures a random forest learner. Zero values fall back
// to the defaults above.
type ForestOptions struct {
	Trees    int   // Number of bagged trees
	MaxDepth int   // Maximum tree depth
	MinLeaf  int   // Minimum rows per leaf
	Seed     int64 // Drives bootstrap sampling and feature subsetting
}

// Forest is a bagged regression tree ensemble. Predictions average the
// per-tree leaf means.
type Forest struct {
	opt ForestOptions
}

var _ contract.Learner = &Forest{} // Compile-time check

// NewForest creates a random forest learner.
func NewForest(opt ForestOptions) *Forest {
	if opt.Trees < 1 {
		opt.Trees = defaultTrees
	}
	if opt.MaxDepth < 1 {
		opt.MaxDepth = defaultMaxDepth
	}
	if opt.MinLeaf < 1 {
		opt.MinLeaf = defaultMinLeaf
	}
	return &Forest{opt: opt}
}

// Name identifies the learner.
func (f *Forest) Name() schema.ModelKind {
	return schema.ForestModel
}

// Fit grows the ensemble on bootstrap samples of the training rows. All
// randomness flows from the configured seed; two fits with the same seed
// and data produce identical forests.
func (f *Forest) Fit(features [][]float64, target []float64) (contract.Model, error) {
	cols, err := checkTrainingShape(features, target)
	if err != nil {
		return nil, err
	}
	n := len(features)

	// Feature subset size per split, the usual p/3 heuristic for regression.
	mtry := max(1, cols/3)

	rng := rand.New(rand.NewSource(f.opt.Seed))
	trees := make([]*treeNode, f.opt.Trees)
	for t := range f.opt.Trees {
		sample := make([]int, n)
		for i := range sample {
			sample[i] = rng.Intn(n)
		}
		trees[t] = growTree(features, target, sample, cols, mtry, f.opt.MaxDepth, f.opt.MinLeaf, rng)
	}

	return &forestModel{trees: trees, cols: cols}, nil
}

// forestModel is a trained ensemble.
type forestModel struct {
	trees []*treeNode
	cols  int
}

// Predict averages the per-tree predictions for each feature row.
func (m *forestModel) Predict(features [][]float64) ([]float64, error) {
	out := make([]float64, len(features))
	for i, row := range features {
		if len(row) != m.cols {
			return nil, fmt.Errorf("%w: row %d has %d features, model expects %d", schema.ErrShapeMismatch, i, len(row), m.cols)
		}
		var sum float64
		for _, tree := range m.trees {
			sum += tree.predict(row)
		}
		out[i] = sum / float64(len(m.trees))
	}
	return out, nil
}

// treeNode is one node of a regression tree. Leaves carry the mean target
// of the rows that reached them.
type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

func (t *treeNode) predict(row []float64) float64 {
	node := t
	for !node.leaf {
		if row[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

// growTree recursively splits the sampled rows, choosing at each node the
// SSE-minimizing threshold over a random feature subset.
func growTree(features [][]float64, target []float64, rows []int, cols, mtry, depth, minLeaf int, rng *rand.Rand) *treeNode {
	if depth == 0 || len(rows) < 2*minLeaf || isConstant(target, rows) {
		return &treeNode{leaf: true, value: meanOf(target, rows)}
	}

	bestFeature, bestThreshold, bestSSE := -1, 0.0, math.Inf(1)
	for _, feature := range rng.Perm(cols)[:mtry] {
		threshold, sse, ok := bestSplit(features, target, rows, feature, minLeaf)
		if ok && sse < bestSSE {
			bestFeature, bestThreshold, bestSSE = feature, threshold, sse
		}
	}
	if bestFeature < 0 {
		return &treeNode{leaf: true, value: meanOf(target, rows)}
	}

	var left, right []int
	for _, r := range rows {
		if features[r][bestFeature] <= bestThreshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}

	return &treeNode{
		feature:   bestFeature,
		threshold: bestThreshold,
		left:      growTree(features, target, left, cols, mtry, depth-1, minLeaf, rng),
		right:     growTree(features, target, right, cols, mtry, depth-1, minLeaf, rng),
	}
}

// bestSplit scans candidate thresholds for one feature and returns the one
// minimizing the summed squared error of the two children.
func bestSplit(features [][]float64, target []float64, rows []int, feature, minLeaf int) (threshold, sse float64, ok bool) {
	// Candidate thresholds are midpoints between consecutive distinct values.
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = features[r][feature]
	}

	bestSSE := math.Inf(1)
	var bestThreshold float64
	for i := range values {
		for j := i + 1; j < len(values); j++ {
			if values[j] < values[i] {
				values[i], values[j] = values[j], values[i]
			}
		}
	}
	for i := 0; i+1 < len(values); i++ {
		if values[i] == values[i+1] {
			continue
		}
		candidate := (values[i] + values[i+1]) / 2

		var leftSum, rightSum float64
		var leftN, rightN int
		for _, r := range rows {
			if features[r][feature] <= candidate {
				leftSum += target[r]
				leftN++
			} else {
				rightSum += target[r]
				rightN++
			}
		}
		if leftN < minLeaf || rightN < minLeaf {
			continue
		}
		leftMean := leftSum / float64(leftN)
		rightMean := rightSum / float64(rightN)

		var total float64
		for _, r := range rows {
			var d float64
			if features[r][feature] <= candidate {
				d = target[r] - leftMean
			} else {
				d = target[r] - rightMean
			}
			total += d * d
		}
		if total < bestSSE {
			bestSSE = total
			bestThreshold = candidate
		}
	}

	if math.IsInf(bestSSE, 1) {
		return 0, 0, false
	}
	return bestThreshold, bestSSE, true
}

func meanOf(target []float64, rows []int) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rows {
		sum += target[r]
	}
	return sum / float64(len(rows))
}

func isConstant(target []float64, rows []int) bool {
	for _, r := range rows[1:] {
		if target[r] != target[rows[0]] {
			return false
		}
	}
	return true
}
