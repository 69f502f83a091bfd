// Copyright 2026 amanita Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"sort"

	"github.com/gorse-io/amanita/base"
	"modernc.org/sortutil"
)

// treeNode is a node of a CART tree. Internal nodes route samples by
// comparing one feature against a threshold. Leaves carry the majority class
// and the fraction of class-1 samples, used as the tree's probability.
type treeNode struct {
	feature     int
	threshold   float32
	left, right *treeNode
	class       int32
	posFraction float32
}

func (node *treeNode) isLeaf() bool {
	return node.left == nil
}

type treeOptions struct {
	maxDepth        int
	minSamplesSplit int
	maxFeatures     int
}

// decisionTree is a CART classification tree splitting on gini impurity.
type decisionTree struct {
	root *treeNode
}

// growTree fits a tree on the rows selected by indices. Feature subsets are
// drawn from rng, which each caller seeds explicitly.
func growTree(features [][]float32, labels []int32, indices []int, options treeOptions, rng base.RandomGenerator) *decisionTree {
	builder := &treeBuilder{
		features: features,
		labels:   labels,
		options:  options,
		rng:      rng,
	}
	return &decisionTree{root: builder.makeNode(indices, 0)}
}

func (tree *decisionTree) predict(x []float32) *treeNode {
	node := tree.root
	for !node.isLeaf() {
		if x[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node
}

type treeBuilder struct {
	features [][]float32
	labels   []int32
	options  treeOptions
	rng      base.RandomGenerator
}

func (builder *treeBuilder) makeNode(indices []int, depth int) *treeNode {
	var dist [2]float32
	for _, i := range indices {
		dist[builder.labels[i]]++
	}
	if depth >= builder.options.maxDepth ||
		len(indices) < builder.options.minSamplesSplit ||
		dist[0] == 0 || dist[1] == 0 {
		return makeLeaf(dist)
	}
	feature, threshold, ok := builder.findBestSplit(indices, dist)
	if !ok {
		return makeLeaf(dist)
	}
	var left, right []int
	for _, i := range indices {
		if builder.features[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      builder.makeNode(left, depth+1),
		right:     builder.makeNode(right, depth+1),
	}
}

func makeLeaf(dist [2]float32) *treeNode {
	node := &treeNode{posFraction: dist[1] / (dist[0] + dist[1])}
	if dist[1] > dist[0] {
		node.class = 1
	}
	return node
}

// findBestSplit scans a random subset of features for the threshold with the
// lowest weighted gini impurity.
func (builder *treeBuilder) findBestSplit(indices []int, dist [2]float32) (int, float32, bool) {
	total := dist[0] + dist[1]
	bestImpurity := gini(dist, total)
	bestFeature, bestThreshold, found := -1, float32(0), false
	d := len(builder.features[indices[0]])
	candidates := builder.rng.Perm(d)
	if builder.options.maxFeatures > 0 && builder.options.maxFeatures < d {
		candidates = candidates[:builder.options.maxFeatures]
	}
	sort.Ints(candidates)
	for _, feature := range candidates {
		// class distribution per distinct feature value
		valueDist := make(map[float32][2]float32)
		for _, i := range indices {
			v := builder.features[i][feature]
			counts := valueDist[v]
			counts[builder.labels[i]]++
			valueDist[v] = counts
		}
		if len(valueDist) < 2 {
			continue
		}
		values := make(sortutil.Float32Slice, 0, len(valueDist))
		for v := range valueDist {
			values = append(values, v)
		}
		sort.Sort(values)
		// sweep split positions with prefix sums
		var left [2]float32
		for k := 0; k < len(values)-1; k++ {
			counts := valueDist[values[k]]
			left[0] += counts[0]
			left[1] += counts[1]
			right := [2]float32{dist[0] - left[0], dist[1] - left[1]}
			leftTotal := left[0] + left[1]
			rightTotal := right[0] + right[1]
			impurity := (leftTotal*gini(left, leftTotal) + rightTotal*gini(right, rightTotal)) / total
			if impurity < bestImpurity {
				bestImpurity = impurity
				bestFeature = feature
				bestThreshold = (values[k] + values[k+1]) / 2
				found = true
			}
		}
	}
	return bestFeature, bestThreshold, found
}

func gini(dist [2]float32, total float32) float32 {
	if total == 0 {
		return 0
	}
	p0 := dist[0] / total
	p1 := dist[1] / total
	return 1 - p0*p0 - p1*p1
}
