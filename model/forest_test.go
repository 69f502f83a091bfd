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
	"context"
	"testing"

	"github.com/gorse-io/amanita/base"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomForest_Fit(t *testing.T) {
	accuracy := fitAccuracy(t, TypeRandomForest, base.Params{
		base.NEstimators: 100,
		base.MaxDepth:    5,
		base.Bootstrap:   true,
	})
	assert.GreaterOrEqual(t, accuracy, float32(0.9))
}

func TestRandomForest_NoBootstrap(t *testing.T) {
	accuracy := fitAccuracy(t, TypeRandomForest, base.Params{
		base.NEstimators: 100,
		base.MaxDepth:    5,
		base.Bootstrap:   false,
	})
	assert.GreaterOrEqual(t, accuracy, float32(0.9))
}

// The ensemble must be reproducible regardless of how trees are scheduled
// across workers.
func TestRandomForest_Deterministic(t *testing.T) {
	features, labels := newSeparableTrainingSet(40)
	params := base.Params{
		base.NEstimators: 100,
		base.MaxDepth:    5,
		base.RandomState: 13,
	}
	var scores [2][]float32
	for run := 0; run < 2; run++ {
		forest, err := NewRandomForest(params)
		require.NoError(t, err)
		config := NewFitConfig().SetJobs(1 + run*3)
		require.NoError(t, forest.Fit(context.Background(), features, labels, config))
		_, _, scores[run] = Evaluate(forest, features, labels, 1)
	}
	assert.Equal(t, scores[0], scores[1])
}

func TestRandomForest_ScoreIsProbability(t *testing.T) {
	features, labels := newSeparableTrainingSet(40)
	forest, err := NewRandomForest(nil)
	require.NoError(t, err)
	require.NoError(t, forest.Fit(context.Background(), features, labels, nil))
	for _, x := range features {
		p := forest.Score(x)
		assert.GreaterOrEqual(t, p, float32(0))
		assert.LessOrEqual(t, p, float32(1))
	}
}

func TestRandomForest_Cancel(t *testing.T) {
	features, labels := newSeparableTrainingSet(40)
	forest, err := NewRandomForest(nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = forest.Fit(ctx, features, labels, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGrowTree(t *testing.T) {
	features, labels := newSeparableTrainingSet(40)
	indices := make([]int, len(features))
	for i := range indices {
		indices[i] = i
	}
	tree := growTree(features, labels, indices, treeOptions{
		maxDepth:        5,
		minSamplesSplit: 2,
	}, base.NewRandomGenerator(0))
	// a single tree separates the training set perfectly
	for i, x := range features {
		assert.Equal(t, labels[i], tree.predict(x).class)
	}
}

func TestGini(t *testing.T) {
	assert.Equal(t, float32(0.5), gini([2]float32{5, 5}, 10))
	assert.Zero(t, gini([2]float32{10, 0}, 10))
	assert.Zero(t, gini([2]float32{0, 0}, 0))
}
