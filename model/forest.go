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

	"github.com/chewxy/math32"
	"github.com/gorse-io/amanita/base"
	"github.com/gorse-io/amanita/base/log"
	"github.com/gorse-io/amanita/common/parallel"
	"github.com/juju/errors"
	"go.uber.org/zap"
)

// RandomForest is an ensemble of CART trees fit on bootstrap samples. Trees
// are trained in parallel across FitConfig.Jobs workers; each tree derives
// its own generator from the forest seed, so the ensemble is reproducible
// regardless of worker scheduling. Prediction is a majority vote and the
// decision value is the mean class-1 leaf fraction.
type RandomForest struct {
	BaseClassifier
	// Hyper-parameters
	nEstimators int
	maxDepth    int
	bootstrap   bool
	// Model parameters
	trees []*decisionTree
}

const (
	minEstimators = 100
	maxEstimators = 5000
	minTreeDepth  = 1
	maxTreeDepth  = 20
)

// NewRandomForest builds an untrained random forest from hyper-parameters:
//
//	NEstimators - number of trees in [100,5000]. Default is 100.
//	MaxDepth    - maximum depth of a tree in [1,20]. Default is 10.
//	Bootstrap   - bootstrap samples when building trees. Default is true.
func NewRandomForest(params base.Params) (*RandomForest, error) {
	forest := new(RandomForest)
	forest.SetParams(params)
	if forest.nEstimators < minEstimators || forest.nEstimators > maxEstimators {
		return nil, hyperparameterErrorf("NEstimators must be in [%d,%d], got %d",
			minEstimators, maxEstimators, forest.nEstimators)
	}
	if forest.maxDepth < minTreeDepth || forest.maxDepth > maxTreeDepth {
		return nil, hyperparameterErrorf("MaxDepth must be in [%d,%d], got %d",
			minTreeDepth, maxTreeDepth, forest.maxDepth)
	}
	return forest, nil
}

// SetParams sets hyper-parameters.
func (forest *RandomForest) SetParams(params base.Params) {
	forest.BaseClassifier.SetParams(params)
	forest.nEstimators = forest.Params.GetInt(base.NEstimators, minEstimators)
	forest.maxDepth = forest.Params.GetInt(base.MaxDepth, 10)
	forest.bootstrap = forest.Params.GetBool(base.Bootstrap, true)
}

// Fit trains the forest.
func (forest *RandomForest) Fit(ctx context.Context, features [][]float32, labels []int32, config *FitConfig) error {
	config = config.LoadDefaultIfNil()
	if err := checkTrainingSet(features, labels); err != nil {
		return err
	}
	n := len(features)
	options := treeOptions{
		maxDepth:        forest.maxDepth,
		minSamplesSplit: 2,
		maxFeatures:     int(math32.Ceil(math32.Sqrt(float32(len(features[0]))))),
	}
	forest.trees = make([]*decisionTree, forest.nEstimators)
	err := parallel.Parallel(ctx, forest.nEstimators, config.Jobs, func(_, treeId int) error {
		rng := base.NewRandomGenerator(forest.randState + int64(treeId))
		indices := make([]int, n)
		for i := range indices {
			if forest.bootstrap {
				indices[i] = rng.Intn(n)
			} else {
				indices[i] = i
			}
		}
		forest.trees[treeId] = growTree(features, labels, indices, options, rng)
		return nil
	})
	if err != nil {
		return errors.Trace(err)
	}
	log.Logger().Debug("random forest fitted",
		zap.Int("n_estimators", forest.nEstimators),
		zap.Int("max_depth", forest.maxDepth),
		zap.Bool("bootstrap", forest.bootstrap))
	return nil
}

// Score returns the mean class-1 leaf fraction across trees.
func (forest *RandomForest) Score(x []float32) float32 {
	var sum float32
	for _, tree := range forest.trees {
		sum += tree.predict(x).posFraction
	}
	return sum / float32(len(forest.trees))
}

// Predict returns the majority vote of all trees.
func (forest *RandomForest) Predict(x []float32) int32 {
	var votes [2]int
	for _, tree := range forest.trees {
		votes[tree.predict(x).class]++
	}
	if votes[1] > votes[0] {
		return 1
	}
	return 0
}
