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
	"github.com/juju/errors"
	"go.uber.org/zap"
)

// LogisticRegression is a binary logistic regression classifier trained by
// full-batch gradient descent with L2 regularization of strength 1/C. The
// decision value is the class-1 probability.
type LogisticRegression struct {
	BaseClassifier
	// Hyper-parameters
	c       float32
	maxIter int
	lr      float32
	// Model parameters
	weights   []float32
	intercept float32
}

const (
	minLogisticIter = 100
	maxLogisticIter = 500
)

// NewLogisticRegression builds an untrained logistic regression from
// hyper-parameters:
//
//	C       - regularization strength (> 0). Default is 1.
//	MaxIter - number of gradient descent iterations in [100,500]. Default is 100.
func NewLogisticRegression(params base.Params) (*LogisticRegression, error) {
	lr := new(LogisticRegression)
	lr.SetParams(params)
	if lr.c <= 0 {
		return nil, hyperparameterErrorf("C must be positive, got %v", lr.c)
	}
	if lr.maxIter < minLogisticIter || lr.maxIter > maxLogisticIter {
		return nil, hyperparameterErrorf("MaxIter must be in [%d,%d], got %d",
			minLogisticIter, maxLogisticIter, lr.maxIter)
	}
	return lr, nil
}

// SetParams sets hyper-parameters.
func (lr *LogisticRegression) SetParams(params base.Params) {
	lr.BaseClassifier.SetParams(params)
	lr.c = lr.Params.GetFloat32(base.C, 1)
	lr.maxIter = lr.Params.GetInt(base.MaxIter, minLogisticIter)
	lr.lr = 0.1
}

// Fit trains the classifier. Weights are initialized from the seeded random
// generator and the descent itself is deterministic, so identical inputs
// yield identical models.
func (lr *LogisticRegression) Fit(ctx context.Context, features [][]float32, labels []int32, config *FitConfig) error {
	config = config.LoadDefaultIfNil()
	if err := checkTrainingSet(features, labels); err != nil {
		return err
	}
	n := len(features)
	d := len(features[0])
	rng := lr.GetRandomGenerator()
	lr.weights = rng.NormalVector(d, 0, 0.01)
	lr.intercept = 0
	lambda := 1 / (lr.c * float32(n))
	gradient := make([]float32, d)
	for iter := 0; iter < lr.maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return errors.Trace(err)
		}
		for j := range gradient {
			gradient[j] = 0
		}
		var gradientB, loss float32
		for i, x := range features {
			p := sigmoid(dot(lr.weights, x) + lr.intercept)
			residual := p - float32(labels[i])
			for j, v := range x {
				gradient[j] += residual * v
			}
			gradientB += residual
			if labels[i] == 1 {
				loss -= math32.Log(math32.Max(p, 1e-12))
			} else {
				loss -= math32.Log(math32.Max(1-p, 1e-12))
			}
		}
		for j := range lr.weights {
			lr.weights[j] -= lr.lr * (gradient[j]/float32(n) + lambda*lr.weights[j])
		}
		lr.intercept -= lr.lr * gradientB / float32(n)
		if config.Verbose > 0 && (iter+1)%config.Verbose == 0 {
			log.Logger().Debug("logistic regression iteration",
				zap.Int("iter", iter+1),
				zap.Float32("loss", loss/float32(n)))
		}
	}
	return nil
}

// Score returns the class-1 probability of a sample.
func (lr *LogisticRegression) Score(x []float32) float32 {
	return sigmoid(dot(lr.weights, x) + lr.intercept)
}

// Predict the label code of a sample.
func (lr *LogisticRegression) Predict(x []float32) int32 {
	if lr.Score(x) > 0.5 {
		return 1
	}
	return 0
}

func sigmoid(x float32) float32 {
	return 1 / (1 + math32.Exp(-x))
}
