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

func TestSVC_Fit(t *testing.T) {
	accuracy := fitAccuracy(t, TypeSVC, base.Params{
		base.C:      1.0,
		base.Kernel: base.RBF,
		base.Gamma:  base.Scale,
	})
	assert.GreaterOrEqual(t, accuracy, float32(0.9))
}

func TestSVC_LinearKernel(t *testing.T) {
	accuracy := fitAccuracy(t, TypeSVC, base.Params{
		base.C:      1.0,
		base.Kernel: base.Linear,
		base.Gamma:  base.Auto,
	})
	assert.GreaterOrEqual(t, accuracy, float32(0.9))
}

func TestSVC_Deterministic(t *testing.T) {
	features, labels := newSeparableTrainingSet(40)
	params := base.Params{base.C: 1.0, base.RandomState: 42}
	var predictions [2][]int32
	var scores [2][]float32
	for run := 0; run < 2; run++ {
		svc, err := NewSVC(params)
		require.NoError(t, err)
		require.NoError(t, svc.Fit(context.Background(), features, labels, nil))
		_, predictions[run], scores[run] = Evaluate(svc, features, labels, 1)
	}
	assert.Equal(t, predictions[0], predictions[1])
	assert.Equal(t, scores[0], scores[1])
}

func TestSVC_TrainingError(t *testing.T) {
	svc, err := NewSVC(nil)
	require.NoError(t, err)
	var trainingError *TrainingError
	err = svc.Fit(context.Background(), [][]float32{{1}, {2}}, []int32{0}, nil)
	assert.ErrorAs(t, err, &trainingError)
}

func TestSVC_ResolveGamma(t *testing.T) {
	features := [][]float32{{0, 0}, {1, 1}}
	svc, err := NewSVC(base.Params{base.Gamma: base.Auto})
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), svc.resolveGamma(features))
	svc, err = NewSVC(base.Params{base.Gamma: base.Scale})
	require.NoError(t, err)
	// Var(X) = 0.25, d = 2, gamma = 1/(2*0.25) = 2
	assert.InDelta(t, 2.0, svc.resolveGamma(features), 1e-5)
}
