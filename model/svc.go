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

// SVC is a support vector classifier trained by sequential minimal
// optimization. Supported kernels are linear and RBF. The decision value is
// the margin, positive for class 1.
type SVC struct {
	BaseClassifier
	// Hyper-parameters
	c      float32
	kernel string
	gamma  string
	// Model parameters
	supportVectors [][]float32
	coefficients   []float32 // alpha_i * y_i per support vector
	intercept      float32
	gammaValue     float32
}

// NewSVC builds an untrained SVC from hyper-parameters:
//
//	C      - regularization strength (> 0). Default is 1.
//	Kernel - kernel function, rbf or linear. Default is rbf.
//	Gamma  - kernel coefficient mode, scale or auto. Default is scale.
func NewSVC(params base.Params) (*SVC, error) {
	svc := new(SVC)
	svc.SetParams(params)
	if svc.c <= 0 {
		return nil, hyperparameterErrorf("C must be positive, got %v", svc.c)
	}
	if svc.kernel != base.RBF && svc.kernel != base.Linear {
		return nil, hyperparameterErrorf("unknown kernel: %v", svc.kernel)
	}
	if svc.gamma != base.Scale && svc.gamma != base.Auto {
		return nil, hyperparameterErrorf("unknown gamma mode: %v", svc.gamma)
	}
	return svc, nil
}

// SetParams sets hyper-parameters.
func (svc *SVC) SetParams(params base.Params) {
	svc.BaseClassifier.SetParams(params)
	svc.c = svc.Params.GetFloat32(base.C, 1)
	svc.kernel = svc.Params.GetString(base.Kernel, base.RBF)
	svc.gamma = svc.Params.GetString(base.Gamma, base.Scale)
}

// Fit trains the SVC by simplified SMO. The pair selection uses the seeded
// random generator, so identical inputs yield identical models.
func (svc *SVC) Fit(ctx context.Context, features [][]float32, labels []int32, config *FitConfig) error {
	config = config.LoadDefaultIfNil()
	if err := checkTrainingSet(features, labels); err != nil {
		return err
	}
	n := len(features)
	svc.gammaValue = svc.resolveGamma(features)
	// labels as -1/+1
	y := make([]float32, n)
	for i, label := range labels {
		if label == 1 {
			y[i] = 1
		} else {
			y[i] = -1
		}
	}
	kernel := svc.kernelFunc()
	diag := make([]float32, n)
	for i := range diag {
		diag[i] = kernel(features[i], features[i])
	}
	alpha := make([]float32, n)
	var b float32
	decision := func(i int) float32 {
		sum := b
		for k := 0; k < n; k++ {
			if alpha[k] != 0 {
				sum += alpha[k] * y[k] * kernel(features[k], features[i])
			}
		}
		return sum
	}
	const (
		tolerance = 1e-3
		minStep   = 1e-5
		maxSweeps = 100
		patience  = 5
	)
	rng := svc.GetRandomGenerator()
	quietSweeps := 0
	for sweep := 0; sweep < maxSweeps && quietSweeps < patience; sweep++ {
		if err := ctx.Err(); err != nil {
			return errors.Trace(err)
		}
		numChanged := 0
		for i := 0; i < n; i++ {
			errI := decision(i) - y[i]
			if !((y[i]*errI < -tolerance && alpha[i] < svc.c) || (y[i]*errI > tolerance && alpha[i] > 0)) {
				continue
			}
			j := rng.Intn(n - 1)
			if j >= i {
				j++
			}
			errJ := decision(j) - y[j]
			// bounds of alpha[j]
			var low, high float32
			if y[i] != y[j] {
				low = math32.Max(0, alpha[j]-alpha[i])
				high = math32.Min(svc.c, svc.c+alpha[j]-alpha[i])
			} else {
				low = math32.Max(0, alpha[i]+alpha[j]-svc.c)
				high = math32.Min(svc.c, alpha[i]+alpha[j])
			}
			if low == high {
				continue
			}
			kij := kernel(features[i], features[j])
			eta := 2*kij - diag[i] - diag[j]
			if eta >= 0 {
				continue
			}
			alphaJ := alpha[j] - y[j]*(errI-errJ)/eta
			alphaJ = math32.Min(high, math32.Max(low, alphaJ))
			if math32.Abs(alphaJ-alpha[j]) < minStep {
				continue
			}
			alphaI := alpha[i] + y[i]*y[j]*(alpha[j]-alphaJ)
			// update the intercept
			b1 := b - errI - y[i]*(alphaI-alpha[i])*diag[i] - y[j]*(alphaJ-alpha[j])*kij
			b2 := b - errJ - y[i]*(alphaI-alpha[i])*kij - y[j]*(alphaJ-alpha[j])*diag[j]
			switch {
			case alphaI > 0 && alphaI < svc.c:
				b = b1
			case alphaJ > 0 && alphaJ < svc.c:
				b = b2
			default:
				b = (b1 + b2) / 2
			}
			alpha[i], alpha[j] = alphaI, alphaJ
			numChanged++
		}
		if numChanged == 0 {
			quietSweeps++
		} else {
			quietSweeps = 0
		}
		if config.Verbose > 0 && (sweep+1)%config.Verbose == 0 {
			log.Logger().Debug("svc sweep",
				zap.Int("sweep", sweep+1),
				zap.Int("changed", numChanged))
		}
	}
	// keep support vectors only
	svc.supportVectors = svc.supportVectors[:0]
	svc.coefficients = svc.coefficients[:0]
	for i := 0; i < n; i++ {
		if alpha[i] > 0 {
			svc.supportVectors = append(svc.supportVectors, features[i])
			svc.coefficients = append(svc.coefficients, alpha[i]*y[i])
		}
	}
	svc.intercept = b
	log.Logger().Debug("svc fitted",
		zap.Int("support_vectors", len(svc.supportVectors)),
		zap.String("kernel", svc.kernel))
	return nil
}

// Score returns the decision margin for class 1.
func (svc *SVC) Score(x []float32) float32 {
	kernel := svc.kernelFunc()
	sum := svc.intercept
	for i, sv := range svc.supportVectors {
		sum += svc.coefficients[i] * kernel(sv, x)
	}
	return sum
}

// Predict the label code of a sample.
func (svc *SVC) Predict(x []float32) int32 {
	if svc.Score(x) > 0 {
		return 1
	}
	return 0
}

func (svc *SVC) kernelFunc() func(a, b []float32) float32 {
	if svc.kernel == base.Linear {
		return dot
	}
	gamma := svc.gammaValue
	return func(a, b []float32) float32 {
		var dist float32
		for i := range a {
			d := a[i] - b[i]
			dist += d * d
		}
		return math32.Exp(-gamma * dist)
	}
}

// resolveGamma converts the gamma mode into a kernel coefficient:
// scale is 1/(d*Var(X)), auto is 1/d.
func (svc *SVC) resolveGamma(features [][]float32) float32 {
	d := len(features[0])
	if svc.gamma == base.Auto {
		return 1 / float32(d)
	}
	var sum, sqSum float64
	var count int
	for _, row := range features {
		for _, v := range row {
			sum += float64(v)
			sqSum += float64(v) * float64(v)
			count++
		}
	}
	if count == 0 {
		return 1 / float32(d)
	}
	mean := sum / float64(count)
	variance := sqSum/float64(count) - mean*mean
	if variance <= 0 {
		return 1 / float32(d)
	}
	return float32(1 / (float64(d) * variance))
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
