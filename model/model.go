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

// Package model provides binary classifiers over label-encoded categorical
// features: a support vector classifier, logistic regression and a random
// forest, plus the evaluator computing scalar metrics and diagnostic curves.
package model

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gorse-io/amanita/base"
)

// Type is the type of a classifier.
type Type string

const (
	TypeSVC                Type = "svc"
	TypeLogisticRegression Type = "logistic_regression"
	TypeRandomForest       Type = "random_forest"
)

// HyperparameterError reports an out-of-range or malformed hyper-parameter.
// It is raised before any model is constructed.
type HyperparameterError struct {
	Message string
}

func (e *HyperparameterError) Error() string {
	return e.Message
}

func hyperparameterErrorf(format string, args ...interface{}) *HyperparameterError {
	return &HyperparameterError{Message: fmt.Sprintf(format, args...)}
}

// TrainingError reports an inconsistent training set. It is fatal for the
// current run.
type TrainingError struct {
	Message string
}

func (e *TrainingError) Error() string {
	return e.Message
}

func trainingErrorf(format string, args ...interface{}) *TrainingError {
	return &TrainingError{Message: fmt.Sprintf(format, args...)}
}

// Classifier is the interface of all binary classifiers. A classifier is fit
// once per experiment and discarded afterwards.
type Classifier interface {
	// Set hyper-parameters.
	SetParams(params base.Params)
	// Get hyper-parameters.
	GetParams() base.Params
	// Fit the classifier on a training set. Label codes must be 0 or 1.
	Fit(ctx context.Context, features [][]float32, labels []int32, config *FitConfig) error
	// Predict the label code of a sample.
	Predict(x []float32) int32
	// Score returns the decision value of a sample: a margin for SVC, the
	// class-1 probability for the other classifiers. Higher means more
	// likely class 1.
	Score(x []float32) float32
}

// BaseClassifier must be included by every classifier. Hyper-parameters and
// the seeded random generator are managed by the BaseClassifier.
type BaseClassifier struct {
	Params    base.Params          // Hyper-parameters
	rng       base.RandomGenerator // Random generator
	randState int64                // Random seed
}

// SetParams sets hyper-parameters for the BaseClassifier.
func (model *BaseClassifier) SetParams(params base.Params) {
	model.Params = params
	model.randState = model.Params.GetInt64(base.RandomState, 0)
	model.rng = base.NewRandomGenerator(model.randState)
}

// GetParams returns all hyper-parameters.
func (model *BaseClassifier) GetParams() base.Params {
	return model.Params
}

func (model *BaseClassifier) GetRandomGenerator() base.RandomGenerator {
	return model.rng
}

// NewClassifier builds an untrained classifier of the given type. Hyper-
// parameters are validated before construction and invalid values fail with
// HyperparameterError.
func NewClassifier(t Type, params base.Params) (Classifier, error) {
	switch t {
	case TypeSVC:
		return NewSVC(params)
	case TypeLogisticRegression:
		return NewLogisticRegression(params)
	case TypeRandomForest:
		return NewRandomForest(params)
	default:
		return nil, hyperparameterErrorf("unknown classifier type: %v", t)
	}
}

// checkTrainingSet validates a training set before fitting: features and
// labels must have the same number of rows and labels must hold exactly the
// codes of a binary problem.
func checkTrainingSet(features [][]float32, labels []int32) error {
	if len(features) != len(labels) {
		return trainingErrorf("features have %d rows but labels have %d", len(features), len(labels))
	}
	if len(labels) == 0 {
		return trainingErrorf("empty training set")
	}
	classes := mapset.NewSet[int32]()
	for _, label := range labels {
		classes.Add(label)
	}
	if classes.Cardinality() > 2 {
		return trainingErrorf("expected binary labels, found %d classes", classes.Cardinality())
	}
	for _, class := range classes.ToSlice() {
		if class != 0 && class != 1 {
			return trainingErrorf("label codes must be 0 or 1, found %d", class)
		}
	}
	return nil
}

// FitConfig controls the fitting process.
type FitConfig struct {
	Jobs    int
	Verbose int
}

func NewFitConfig() *FitConfig {
	return &FitConfig{
		Jobs:    1,
		Verbose: 100,
	}
}

func (config *FitConfig) SetVerbose(verbose int) *FitConfig {
	config.Verbose = verbose
	return config
}

func (config *FitConfig) SetJobs(jobs int) *FitConfig {
	config.Jobs = jobs
	return config
}

func (config *FitConfig) LoadDefaultIfNil() *FitConfig {
	if config == nil {
		return NewFitConfig()
	}
	return config
}
