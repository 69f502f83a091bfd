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

// Package experiment runs one binary-classification experiment per
// invocation: load and encode the dataset, split it, fit a classifier and
// report scalar metrics plus the requested diagnostic curves.
package experiment

import (
	"context"
	"fmt"
	"runtime"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gorse-io/amanita/base"
	"github.com/gorse-io/amanita/base/log"
	"github.com/gorse-io/amanita/dataset"
	"github.com/gorse-io/amanita/model"
	"github.com/jellydator/ttlcache/v3"
	"github.com/juju/errors"
	"go.uber.org/zap"
)

// Metric identifies an optional diagnostic curve of the result record.
type Metric string

const (
	ConfusionMatrix      Metric = "confusion_matrix"
	ROCCurve             Metric = "roc_curve"
	PrecisionRecallCurve Metric = "precision_recall_curve"
)

// Result is the record of one experiment. Scalar metrics are always present;
// curve fields are set only when requested. A result is immutable once
// returned.
type Result struct {
	Accuracy  float32
	Precision float32
	Recall    float32

	ConfusionMatrix *[2][2]int
	ROC             *ROCResult
	PR              *PRResult
}

// ROCResult is the ROC curve with its area computed by trapezoidal
// integration.
type ROCResult struct {
	Points []model.Point
	AUC    float32
}

// PRResult is the precision-recall curve.
type PRResult struct {
	Points []model.Point
}

// Runner runs experiments over one dataset source. Loading and splitting are
// memoized: the caches are populated on the first run and read-only
// afterwards, so repeated runs over the same source are cheap and share no
// other state.
type Runner struct {
	source        string
	labelColumn   string
	positiveLabel string
	testRatio     float32
	seed          int64
	jobs          int

	datasets *ttlcache.Cache[string, *dataset.Dataset]
	splits   *ttlcache.Cache[string, *dataset.Split]
}

// NewRunner creates a Runner for a CSV source. labelColumn names the binary
// label column and positiveLabel the categorical value treated as the
// positive class.
func NewRunner(source, labelColumn, positiveLabel string) *Runner {
	return &Runner{
		source:        source,
		labelColumn:   labelColumn,
		positiveLabel: positiveLabel,
		testRatio:     0.3,
		seed:          0,
		jobs:          runtime.NumCPU(),
		datasets:      ttlcache.New[string, *dataset.Dataset](),
		splits:        ttlcache.New[string, *dataset.Split](),
	}
}

// SetTestRatio sets the fraction of rows held out for testing.
func (r *Runner) SetTestRatio(testRatio float32) *Runner {
	r.testRatio = testRatio
	return r
}

// SetSeed sets the seed of the split permutation.
func (r *Runner) SetSeed(seed int64) *Runner {
	r.seed = seed
	return r
}

// SetJobs sets the number of workers available to classifiers that train in
// parallel.
func (r *Runner) SetJobs(jobs int) *Runner {
	r.jobs = jobs
	return r
}

// Run executes one experiment: build a classifier of the given type from the
// hyper-parameter bag, fit it on the train subset and evaluate it on the
// test subset. metrics selects the curves attached to the result; nil or
// empty requests none.
func (r *Runner) Run(ctx context.Context, t model.Type, params base.Params, metrics mapset.Set[Metric]) (*Result, error) {
	classifier, err := model.NewClassifier(t, params)
	if err != nil {
		return nil, err
	}
	ds, err := r.loadDataset()
	if err != nil {
		return nil, err
	}
	split, err := r.loadSplit(ds)
	if err != nil {
		return nil, err
	}
	positive, err := r.positiveCode(ds)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	config := model.NewFitConfig().SetJobs(r.jobs)
	if err = classifier.Fit(ctx, split.TrainFeatures, split.TrainLabels, config); err != nil {
		return nil, errors.Trace(err)
	}
	score, predictions, scores := model.Evaluate(classifier, split.TestFeatures, split.TestLabels, positive)
	result := &Result{
		Accuracy:  score.Accuracy,
		Precision: score.Precision,
		Recall:    score.Recall,
	}
	if metrics != nil && metrics.Contains(ConfusionMatrix) {
		matrix, err := model.ConfusionMatrix(split.TestLabels, predictions)
		if err != nil {
			return nil, err
		}
		result.ConfusionMatrix = &matrix
	}
	if metrics != nil && (metrics.Contains(ROCCurve) || metrics.Contains(PrecisionRecallCurve)) {
		oriented := orientScores(scores, positive)
		if metrics.Contains(ROCCurve) {
			points, auc := model.ROC(split.TestLabels, oriented, positive)
			result.ROC = &ROCResult{Points: points, AUC: auc}
		}
		if metrics.Contains(PrecisionRecallCurve) {
			result.PR = &PRResult{Points: model.PrecisionRecall(split.TestLabels, oriented, positive)}
		}
	}
	log.Logger().Info("experiment finished",
		append([]zap.Field{
			zap.String("classifier", string(t)),
			zap.Duration("fit_time", time.Since(start)),
		}, score.ZapFields()...)...)
	return result, nil
}

func (r *Runner) loadDataset() (*dataset.Dataset, error) {
	if item := r.datasets.Get(r.source); item != nil {
		return item.Value(), nil
	}
	ds, err := dataset.Load(r.source)
	if err != nil {
		return nil, err
	}
	r.datasets.Set(r.source, ds, ttlcache.NoTTL)
	return ds, nil
}

func (r *Runner) loadSplit(ds *dataset.Dataset) (*dataset.Split, error) {
	key := fmt.Sprintf("%s|%s|%v|%d", r.source, r.labelColumn, r.testRatio, r.seed)
	if item := r.splits.Get(key); item != nil {
		return item.Value(), nil
	}
	split, err := ds.Split(r.labelColumn, r.testRatio, r.seed)
	if err != nil {
		return nil, err
	}
	r.splits.Set(key, split, ttlcache.NoTTL)
	return split, nil
}

// positiveCode resolves the positive label string to its column code.
func (r *Runner) positiveCode(ds *dataset.Dataset) (int32, error) {
	labelIndex := ds.ColumnIndex(r.labelColumn)
	if labelIndex < 0 {
		return 0, &dataset.SplitError{Message: fmt.Sprintf("label column %q not found", r.labelColumn)}
	}
	code, ok := ds.Dicts[labelIndex].Lookup(r.positiveLabel)
	if !ok {
		return 0, &dataset.SplitError{Message: fmt.Sprintf("positive label %q not found in column %q", r.positiveLabel, r.labelColumn)}
	}
	return code, nil
}

// orientScores flips decision values when the positive class is code 0, so
// the curve sweep always sees higher scores as more likely positive.
// Negation preserves the threshold ordering for margins and probabilities
// alike.
func orientScores(scores []float32, positive int32) []float32 {
	if positive != 0 {
		return scores
	}
	oriented := make([]float32, len(scores))
	for i, s := range scores {
		oriented[i] = -s
	}
	return oriented
}
