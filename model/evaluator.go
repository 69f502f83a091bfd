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

	"github.com/chewxy/math32"
	"go.uber.org/zap"
	"modernc.org/sortutil"
)

// Score is the scalar result of evaluating a classifier on a test set.
type Score struct {
	Accuracy  float32
	Precision float32
	Recall    float32
}

func (score Score) ZapFields() []zap.Field {
	return []zap.Field{
		zap.Float32("Accuracy", score.Accuracy),
		zap.Float32("Precision", score.Precision),
		zap.Float32("Recall", score.Recall),
	}
}

// Point is a point of a diagnostic curve.
type Point struct {
	X float32
	Y float32
}

// Evaluate scores a fitted classifier on a test set. It returns the scalar
// metrics together with the raw predictions and decision values consumed by
// the curve functions. Inputs are never mutated.
func Evaluate(classifier Classifier, features [][]float32, labels []int32, positive int32) (Score, []int32, []float32) {
	predictions := make([]int32, len(features))
	scores := make([]float32, len(features))
	for i, x := range features {
		predictions[i] = classifier.Predict(x)
		scores[i] = classifier.Score(x)
	}
	return Score{
		Accuracy:  Accuracy(labels, predictions),
		Precision: Precision(labels, predictions, positive),
		Recall:    Recall(labels, predictions, positive),
	}, predictions, scores
}

// Accuracy is the fraction of correctly predicted labels.
func Accuracy(labels, predictions []int32) float32 {
	if len(labels) == 0 {
		return 0
	}
	var correct float32
	for i := range labels {
		if labels[i] == predictions[i] {
			correct++
		}
	}
	return correct / float32(len(labels))
}

// Precision is TP/(TP+FP) with the given positive class, zero when no sample
// is predicted positive.
func Precision(labels, predictions []int32, positive int32) float32 {
	var tp, fp float32
	for i := range labels {
		if predictions[i] == positive {
			if labels[i] == positive {
				tp++
			} else {
				fp++
			}
		}
	}
	if tp+fp == 0 {
		return 0
	}
	return tp / (tp + fp)
}

// Recall is TP/(TP+FN) with the given positive class, zero when the test set
// has no positive sample.
func Recall(labels, predictions []int32, positive int32) float32 {
	var tp, fn float32
	for i := range labels {
		if labels[i] == positive {
			if predictions[i] == positive {
				tp++
			} else {
				fn++
			}
		}
	}
	if tp+fn == 0 {
		return 0
	}
	return tp / (tp + fn)
}

// ConfusionMatrix counts test samples by (actual, predicted) class code in
// ascending code order: [[TN,FP],[FN,TP]] when class 1 is positive. Entries
// sum to the number of test rows. A code outside {0,1} fails with
// TrainingError: a third label value may survive splitting when it never
// appears in a train row.
func ConfusionMatrix(labels, predictions []int32) ([2][2]int, error) {
	var matrix [2][2]int
	for i := range labels {
		if labels[i] < 0 || labels[i] > 1 {
			return matrix, trainingErrorf("label codes must be 0 or 1, found %d", labels[i])
		}
		if predictions[i] < 0 || predictions[i] > 1 {
			return matrix, trainingErrorf("prediction codes must be 0 or 1, found %d", predictions[i])
		}
		matrix[labels[i]][predictions[i]]++
	}
	return matrix, nil
}

// ROC computes the receiver operating characteristic curve by sweeping all
// distinct decision values from highest to lowest, plus the area under it by
// trapezoidal integration. The first point is (0,0) and the false positive
// rate is non-decreasing across the sequence. Scores must be oriented so
// that higher means more likely positive.
//
// When the test set has no positive (or no negative) sample the true (or
// false) positive rate is undefined: points and AUC degrade to NaN.
func ROC(labels []int32, scores []float32, positive int32) ([]Point, float32) {
	var pos, neg float32
	for _, label := range labels {
		if label == positive {
			pos++
		} else {
			neg++
		}
	}
	points := []Point{{X: 0, Y: 0}}
	for _, threshold := range sweepThresholds(scores) {
		tp, fp := countAbove(labels, scores, positive, threshold)
		points = append(points, Point{X: rate(fp, neg), Y: rate(tp, pos)})
	}
	var auc float32
	for i := 1; i < len(points); i++ {
		auc += (points[i].X - points[i-1].X) * (points[i].Y + points[i-1].Y) / 2
	}
	return points, auc
}

// PrecisionRecall computes the precision-recall curve with the same
// threshold sweep as ROC. Recall is non-decreasing across the sequence.
// When the test set has no positive sample, recall is undefined and the
// points degrade to NaN.
func PrecisionRecall(labels []int32, scores []float32, positive int32) []Point {
	var pos float32
	for _, label := range labels {
		if label == positive {
			pos++
		}
	}
	var points []Point
	for _, threshold := range sweepThresholds(scores) {
		tp, fp := countAbove(labels, scores, positive, threshold)
		points = append(points, Point{X: rate(tp, pos), Y: tp / (tp + fp)})
	}
	return points
}

// sweepThresholds returns the distinct decision values in descending order.
func sweepThresholds(scores []float32) []float32 {
	thresholds := make(sortutil.Float32Slice, len(scores))
	copy(thresholds, scores)
	sort.Sort(sort.Reverse(thresholds))
	distinct := thresholds[:0]
	for i, t := range thresholds {
		if i == 0 || t != distinct[len(distinct)-1] {
			distinct = append(distinct, t)
		}
	}
	return distinct
}

func countAbove(labels []int32, scores []float32, positive int32, threshold float32) (tp, fp float32) {
	for i, score := range scores {
		if score >= threshold {
			if labels[i] == positive {
				tp++
			} else {
				fp++
			}
		}
	}
	return
}

func rate(count, total float32) float32 {
	if total == 0 {
		return math32.NaN()
	}
	return count / total
}
