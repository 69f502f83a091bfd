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

package dataset

import (
	"fmt"
	"math"

	"github.com/gorse-io/amanita/base"
)

// SplitError reports an invalid split request. It is raised before any
// training happens and is correctable by the caller.
type SplitError struct {
	Message string
}

func (e *SplitError) Error() string {
	return e.Message
}

func splitErrorf(format string, args ...interface{}) *SplitError {
	return &SplitError{Message: fmt.Sprintf(format, args...)}
}

// Split is a train/test partition of an encoded dataset. Feature rows carry
// every column except the label, as float32 codes. The partition is
// exhaustive and disjoint by construction.
type Split struct {
	TrainFeatures [][]float32
	TrainLabels   []int32
	TestFeatures  [][]float32
	TestLabels    []int32
	TrainIndex    []int
	TestIndex     []int
}

// Split partitions the dataset into train and test subsets. The test subset
// holds ceil(n*testRatio) rows chosen by a pseudo-random permutation fully
// determined by seed. Repeated calls with identical arguments yield identical
// partitions.
func (dataset *Dataset) Split(labelColumn string, testRatio float32, seed int64) (*Split, error) {
	if testRatio <= 0 || testRatio >= 1 {
		return nil, splitErrorf("test ratio %v out of range (0,1)", testRatio)
	}
	labelIndex := dataset.ColumnIndex(labelColumn)
	if labelIndex < 0 {
		return nil, splitErrorf("label column %q not found", labelColumn)
	}
	n := dataset.Count()
	testSize := int(math.Ceil(float64(n) * float64(testRatio)))
	perm := newPermutation(n, seed)
	split := &Split{
		TestIndex:  perm[:testSize],
		TrainIndex: perm[testSize:],
	}
	split.TestFeatures, split.TestLabels = dataset.gather(split.TestIndex, labelIndex)
	split.TrainFeatures, split.TrainLabels = dataset.gather(split.TrainIndex, labelIndex)
	return split, nil
}

// newPermutation generates the deterministic row permutation for a seed.
// math/rand's Perm is stable for a fixed source, which makes the partition
// cacheable across repeated runs.
func newPermutation(n int, seed int64) []int {
	rng := base.NewRandomGenerator(seed)
	return rng.Perm(n)
}

func (dataset *Dataset) gather(index []int, labelIndex int) ([][]float32, []int32) {
	features := make([][]float32, 0, len(index))
	labels := make([]int32, 0, len(index))
	for _, i := range index {
		row := dataset.Rows[i]
		x := make([]float32, 0, len(row)-1)
		for j, code := range row {
			if j != labelIndex {
				x = append(x, float32(code))
			}
		}
		features = append(features, x)
		labels = append(labels, row[labelIndex])
	}
	return features, labels
}
