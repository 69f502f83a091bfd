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

// Package dataset loads categorical tables and label-encodes them into
// numeric datasets consumed by classifiers.
package dataset

import (
	"fmt"
)

// FormatError reports a malformed or missing source. No experiment can run
// over a source that fails to load.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}

func formatErrorf(format string, args ...interface{}) *FormatError {
	return &FormatError{Message: fmt.Sprintf(format, args...)}
}

// Table is a raw categorical table: a header row and string-valued rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Dataset is a label-encoded table. Every column, including the label, is
// mapped to integer codes by its own Dict.
type Dataset struct {
	Columns []string
	Dicts   []*Dict
	Rows    [][]int32
}

// Encode label-encodes every column of a table independently. Codes are
// assigned in first-seen order, so encoding the same table twice yields
// identical datasets.
func Encode(table *Table) *Dataset {
	dataset := &Dataset{
		Columns: table.Header,
		Dicts:   make([]*Dict, len(table.Header)),
		Rows:    make([][]int32, 0, len(table.Rows)),
	}
	for i := range dataset.Dicts {
		dataset.Dicts[i] = NewDict()
	}
	for _, row := range table.Rows {
		encoded := make([]int32, len(row))
		for i, value := range row {
			encoded[i] = dataset.Dicts[i].Id(value)
		}
		dataset.Rows = append(dataset.Rows, encoded)
	}
	return dataset
}

// Load reads a CSV file and label-encodes it.
func Load(path string) (*Dataset, error) {
	table, err := ReadCSVFile(path)
	if err != nil {
		return nil, err
	}
	return Encode(table), nil
}

// Count returns the number of rows.
func (dataset *Dataset) Count() int {
	return len(dataset.Rows)
}

// ColumnIndex returns the position of a named column, or -1.
func (dataset *Dataset) ColumnIndex(name string) int {
	for i, column := range dataset.Columns {
		if column == name {
			return i
		}
	}
	return -1
}

// Decode is the inverse lookup for display: it maps a code in a column back
// to the original categorical value.
func (dataset *Dataset) Decode(column int, code int32) string {
	if column < 0 || column >= len(dataset.Dicts) {
		return ""
	}
	s, _ := dataset.Dicts[column].String(code)
	return s
}
