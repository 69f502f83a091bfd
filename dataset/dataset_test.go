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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mushroomsCSV = `type,cap_shape,odor
edible,convex,none
poisonous,convex,foul
edible,bell,almond
poisonous,flat,foul
`

func TestReadCSV(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(mushroomsCSV))
	require.NoError(t, err)
	assert.Equal(t, []string{"type", "cap_shape", "odor"}, table.Header)
	assert.Len(t, table.Rows, 4)
	assert.Equal(t, []string{"poisonous", "flat", "foul"}, table.Rows[3])
}

func TestReadCSV_Quoted(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("a,b\n\"x,y\",\"he said \"\"hi\"\"\"\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"x,y", `he said "hi"`}, table.Rows[0])
}

func TestReadCSV_FormatErrors(t *testing.T) {
	var formatError *FormatError
	// ragged row
	_, err := ReadCSV(strings.NewReader("a,b\n1,2\n1,2,3\n"))
	assert.ErrorAs(t, err, &formatError)
	// no data rows
	_, err = ReadCSV(strings.NewReader("a,b\n"))
	assert.ErrorAs(t, err, &formatError)
	// empty source
	_, err = ReadCSV(strings.NewReader(""))
	assert.ErrorAs(t, err, &formatError)
}

func TestReadCSVFile_Missing(t *testing.T) {
	var formatError *FormatError
	_, err := ReadCSVFile(filepath.Join(t.TempDir(), "no_such_file.csv"))
	assert.ErrorAs(t, err, &formatError)
}

func TestEncode(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(mushroomsCSV))
	require.NoError(t, err)
	dataset := Encode(table)
	assert.Equal(t, 4, dataset.Count())
	// codes are assigned per column in first-seen order
	assert.Equal(t, []int32{0, 0, 0}, dataset.Rows[0])
	assert.Equal(t, []int32{1, 0, 1}, dataset.Rows[1])
	assert.Equal(t, []int32{0, 1, 2}, dataset.Rows[2])
	assert.Equal(t, []int32{1, 2, 1}, dataset.Rows[3])
	// inverse lookup
	assert.Equal(t, "poisonous", dataset.Decode(0, 1))
	assert.Equal(t, "bell", dataset.Decode(1, 1))
	assert.Equal(t, "", dataset.Decode(5, 0))
}

func TestEncode_Idempotent(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(mushroomsCSV))
	require.NoError(t, err)
	a := Encode(table)
	b := Encode(table)
	assert.Equal(t, a.Rows, b.Rows)
	for i := range a.Dicts {
		assert.Equal(t, a.Dicts[i].Count(), b.Dicts[i].Count())
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mushrooms.csv")
	require.NoError(t, os.WriteFile(path, []byte(mushroomsCSV), 0644))
	dataset, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, dataset.Count())
	assert.Equal(t, 0, dataset.ColumnIndex("type"))
	assert.Equal(t, -1, dataset.ColumnIndex("missing"))
}
