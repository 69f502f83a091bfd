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
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/juju/errors"
)

// ReadLines parse fields of each line for csv file. The handler returns false
// to stop reading.
func ReadLines(sc *bufio.Scanner, sep string, handler func(int, []string) bool) error {
	lineCount := 0               // line number of current position
	fields := make([]string, 0)  // fields for current line
	builder := strings.Builder{} // string builder for current field
	quoted := false              // whether current position in quote
	for sc.Scan() {
		// read line
		lineStr := sc.Text()
		line := []rune(lineStr)
		// start of line
		if quoted {
			builder.WriteString("\r\n")
		}
		// parse line
		for i := 0; i < len(line); i++ {
			if string(line[i]) == sep && !quoted {
				// end of field
				fields = append(fields, builder.String())
				builder.Reset()
			} else if line[i] == '"' {
				if quoted {
					if i+1 >= len(line) || line[i+1] != '"' {
						// end of quoted
						quoted = false
					} else {
						i++
						builder.WriteRune('"')
					}
				} else {
					// start of quoted
					quoted = true
				}
			} else {
				builder.WriteRune(line[i])
			}
		}
		// end of line
		if !quoted {
			fields = append(fields, builder.String())
			builder.Reset()
			if !handler(lineCount, fields) {
				return nil
			}
			fields = []string{}
		}
		// increase line count
		lineCount++
	}
	return sc.Err()
}

// ReadCSV reads a categorical table from a CSV stream with a header row.
func ReadCSV(r io.Reader) (*Table, error) {
	table := new(Table)
	var formatErr error
	err := ReadLines(bufio.NewScanner(r), ",", func(lineNumber int, fields []string) bool {
		if lineNumber == 0 {
			table.Header = fields
			return true
		}
		if len(fields) != len(table.Header) {
			formatErr = formatErrorf("line %d has %d fields, header has %d",
				lineNumber, len(fields), len(table.Header))
			return false
		}
		table.Rows = append(table.Rows, fields)
		return true
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	if formatErr != nil {
		return nil, formatErr
	}
	if len(table.Header) == 0 {
		return nil, formatErrorf("empty source: missing header row")
	}
	if len(table.Rows) == 0 {
		return nil, formatErrorf("empty source: no data rows")
	}
	return table, nil
}

// ReadCSVFile reads a categorical table from a CSV file with a header row.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, formatErrorf("failed to open source: %v", err)
	}
	defer f.Close()
	return ReadCSV(f)
}
