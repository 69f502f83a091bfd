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

// Dict is a per-column encoding table. Distinct categorical values are
// assigned integer codes 0..k-1 in first-seen order. Encoding the same column
// twice always yields the same codes.
type Dict struct {
	si  map[string]int32
	is  []string
	cnt []int
}

func NewDict() (d *Dict) {
	d = &Dict{map[string]int32{}, []string{}, []int{}}
	return
}

// Count returns the number of distinct values.
func (d *Dict) Count() int {
	return len(d.is)
}

// Id returns the code of a value, assigning the next free code to values seen
// for the first time.
func (d *Dict) Id(s string) (y int32) {
	if y, ok := d.si[s]; ok {
		d.cnt[y]++
		return y
	}

	y = int32(len(d.is))
	d.si[s] = y
	d.is = append(d.is, s)
	d.cnt = append(d.cnt, 1)
	return
}

// Lookup returns the code of a value without assigning one.
func (d *Dict) Lookup(s string) (int32, bool) {
	y, ok := d.si[s]
	return y, ok
}

// String is the inverse lookup of Id.
func (d *Dict) String(id int32) (s string, ok bool) {
	if id < 0 || int(id) >= len(d.is) {
		return "", false
	}
	return d.is[id], true
}

// Freq returns how many times a code was assigned.
func (d *Dict) Freq(id int32) int {
	if id < 0 || int(id) >= len(d.cnt) {
		return 0
	}
	return d.cnt[id]
}
