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

package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_Copy(t *testing.T) {
	// Create parameters
	a := Params{
		NEstimators: 100,
		C:           0.1,
		RandomState: 0,
	}
	// Create copy
	b := a.Copy()
	b[NEstimators] = 200
	b[C] = 0.2
	b[RandomState] = 1
	// Check original parameters
	assert.Equal(t, 100, a.GetInt(NEstimators, -1))
	assert.Equal(t, float32(0.1), a.GetFloat32(C, -0.1))
	assert.Equal(t, int64(0), a.GetInt64(RandomState, -1))
	// Check copy parameters
	assert.Equal(t, 200, b.GetInt(NEstimators, -1))
	assert.Equal(t, float32(0.2), b.GetFloat32(C, -0.1))
	assert.Equal(t, int64(1), b.GetInt64(RandomState, -1))
}

func TestParams_GetFloat32(t *testing.T) {
	p := Params{}
	// Empty case
	assert.Equal(t, float32(0.1), p.GetFloat32(C, 0.1))
	// Normal case
	p[C] = float32(1.0)
	assert.Equal(t, float32(1.0), p.GetFloat32(C, 0.1))
	// Converted cases
	p[C] = 1.0
	assert.Equal(t, float32(1.0), p.GetFloat32(C, 0.1))
	p[C] = 1
	assert.Equal(t, float32(1.0), p.GetFloat32(C, 0.1))
	// Wrong type case
	p[C] = "hello"
	assert.Equal(t, float32(0.1), p.GetFloat32(C, 0.1))
}

func TestParams_GetInt(t *testing.T) {
	p := Params{}
	// Empty case
	assert.Equal(t, -1, p.GetInt(MaxDepth, -1))
	// Normal case
	p[MaxDepth] = 10
	assert.Equal(t, 10, p.GetInt(MaxDepth, -1))
	// Wrong type case
	p[MaxDepth] = "hello"
	assert.Equal(t, -1, p.GetInt(MaxDepth, -1))
}

func TestParams_GetInt64(t *testing.T) {
	p := Params{}
	// Empty case
	assert.Equal(t, int64(-1), p.GetInt64(RandomState, -1))
	// Normal case
	p[RandomState] = int64(42)
	assert.Equal(t, int64(42), p.GetInt64(RandomState, -1))
	// Converted case
	p[RandomState] = 42
	assert.Equal(t, int64(42), p.GetInt64(RandomState, -1))
	// Wrong type case
	p[RandomState] = "hello"
	assert.Equal(t, int64(-1), p.GetInt64(RandomState, -1))
}

func TestParams_GetBool(t *testing.T) {
	p := Params{}
	// Empty case
	assert.True(t, p.GetBool(Bootstrap, true))
	// Normal case
	p[Bootstrap] = false
	assert.False(t, p.GetBool(Bootstrap, true))
	// Wrong type case
	p[Bootstrap] = 1
	assert.True(t, p.GetBool(Bootstrap, true))
}

func TestParams_GetString(t *testing.T) {
	p := Params{}
	// Empty case
	assert.Equal(t, RBF, p.GetString(Kernel, RBF))
	// Normal case
	p[Kernel] = Linear
	assert.Equal(t, Linear, p.GetString(Kernel, RBF))
	// Wrong type case
	p[Kernel] = 1
	assert.Equal(t, RBF, p.GetString(Kernel, RBF))
}

func TestParams_Overwrite(t *testing.T) {
	a := Params{C: 1.0, Kernel: RBF}
	b := a.Overwrite(Params{Kernel: Linear, Gamma: Auto})
	assert.Equal(t, float32(1.0), b.GetFloat32(C, -1))
	assert.Equal(t, Linear, b.GetString(Kernel, ""))
	assert.Equal(t, Auto, b.GetString(Gamma, ""))
	// Original parameters are untouched
	assert.Equal(t, RBF, a.GetString(Kernel, ""))
}
