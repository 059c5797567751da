// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package symbol

import (
	"errors"
	"slices"
	"testing"

	"github.com/chocoteam/choco-solver-sub000/pkg/util/assert"
)

func TestTable_00(t *testing.T) {
	table := NewTable[int]()
	//
	assert.True(t, table.Resolve("x").IsEmpty())
	assert.Equal(t, 0, table.Len())
}

func TestTable_01(t *testing.T) {
	table := NewTable[int]()
	//
	assert.Equal(t, nil, table.Declare("x", 1))
	assert.Equal(t, nil, table.Declare("y", 2))
	assert.Equal(t, 1, table.Resolve("x").Unwrap())
	assert.Equal(t, 2, table.Resolve("y").Unwrap())
	assert.Equal(t, []string{"x", "y"}, table.Names())
}

func TestTable_02(t *testing.T) {
	var (
		table = NewTable[int]()
		dup   *DuplicateError
	)
	//
	assert.Equal(t, nil, table.Declare("x", 1))
	//
	err := table.Declare("x", 2)
	// First declaration wins
	assert.True(t, errors.As(err, &dup))
	assert.Equal(t, "x", dup.Name)
	assert.Equal(t, 1, table.Resolve("x").Unwrap())
	assert.Equal(t, []string{"x"}, table.Names())
}

func TestTable_03(t *testing.T) {
	table := NewTable[*int]()
	v := 3
	//
	assert.Equal(t, nil, table.Declare("x", &v))
	// Resolution is idempotent
	assert.True(t, table.Resolve("x").Unwrap() == table.Resolve("x").Unwrap())
	assert.True(t, table.Has("x"))
	assert.False(t, table.Has("y"))
}

func TestTable_04(t *testing.T) {
	table := NewTable[int]()
	//
	for i, name := range []string{"c", "a", "b"} {
		assert.Equal(t, nil, table.Declare(name, i))
	}
	// Changing the names returned does not change the table
	names := table.Names()
	slices.Sort(names)
	names[0] = "z"
	_ = append(table.Names()[:1], "w")
	//
	assert.Equal(t, []string{"c", "a", "b"}, table.Names())
}
