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
package array

import (
	"testing"

	"github.com/chocoteam/choco-solver-sub000/pkg/util/assert"
)

func isEven(x int) bool {
	return x%2 == 0
}

func TestRemoveMatching_00(t *testing.T) {
	assert.Equal(t, []int{1, 3}, RemoveMatching([]int{1, 2, 3, 4}, isEven))
}

func TestRemoveMatching_01(t *testing.T) {
	items := []int{1, 3, 5}
	// Nothing removed, so no copy
	assert.True(t, &items[0] == &RemoveMatching(items, isEven)[0])
}

func TestRemoveMatching_02(t *testing.T) {
	assert.Len(t, 0, RemoveMatching([]int{2, 4}, isEven))
}
