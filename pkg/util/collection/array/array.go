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

// Predicate determines whether a given item matches some criteria.
type Predicate[T any] func(T) bool

// RemoveMatching removes all elements from an array matching the given
// predicate.  The original array is returned when nothing matches, otherwise a
// fresh array is allocated.
func RemoveMatching[T any](items []T, predicate Predicate[T]) []T {
	count := 0
	// Check how many remain
	for _, r := range items {
		if !predicate(r) {
			count++
		}
	}
	//
	if count == len(items) {
		return items
	}
	//
	nitems := make([]T, 0, count)
	//
	for _, r := range items {
		if !predicate(r) {
			nitems = append(nitems, r)
		}
	}
	//
	return nitems
}
