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
package lex

import (
	"cmp"
	"slices"
)

// Scanner is a function which reports how many leading items of a sequence it
// accepts, where zero means no match.
type Scanner[T any] func(items []T) uint

// And succeeds only if every scanner succeeds on the same input, reporting the
// longest match amongst them.
func And[T any](scanners ...Scanner[T]) Scanner[T] {
	return func(items []T) uint {
		n := uint(0)
		//
		for _, scanner := range scanners {
			m := scanner(items)
			if m == 0 {
				return 0
			}
			//
			n = max(n, m)
		}
		//
		return n
	}
}

// Or returns the match of the first scanner which succeeds.
func Or[T any](scanners ...Scanner[T]) Scanner[T] {
	return func(items []T) uint {
		for _, scanner := range scanners {
			if n := scanner(items); n > 0 {
				return n
			}
		}
		//
		return 0
	}
}

// Unit accepts exactly the given items, in order.
func Unit[T comparable](chars ...T) Scanner[T] {
	return func(items []T) uint {
		if len(items) < len(chars) || !slices.Equal(items[:len(chars)], chars) {
			return 0
		}
		//
		return uint(len(chars))
	}
}

// String accepts exactly the characters of s.
func String(s string) Scanner[rune] {
	return Unit([]rune(s)...)
}

// Within accepts any single item within a given (inclusive) range.
func Within[T cmp.Ordered](lowest T, highest T) Scanner[T] {
	return func(items []T) uint {
		if len(items) != 0 && lowest <= items[0] && items[0] <= highest {
			return 1
		}
		//
		return 0
	}
}

// AnyBut accepts any single item other than those given.
func AnyBut[T comparable](excluded ...T) Scanner[T] {
	return func(items []T) uint {
		if len(items) != 0 && !slices.Contains(excluded, items[0]) {
			return 1
		}
		//
		return 0
	}
}

// Many matches zero or more repetitions of a given scanner.
func Many[T any](acceptor Scanner[T]) Scanner[T] {
	return func(items []T) uint {
		index := uint(0)
		//
		for index < uint(len(items)) {
			n := acceptor(items[index:])
			if n == 0 {
				break
			}
			//
			index += n
		}
		//
		return index
	}
}

// Until matches everything up to (but excluding) a given item, or up to the
// end of the input.
func Until[T comparable](item T) Scanner[T] {
	return func(items []T) uint {
		if i := slices.Index(items, item); i >= 0 {
			return uint(i)
		}
		//
		return uint(len(items))
	}
}

// Eof matches the end of the input stream.  Since a match of length zero means
// failure, the end is reported as a match of length one.
func Eof[T any]() Scanner[T] {
	return func(items []T) uint {
		if len(items) == 0 {
			return 1
		}
		//
		return 0
	}
}

// Sequence matches all the scanners in order, each consuming the input right
// after the previous one ends.  A scanner wrapped with Optional may match
// nothing.
func Sequence[T any](scanners ...Scanner[T]) Scanner[T] {
	return func(items []T) uint {
		n := uint(0)
		//
		for _, scanner := range scanners {
			m := scanner(items[n:])
			if m == 0 {
				return 0
			} else if m == optional {
				m = 0
			}
			//
			n += m
		}
		//
		return n
	}
}

// optional is the sentinel reported by an optional scanner which matched
// nothing.
const optional = ^uint(0)

// Optional permits a scanner within a Sequence to match nothing.  Outside a
// sequence, it should not be used.
func Optional[T any](scanner Scanner[T]) Scanner[T] {
	return func(items []T) uint {
		if n := scanner(items); n > 0 {
			return n
		}
		//
		return optional
	}
}
