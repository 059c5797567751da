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
package walker

import (
	"sort"

	"github.com/chocoteam/choco-solver-sub000/pkg/util"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Maximum edit distance at which a declared name is suggested for an unknown
// one, when neither contains the other as a subsequence.
const maxEditDistance = 2

// Suggest the declared name closest to an unknown name, if any is close enough.
// Names containing the unknown name (e.g. "xs" for "x") are preferred, with
// the fewest additional characters first.  Otherwise, a name within a small edit
// distance is suggested.
func suggest(name string, candidates []string) util.Option[string] {
	if ranks := fuzzy.RankFindFold(name, candidates); len(ranks) > 0 {
		sort.Stable(ranks)
		return util.Some(ranks[0].Target)
	}
	//
	var (
		best     string
		distance = maxEditDistance + 1
	)
	//
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(name, c); d < distance && d < len(name) {
			best, distance = c, d
		}
	}
	//
	if distance > maxEditDistance {
		return util.None[string]()
	}
	//
	return util.Some(best)
}
