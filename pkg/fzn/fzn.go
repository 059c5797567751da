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
package fzn

import (
	"fmt"

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/ast"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/diag"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/model"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/parser"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/search"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/walker"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/source"
)

// Config determines how a model is checked.
type Config struct {
	// Report warnings as errors.
	Strict bool
	// Configuration passed to the semantic walker.
	Walker walker.Config
}

// DefaultConfig is used by Parse.
var DefaultConfig = Config{Strict: false, Walker: walker.DefaultConfig}

// Result is the outcome of checking one source file.
type Result struct {
	// Resolved model, or nil if any errors arose.
	Model *model.Model
	// Syntax tree of the file, or nil if it could not be parsed.
	Root *ast.Node
	// Errors and warnings in the order they were found.
	Errors   []diag.Error
	Warnings []diag.Error
	// Maps items of the model back to the source file, or nil if the file
	// could not be parsed.
	SourceMap *source.Map[any]
}

// Parse a source file into a resolved model.  This returns either a model and
// zero or more warnings, or no model and one or more errors.
func Parse(srcfile *source.File) (*model.Model, []diag.Error, []diag.Error) {
	res := Check(srcfile, DefaultConfig)
	//
	return res.Model, res.Errors, res.Warnings
}

// Check a source file by lexing, parsing and then walking it.  The walk is
// skipped when there are syntax errors, since a partial tree would only give
// rise to spurious semantic errors.
func Check(srcfile *source.File, config Config) Result {
	var res Result
	//
	root, errs := parser.Parse(srcfile)
	if len(errs) > 0 {
		res.Errors = diag.Syntax(errs...)
		return res
	}
	//
	m, walked := walker.WalkWith(srcfile, root, config.Walker)
	res.Root = root
	res.SourceMap = walked.SourceMap
	res.Errors = walked.Errors()
	res.Warnings = walked.Warnings()
	//
	if config.Strict {
		res.Errors = append(res.Errors, res.Warnings...)
		res.Warnings = nil
	}
	//
	if len(res.Errors) == 0 {
		res.Model = m
	}
	//
	return res
}

// Register hands a resolved model over to a consumer, such as a solver.
func Register(m *model.Model, consumer model.Consumer) (model.Registration, error) {
	if m == nil {
		return model.Registration{}, fmt.Errorf("no model to register")
	}
	//
	return model.Register(m, consumer)
}

// Report describes how the variable/constraint pairs of a model are divided
// amongst the groups of its search configuration.
type Report struct {
	Pairs      []*model.Pair
	Assignment *search.Assignment
	// Groups which selected no pairs at all.
	Diagnostics []diag.Error
}

// Members returns the pairs assigned to a given group.
func (p *Report) Members(group string) []*model.Pair {
	return p.pairs(p.Assignment.Members(group))
}

// Remaining returns the pairs not assigned to any group.  These are scheduled
// by the default strategy of a solver.
func (p *Report) Remaining() []*model.Pair {
	return p.pairs(p.Assignment.Remaining())
}

func (p *Report) pairs(indices []int) []*model.Pair {
	pairs := make([]*model.Pair, len(indices))
	//
	for i, index := range indices {
		pairs[i] = p.Pairs[index]
	}
	//
	return pairs
}

// Groups partitions the pairs of a successfully checked model amongst its
// groups.  A group selecting nothing is reported as an error, since the part of
// the structure referring to it is then redundant.
func Groups(res Result) (*Report, error) {
	if res.Model == nil {
		return nil, fmt.Errorf("cannot partition a model with errors")
	}
	//
	var (
		groups []*search.Group
		pairs  = model.Pairs(res.Model)
	)
	//
	if res.Model.Search.HasValue() {
		groups = res.Model.Search.Unwrap().Groups
	}
	//
	report := &Report{Pairs: pairs, Assignment: search.Partition(groups, model.Entities(pairs))}
	//
	for _, name := range report.Assignment.Empty() {
		for _, g := range groups {
			if g.Name == name {
				err := res.SourceMap.SyntaxError(g, fmt.Sprintf("group %s selects nothing", name))
				report.Diagnostics = append(report.Diagnostics, diag.New(diag.EMPTY_GROUP, *err))
			}
		}
	}
	//
	return report, nil
}
