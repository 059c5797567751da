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
package source

import (
	"fmt"
	"os"
	"sort"
)

// ReadFiles reads the given model files from disk, failing on the first file
// which cannot be read.
func ReadFiles(filenames ...string) ([]File, error) {
	files := make([]File, len(filenames))
	//
	for i, n := range filenames {
		bytes, err := os.ReadFile(n)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", n, err)
		}
		//
		files[i] = *NewSourceFile(n, bytes)
	}
	//
	return files, nil
}

// Line is a physical line of a source file.  Line numbers count from 1, and
// the span never includes the terminating newline.
type Line struct {
	text   []rune
	span   Span
	number int
}

func (p *Line) String() string {
	return string(p.text[p.span.start:p.span.end])
}

// Number returns the line number, counting from 1.
func (p *Line) Number() int {
	return p.number
}

// Start returns the offset of the first character of this line.
func (p *Line) Start() int {
	return p.span.start
}

// Length returns the number of characters in this line.
func (p *Line) Length() int {
	return p.span.Length()
}

// File is a named piece of source text.  The offsets at which each line begins
// are computed once, on construction, so that positions can be mapped back to
// lines without rescanning the text.
type File struct {
	filename string
	contents []rune
	// Offset of the first character of each line.
	starts []int
}

// NewSourceFile constructs a new source file from a given byte array.
func NewSourceFile(filename string, bytes []byte) *File {
	var (
		contents = []rune(string(bytes))
		starts   = []int{0}
	)
	//
	for i, c := range contents {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	//
	return &File{filename, contents, starts}
}

// Filename returns the filename associated with this source file.
func (s *File) Filename() string {
	return s.filename
}

// Contents returns the contents of this source file.
func (s *File) Contents() []rune {
	return s.contents
}

// Text returns the text covered by a given span of this file.
func (s *File) Text(span Span) string {
	return string(s.contents[span.start:span.end])
}

// SyntaxError constructs a syntax error over a given span of this file with a
// given message.
func (s *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{s, span, msg}
}

// Lines returns every physical line of this file, in order.
func (s *File) Lines() []Line {
	lines := make([]Line, len(s.starts))
	//
	for i := range s.starts {
		lines[i] = s.line(i)
	}
	//
	return lines
}

// FindFirstEnclosingLine determines the line containing the start of a given
// span.  Positions beyond the end of the file map to the last line.  A span can
// cross several lines, in which case only the first is returned.
func (s *File) FindFirstEnclosingLine(span Span) Line {
	// Index of the first line starting after the span
	i := sort.SearchInts(s.starts, span.start+1)
	//
	return s.line(max(0, i-1))
}

func (s *File) line(i int) Line {
	var end = len(s.contents)
	//
	if i+1 < len(s.starts) {
		// exclude the newline
		end = s.starts[i+1] - 1
	}
	//
	return Line{s.contents, Span{s.starts[i], end}, i + 1}
}

// SyntaxError is a message attached to a span of a source file.  The name is
// historical: it is also used for semantic errors, since both are reported by
// position in exactly the same way.
type SyntaxError struct {
	srcfile *File
	span    Span
	msg     string
}

// SourceFile returns the underlying source file that this syntax error covers.
func (p *SyntaxError) SourceFile() *File {
	return p.srcfile
}

// Span returns the span of the original text on which this error is reported.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message to be reported.
func (p *SyntaxError) Message() string {
	return p.msg
}

// Error implements the error interface.
func (p *SyntaxError) Error() string {
	if p.srcfile == nil {
		return p.msg
	}
	//
	line := p.FirstEnclosingLine()
	//
	return fmt.Sprintf("%s:%d:%d: %s", p.srcfile.Filename(), line.Number(), 1+p.span.start-line.Start(), p.msg)
}

// FirstEnclosingLine returns the line containing the start of this error.
func (p *SyntaxError) FirstEnclosingLine() Line {
	return p.srcfile.FindFirstEnclosingLine(p.span)
}
