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
package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chocoteam/choco-solver-sub000/pkg/util/assert"
)

func TestClipLine_00(t *testing.T) {
	text, offset := clipLine("constraint c(x);", 13, 1, 0)
	//
	assert.Equal(t, "constraint c(x);", text)
	assert.Equal(t, 13, offset)
}

func TestClipLine_01(t *testing.T) {
	line := strings.Repeat("a", 100) + "x" + strings.Repeat("b", 100)
	text, offset := clipLine(line, 100, 1, 40)
	//
	assert.Equal(t, 40, len(text))
	assert.Equal(t, 10, offset)
	assert.Equal(t, byte('x'), text[offset])
}

func TestClipLine_02(t *testing.T) {
	line := strings.Repeat("a", 100) + "x"
	text, offset := clipLine(line, 100, 1, 40)
	// Clipping never runs past the end of the line
	assert.Equal(t, 40, len(text))
	assert.Equal(t, 39, offset)
	assert.Equal(t, byte('x'), text[offset])
}

func TestWatch_00(t *testing.T) {
	var (
		dir         = t.TempDir()
		filename    = filepath.Join(dir, "test.fzn")
		ctx, cancel = context.WithCancel(context.Background())
		changed     = make(chan struct{}, 1)
		done        = make(chan error, 1)
	)
	//
	defer cancel()
	//
	if err := os.WriteFile(filename, []byte("solve satisfy;"), 0644); err != nil {
		t.Fatal(err)
	}
	//
	go func() {
		done <- watchFiles(ctx, []string{filename}, time.Millisecond, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()
	// Keep writing until the watcher is up and notices
	for deadline := time.Now().Add(5 * time.Second); ; {
		if err := os.WriteFile(filename, []byte("solve maximize 1;"), 0644); err != nil {
			t.Fatal(err)
		}
		//
		select {
		case <-changed:
			cancel()
			assert.True(t, <-done == nil)
			//
			return
		case err := <-done:
			t.Fatalf("watcher stopped: %v", err)
		case <-time.After(50 * time.Millisecond):
		}
		//
		if time.Now().After(deadline) {
			t.Fatal("no change observed")
		}
	}
}
