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
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Time to wait after a change before acting on it, such that a burst of events
// (e.g. from an editor saving a file) triggers only one action.
const watchDebounce = 100 * time.Millisecond

// Watch a set of files, calling onChange whenever any of them is written.  This
// blocks until the context is cancelled.  The enclosing directories are watched
// rather than the files themselves, since editors often replace a file instead
// of writing to it.
func watchFiles(ctx context.Context, filenames []string, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	//
	defer watcher.Close()
	//
	var (
		watched = make(map[string]bool)
		dirs    = make(map[string]bool)
		timer   *time.Timer
		fire    = make(chan struct{}, 1)
	)
	//
	for _, n := range filenames {
		path, err := filepath.Abs(n)
		if err != nil {
			return err
		}
		//
		watched[path] = true
		//
		if dir := filepath.Dir(path); !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			//
			dirs[dir] = true
		}
	}
	//
	log.Debugf("watching %d file(s)", len(watched))
	//
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			//
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			//
			path, err := filepath.Abs(event.Name)
			if err != nil || !watched[path] || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			//
			log.Debugf("%s changed (%s)", event.Name, event.Op)
			//
			if timer != nil {
				timer.Stop()
			}
			//
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			//
			log.Warnf("watch error: %s", err)
		}
	}
}
