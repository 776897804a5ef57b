// SPDX-FileCopyrightText: © 2025 LearnHub
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"io"
	"sync"
	"time"
)

/* ------------ tiny UI helper for single-line progress ------------ */

// ProgressLine aggregates progress of several concurrent uploads on one
// terminal line. A retried upload restarts from 0, so the aggregate can go
// back down.
type ProgressLine struct {
	mu       sync.Mutex
	out      io.Writer
	loaded   map[string]int64
	totals   map[string]int64
	lastTick time.Time
	interval time.Duration
}

func NewProgressLine(out io.Writer) *ProgressLine {
	return &ProgressLine{
		out:      out,
		loaded:   map[string]int64{},
		totals:   map[string]int64{},
		interval: 100 * time.Millisecond,
	}
}

// Update records the latest value for one upload and redraws the line,
// throttled to ~10 redraws per second unless the upload just completed.
func (pl *ProgressLine) Update(name string, loaded, total int64) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.loaded[name] = loaded
	pl.totals[name] = total
	pl.render(loaded == total)
}

func (pl *ProgressLine) Done() {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.render(true)
	fmt.Fprintln(pl.out)
}

func (pl *ProgressLine) snapshot() (done, total int64) {
	for k, t := range pl.totals {
		total += t
		done += min(pl.loaded[k], t)
	}
	return done, total
}

// render must be called with mu held.
func (pl *ProgressLine) render(force bool) {
	if !force && time.Since(pl.lastTick) < pl.interval {
		return
	}
	pl.lastTick = time.Now()

	done, total := pl.snapshot()
	if total <= 0 {
		fmt.Fprintf(pl.out, "\rProgress: %s uploaded   ", HumanBytes(done))
		return
	}
	pct := float64(done) / float64(total) * 100
	fmt.Fprintf(pl.out, "\rProgress: %6.2f%% (%s / %s)   ", pct, HumanBytes(done), HumanBytes(total))
}
