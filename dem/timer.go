// Copyright 2016 The Godem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dem

import (
	"bytes"
	"time"

	"github.com/cpmech/gosl/io"
)

// Timer accumulates the wall-clock time of a named phase
type Timer struct {
	Name  string // name of phase; e.g. "compute_kernel"
	total time.Duration
	count int
	start time.Time
}

// NewTimer returns a new timer
func NewTimer(name string) *Timer {
	return &Timer{Name: name}
}

// Start starts timing
func (o *Timer) Start() {
	o.start = time.Now()
}

// Stop stops timing and adds the elapsed time to the total
func (o *Timer) Stop() {
	o.total += time.Since(o.start)
	o.count++
}

// Total returns the accumulated time
func (o *Timer) Total() time.Duration {
	return o.total
}

// Count returns the number of Start/Stop intervals
func (o *Timer) Count() int {
	return o.count
}

// Report holds the timings and the outcome of a run
type Report struct {
	NumIter    int      // number of iterations
	OneTime    []*Timer // one-time costs; e.g. layout (aos_gen), declarations, plans
	PerIter    []*Timer // per-iteration costs; e.g. compute_kernel, add_kernel
	Mismatches int      // number of components flagged by the verifier
}

// String returns the timing table
//
//	Note: one-time costs are totals; per-iteration costs are averages over NumIter
func (o *Report) String() string {
	var b bytes.Buffer
	b.WriteString(io.Sf("# one-time costs [ms]\n"))
	for _, t := range o.OneTime {
		b.WriteString(io.Sf("%-16s %12.6f\n", t.Name, ms(t.total)))
	}
	b.WriteString(io.Sf("# per-iteration costs [ms] (average over %d iterations)\n", o.NumIter))
	for _, t := range o.PerIter {
		avg := 0.0
		if o.NumIter > 0 {
			avg = ms(t.total) / float64(o.NumIter)
		}
		b.WriteString(io.Sf("%-16s %12.6f\n", t.Name, avg))
	}
	return b.String()
}

// ms converts a duration to milliseconds
func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
