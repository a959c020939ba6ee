//
// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package split defines the candidate split functions entities evaluate at a
// leaf, and the per-dataset factories that enumerate them.
package split

import (
	"fmt"
	"sync/atomic"
)

// idCounter is deliberately process-wide rather than scoped to a single
// training run: IDs are diagnostic-only (String/logging), never part of a
// privacy computation, so uniqueness is all that matters and a run-scoped
// allocator would have to be threaded through every splitting-class factory
// for no behavioral gain.
var idCounter int64

func nextID() int {
	return int(atomic.AddInt64(&idCounter, 1) - 1)
}

// Fn partitions a row into one of its Labels. Every Fn carries a
// process-wide monotonically increasing ID, used only for diagnostics.
type Fn interface {
	// ID identifies this split function for logging.
	ID() int
	// Labels lists the child labels this split can route a row to.
	Labels() []int
	// Apply returns the label a row routes to.
	Apply(row []float64) int
	String() string
}

// Threshold routes a row to child 1 if the mean of its named attributes is
// at most threshold, else to child 0.
type Threshold struct {
	id         int
	attributes []int
	threshold  float64
}

// NewThreshold returns a split comparing the mean of attributes against
// threshold.
func NewThreshold(attributes []int, threshold float64) *Threshold {
	return &Threshold{id: nextID(), attributes: append([]int(nil), attributes...), threshold: threshold}
}

func (t *Threshold) ID() int       { return t.id }
func (t *Threshold) Labels() []int { return []int{0, 1} }

func (t *Threshold) Apply(row []float64) int {
	var sum float64
	for _, a := range t.attributes {
		sum += row[a]
	}
	if sum <= t.threshold*float64(len(t.attributes)) {
		return 1
	}
	return 0
}

func (t *Threshold) String() string {
	return fmt.Sprintf("%v\t threshold at %f", t.attributes, t.threshold)
}

// Oblique routes a row to child 1 if y <= m*x + b, where x and y are each the
// mean of their named attributes, else to child 0.
type Oblique struct {
	id     int
	xs, ys []int
	m, b   float64
}

// NewOblique returns an oblique split of the line y = m*x + b.
func NewOblique(xs, ys []int, m, b float64) *Oblique {
	return &Oblique{id: nextID(), xs: append([]int(nil), xs...), ys: append([]int(nil), ys...), m: m, b: b}
}

func (o *Oblique) ID() int       { return o.id }
func (o *Oblique) Labels() []int { return []int{0, 1} }

func (o *Oblique) Apply(row []float64) int {
	var x, y float64
	for _, a := range o.xs {
		x += row[a]
	}
	x /= float64(len(o.xs))
	for _, a := range o.ys {
		y += row[a]
	}
	y /= float64(len(o.ys))
	if y <= o.m*x+o.b {
		return 1
	}
	return 0
}

func (o *Oblique) String() string {
	return fmt.Sprintf("oblique(xs=%v, ys=%v, m=%f, b=%f)", o.xs, o.ys, o.m, o.b)
}

// AddContinuous appends numThresholds evenly-spaced Threshold splits over
// attributes. The thresholds are (i+0.5)*jump for jump = (high-low)/n; as in
// the reference implementation, low only sets the jump size and is not
// itself added back into the threshold.
func AddContinuous(class []Fn, attributes []int, low, high float64, numThresholds int) []Fn {
	jump := (high - low) / float64(numThresholds)
	for i := 0; i < numThresholds; i++ {
		class = append(class, NewThreshold(attributes, (float64(i)+0.5)*jump))
	}
	return class
}
