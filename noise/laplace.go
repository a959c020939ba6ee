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

// Package noise draws the Laplace noise that the entity query engine adds to
// every count it releases.
package noise

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kaiwenw/DPDDT/rand"
)

// Source draws calibrated Laplace noise for a single entity.
//
// A Source is not safe for concurrent use: §5 of the design requires entity
// calls to be issued in a deterministic, single-threaded order precisely
// because draws advance the entity's RNG state.
type Source interface {
	// Laplace returns one draw from Laplace(0, scale). scale must be > 0.
	Laplace(scale float64) float64
}

// entitySource samples Laplace(0, b) as X₁ - X₂ for X₁, X₂ ~ Exponential(1/b),
// matching the reference mechanism in spec.md §4.1.
type entitySource struct {
	rng *rand.Source
}

// New returns a Source seeded deterministically from entityIndex and
// runSeed, per spec.md §4.1 ("RNGs are seeded as entityIndex + runSeed").
func New(entityIndex int, runSeed int64) Source {
	return &entitySource{rng: rand.New(entityIndex, runSeed)}
}

func (s *entitySource) Laplace(scale float64) float64 {
	dist := distuv.Exponential{Rate: 1.0 / scale, Src: s.rng}
	return dist.Rand() - dist.Rand()
}

// disabled is the reference "noise off" mode: every draw is exactly 0. Used
// to validate the non-private algorithm (spec.md §4.1, §8 property 4).
type disabled struct{}

// Disabled returns a Source whose every draw is 0, for validating the
// non-private reference algorithm.
func Disabled() Source {
	return disabled{}
}

func (disabled) Laplace(float64) float64 {
	return 0
}
