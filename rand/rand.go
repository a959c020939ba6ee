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

// Package rand provides the per-entity random source consumed by the noise
// package.
//
// Unlike a general purpose differential-privacy library, this trainer must
// reproduce a training run bit-for-bit given the same seed (see the
// noise-off determinism property in spec.md §8): every entity owns an
// independent, seeded stream instead of drawing from one process-wide
// CSPRNG, so the source here is a small seeded wrapper rather than the
// teacher's crypto/rand-backed buffer.
package rand

import "golang.org/x/exp/rand"

// Source is a seeded, per-entity source of randomness. It implements the Src
// interface expected by golang.org/x/exp/rand (Uint64, Seed), which is in
// turn the Src gonum.org/v1/gonum/stat/distuv distributions sample from, so
// distributions built on top of it sample deterministically for a given
// seed.
type Source struct {
	r *rand.Rand
}

// EntitySeed combines an entity's index with the run's seed, as required by
// spec.md §4.1: "RNGs are seeded as entityIndex + runSeed so results are
// reproducible given the same seed."
func EntitySeed(entityIndex int, runSeed int64) uint64 {
	return uint64(int64(entityIndex) + runSeed)
}

// New returns a Source seeded deterministically from entityIndex and runSeed.
func New(entityIndex int, runSeed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(EntitySeed(entityIndex, runSeed)))}
}

// Uint64 returns a uniformly random uint64. Together with Seed, it
// satisfies golang.org/x/exp/rand.Source, the interface distuv.Exponential's
// Src field requires.
func (s *Source) Uint64() uint64 {
	return s.r.Uint64()
}

// Seed reseeds the underlying generator. Required to satisfy
// golang.org/x/exp/rand.Source; callers of this package should go through
// New rather than calling Seed directly.
func (s *Source) Seed(seed uint64) {
	s.r.Seed(seed)
}

// Sign returns +1.0 or -1.0 with equal probability.
func (s *Source) Sign() float64 {
	if s.r.Uint64()&1 == 0 {
		return 1.0
	}
	return -1.0
}
