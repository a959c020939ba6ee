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

package dptree

import (
	"github.com/google/uuid"

	"github.com/kaiwenw/DPDDT/checks"
	"github.com/kaiwenw/DPDDT/criterion"
	"github.com/kaiwenw/DPDDT/split"
)

// Shard is one entity's disjoint row partition.
type Shard struct {
	Rows   [][]float64
	Labels []int
}

// Options bundles everything one training run needs beyond the shards
// themselves.
type Options struct {
	*Config
	// Impurity selects the splitting criterion; one of entropy, gini.
	Impurity string
	// NumLabels is the label cardinality L.
	NumLabels int
	// Seed is combined with each entity's index to seed its RNG.
	Seed int64
	// Alpha is the total privacy budget; -1 disables noise.
	Alpha float64
	// Recorder observes per-query privacy spend; nil uses NopRecorder.
	Recorder Recorder
}

// Result is the outcome of one training run.
type Result struct {
	RunID     string
	Tree      *Tree
	NodeCount int
	MaxDepth  int
}

// Train builds entities from shards, grows a tree under opts, and returns
// the result tagged with a fresh run id.
func Train(opts Options, shards []Shard, splittingClass []split.Fn) (*Result, error) {
	if err := checks.CheckImpurity(opts.Impurity); err != nil {
		return nil, err
	}
	if err := checks.CheckPrivacyBudget(opts.Alpha); err != nil {
		return nil, err
	}

	crit := criterion.ByName(opts.Impurity, opts.NumLabels)

	entities := make([]*Entity, len(shards))
	numDataPoints := 0
	for i, shard := range shards {
		entities[i] = NewEntity(i, opts.Seed, opts.Alpha == -1, shard.Rows, shard.Labels, splittingClass, crit, opts.Recorder)
		numDataPoints += len(shard.Rows)
	}

	coordinator := NewCoordinator(opts.Config, entities, splittingClass, crit, numDataPoints)
	tree, err := coordinator.Train(opts.Alpha)
	if err != nil {
		return nil, err
	}

	return &Result{
		RunID:     uuid.NewString(),
		Tree:      tree,
		NodeCount: tree.NodeCount,
		MaxDepth:  tree.MaxDepth,
	}, nil
}
