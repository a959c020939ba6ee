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
	"math"

	log "github.com/golang/glog"

	"github.com/kaiwenw/DPDDT/checks"
	"github.com/kaiwenw/DPDDT/criterion"
	"github.com/kaiwenw/DPDDT/noise"
	"github.com/kaiwenw/DPDDT/split"
)

// entityNode is a mirror tree node: it tracks the row indices currently
// routed to it. Row-index slices are moved between nodes, never copied.
type entityNode struct {
	idxs     []int
	isLeaf   bool
	children map[int]int
}

// Entity holds one data-holding party's shard and mirror tree, and answers
// the coordinator's noised count queries.
type Entity struct {
	index        int
	privacy      noise.Source
	rows         [][]float64
	labels       []int
	splitting    []split.Fn
	crit         criterion.Criterion
	nodes        []*entityNode
	recorder     Recorder
}

// NewEntity constructs an entity over rows/labels, seeded deterministically
// from index and seed (see noise.New). disableNoise selects the reference
// mode used to validate the non-private algorithm (α = -1).
func NewEntity(index int, seed int64, disableNoise bool, rows [][]float64, labels []int, splitting []split.Fn, crit criterion.Criterion, recorder Recorder) *Entity {
	if len(rows) != len(labels) {
		log.Fatalf("dptree.NewEntity: %d rows but %d labels", len(rows), len(labels))
	}
	root := &entityNode{isLeaf: true}
	root.idxs = make([]int, len(rows))
	for i := range rows {
		root.idxs[i] = i
	}
	var src noise.Source
	if disableNoise {
		src = noise.Disabled()
	} else {
		src = noise.New(index, seed)
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &Entity{
		index:     index,
		privacy:   src,
		rows:      rows,
		labels:    labels,
		splitting: splitting,
		crit:      crit,
		nodes:     []*entityNode{root},
		recorder:  recorder,
	}
}

func (e *Entity) shardSize() float64 { return float64(len(e.rows)) }

// clipCount bounds a noised count-like result to [1, shardSize].
func (e *Entity) clipCount(c float64) float64 {
	if c < 1.0 {
		return 1.0
	}
	if c > e.shardSize() {
		return e.shardSize()
	}
	return c
}

// clipTotal bounds a noised total to [0, shardSize].
func (e *Entity) clipTotal(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > e.shardSize() {
		return e.shardSize()
	}
	return c
}

func (e *Entity) checkEps(eps float64) {
	if err := checks.CheckEpsilonStrict(eps); err != nil {
		log.Fatalf("dptree.Entity: invalid per-query epsilon: %v", err)
	}
}

// SplitLeaf partitions nodeID's rows across one child per branch label of
// fn. nodeID must currently be a mirror leaf.
func (e *Entity) SplitLeaf(nodeID int, fn split.Fn) {
	node := e.nodes[nodeID]
	if !node.isLeaf {
		log.Fatalf("dptree.Entity.SplitLeaf: node %d is not a leaf", nodeID)
	}
	node.children = map[int]int{}
	childOf := map[int]*entityNode{}
	for _, label := range fn.Labels() {
		child := &entityNode{isLeaf: true}
		childID := len(e.nodes)
		e.nodes = append(e.nodes, child)
		node.children[label] = childID
		childOf[label] = child
	}
	for _, idx := range node.idxs {
		label := fn.Apply(e.rows[idx])
		child, ok := childOf[label]
		if !ok {
			log.Fatalf("dptree.Entity.SplitLeaf: split %d produced unrouted branch label %d", fn.ID(), label)
		}
		child.idxs = append(child.idxs, idx)
	}
	node.idxs = nil
	node.isLeaf = false
}

// splitCounts returns the true (unnoised) per-branch row count at nodeID
// under fn.
func (e *Entity) splitCounts(nodeID int, fn split.Fn) map[int]int {
	counts := map[int]int{}
	for _, idx := range e.nodes[nodeID].idxs {
		counts[fn.Apply(e.rows[idx])]++
	}
	return counts
}

// splitLabelCounts returns the true (unnoised) per-(branch,label) row count
// at nodeID under fn.
func (e *Entity) splitLabelCounts(nodeID int, fn split.Fn) map[int]map[int]int {
	result := map[int]map[int]int{}
	for _, idx := range e.nodes[nodeID].idxs {
		branch := fn.Apply(e.rows[idx])
		if result[branch] == nil {
			result[branch] = map[int]int{}
		}
		result[branch][e.labels[idx]]++
	}
	return result
}

// labelCounts returns the true (unnoised) label histogram at nodeID.
func (e *Entity) labelCounts(nodeID int) map[int]int {
	counts := map[int]int{}
	for _, idx := range e.nodes[nodeID].idxs {
		counts[e.labels[idx]]++
	}
	return counts
}

// GetSplitCounts noises and clips the per-branch row count at nodeID under
// fn, spending eps of privacy budget per branch.
func (e *Entity) GetSplitCounts(nodeID int, fn split.Fn, eps float64) map[int]float64 {
	e.checkEps(eps)
	result := map[int]float64{}
	for branch, c := range e.splitCounts(nodeID, fn) {
		noised := float64(c) + e.privacy.Laplace(1.0/eps)
		e.recorder.ObserveQuery(eps)
		result[branch] = e.clipCount(noised)
	}
	return result
}

// GetSplitLabelCounts noises and clips the per-(branch,label) row count at
// nodeID under fn, spending eps of privacy budget per cell.
func (e *Entity) GetSplitLabelCounts(nodeID int, fn split.Fn, eps float64) map[int]map[int]float64 {
	e.checkEps(eps)
	result := map[int]map[int]float64{}
	for branch, labelCounts := range e.splitLabelCounts(nodeID, fn) {
		result[branch] = map[int]float64{}
		for label, c := range labelCounts {
			noised := float64(c) + e.privacy.Laplace(1.0/eps)
			e.recorder.ObserveQuery(eps)
			result[branch][label] = e.clipCount(noised)
		}
	}
	return result
}

// GetLabelCounts noises and clips the label histogram at nodeID, spending
// eps of privacy budget per label.
func (e *Entity) GetLabelCounts(nodeID int, eps float64) map[int]float64 {
	e.checkEps(eps)
	result := map[int]float64{}
	for label, c := range e.labelCounts(nodeID) {
		noised := float64(c) + e.privacy.Laplace(1.0/eps)
		e.recorder.ObserveQuery(eps)
		result[label] = e.clipCount(noised)
	}
	return result
}

// GetTotalCount noises and clips the row count at nodeID to [0, shardSize].
func (e *Entity) GetTotalCount(nodeID int, eps float64) float64 {
	e.checkEps(eps)
	noised := float64(len(e.nodes[nodeID].idxs)) + e.privacy.Laplace(1.0/eps)
	e.recorder.ObserveQuery(eps)
	return e.clipTotal(noised)
}

// LocalRNM runs report-noisy-max over this entity's own candidate pool and
// true counts, with no cross-entity aggregation. Returns (nil, NaN) if the
// node holds no rows.
func (e *Entity) LocalRNM(nodeID int, eps float64) (split.Fn, float64) {
	e.checkEps(eps)
	node := e.nodes[nodeID]
	if len(node.idxs) == 0 {
		return nil, math.NaN()
	}

	origG := criterion.GInt(e.crit, e.labelCounts(nodeID))
	total := len(node.idxs)

	var best split.Fn
	minCondG := math.Inf(1)
	for _, candidate := range e.splitting {
		labelCounts := e.splitLabelCounts(nodeID, candidate)
		branchCounts := e.splitCounts(nodeID, candidate)
		var condG float64
		for branch, counts := range labelCounts {
			bc, ok := branchCounts[branch]
			if !ok {
				log.Fatalf("dptree.Entity.LocalRNM: branch %d missing from splitCounts for split %d", branch, candidate.ID())
			}
			condG += float64(bc) / float64(total) * criterion.GInt(e.crit, counts)
		}
		sensitivity := e.crit.Sensitivity(total)
		condG += e.privacy.Laplace(sensitivity / eps)
		e.recorder.ObserveQuery(eps)
		if condG < 0 {
			condG = 0
		}
		if condG < minCondG {
			minCondG = condG
			best = candidate
		}
	}
	return best, origG - minCondG
}
