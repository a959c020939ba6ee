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

	"github.com/kaiwenw/DPDDT/split"
)

// totalCountAcrossEntities sums each entity's noised total at nodeID.
func (c *Coordinator) totalCountAcrossEntities(nodeID int, eps float64) float64 {
	var total float64
	for _, e := range c.entities {
		total += e.GetTotalCount(nodeID, eps)
	}
	return total
}

// labelCountsAcrossEntities sums each entity's noised label histogram at
// nodeID, element-wise.
func (c *Coordinator) labelCountsAcrossEntities(nodeID int, eps float64) map[int]float64 {
	result := map[int]float64{}
	for _, e := range c.entities {
		for label, count := range e.GetLabelCounts(nodeID, eps) {
			result[label] += count
		}
	}
	return result
}

// splitCountsAcrossEntities sums each entity's noised per-branch count at
// nodeID under fn, element-wise.
func (c *Coordinator) splitCountsAcrossEntities(nodeID int, fn split.Fn, eps float64) map[int]float64 {
	result := map[int]float64{}
	for _, e := range c.entities {
		for branch, count := range e.GetSplitCounts(nodeID, fn, eps) {
			result[branch] += count
		}
	}
	return result
}

// splitLabelCountsAcrossEntities sums each entity's noised per-(branch,label)
// count at nodeID under fn, element-wise.
func (c *Coordinator) splitLabelCountsAcrossEntities(nodeID int, fn split.Fn, eps float64) map[int]map[int]float64 {
	result := map[int]map[int]float64{}
	for _, e := range c.entities {
		for branch, labelCounts := range e.GetSplitLabelCounts(nodeID, fn, eps) {
			if result[branch] == nil {
				result[branch] = map[int]float64{}
			}
			for label, count := range labelCounts {
				result[branch][label] += count
			}
		}
	}
	return result
}

// privateSplit picks a split function for a node holding total rows (noised
// estimate), spending eps of privacy budget, and reports its information
// gain. Returns (nil, NaN) if no candidate qualifies.
func (c *Coordinator) privateSplit(nodeID int, total float64, eps float64) (split.Fn, float64) {
	switch c.cfg.Algo {
	case "singleMachine":
		if len(c.entities) != 1 {
			log.Fatalf("dptree.Coordinator.privateSplit: singleMachine requires exactly one entity, got %d", len(c.entities))
		}
		return c.entities[0].LocalRNM(nodeID, eps)

	case "localRNM":
		var candidates []split.Fn
		for _, e := range c.entities {
			fn, gain := e.LocalRNM(nodeID, eps/2)
			if fn == nil {
				if !math.IsNaN(gain) {
					log.Fatalf("dptree.Coordinator.privateSplit: localRNM returned nil split with non-NaN gain %f", gain)
				}
				continue
			}
			candidates = append(candidates, fn)
		}
		return c.scoreCandidates(nodeID, candidates, total, eps/2)

	case "distributedBaseline":
		return c.scoreCandidates(nodeID, c.splittingClass, total, eps)

	default:
		log.Fatalf("dptree.Coordinator.privateSplit: invalid algo %q", c.cfg.Algo)
		return nil, math.NaN()
	}
}

// scoreCandidates implements the shared RNM-over-aggregated-counts scoring
// pathway used by localRNM and distributedBaseline (spec.md §4.6): 2/3 of
// eps divided among candidates, 1/3 reserved for the parent-impurity query.
func (c *Coordinator) scoreCandidates(nodeID int, candidates []split.Fn, total, eps float64) (split.Fn, float64) {
	if len(candidates) == 0 {
		return nil, math.NaN()
	}

	eachEps := eps / (3 * float64(len(candidates)))
	var best split.Fn
	minCondG := math.Inf(1)
	for _, candidate := range candidates {
		labelCounts := c.splitLabelCountsAcrossEntities(nodeID, candidate, eachEps)
		branchCounts := c.splitCountsAcrossEntities(nodeID, candidate, eachEps)
		var condG float64
		for branch, counts := range labelCounts {
			bc, ok := branchCounts[branch]
			if !ok {
				log.Fatalf("dptree.Coordinator.scoreCandidates: branch %d missing from splitCounts for split %d", branch, candidate.ID())
			}
			condG += bc / total * c.crit.G(counts)
		}
		if math.IsNaN(condG) {
			log.Fatalf("dptree.Coordinator.scoreCandidates: conditional impurity is NaN for split %d", candidate.ID())
		}
		if condG < minCondG {
			minCondG = condG
			best = candidate
		}
	}

	labelCounts := c.labelCountsAcrossEntities(nodeID, eps/3)
	infoGain := c.crit.G(labelCounts) - minCondG
	return best, infoGain
}
