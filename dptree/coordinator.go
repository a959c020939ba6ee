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
	"container/heap"
	"math"

	log "github.com/golang/glog"

	"github.com/kaiwenw/DPDDT/checks"
	"github.com/kaiwenw/DPDDT/criterion"
	"github.com/kaiwenw/DPDDT/split"
)

// lowSignalThreshold is the minimum information gain a split must report to
// be worth expanding; below it a child is labeled but not expanded.
const lowSignalThreshold = 1e-2

// noiseOffBudget stands in for the structure and labeling budgets, and for
// each child's total-count and scoring budgets, when noise is disabled
// (Alpha == -1); per-query epsilons are then derived from it as usual. None
// of these values reaches a real Laplace draw — noise.Disabled ignores its
// scale argument — they exist only so per-query epsilon validation still
// sees a finite, strictly positive number.
const noiseOffBudget = 1.0

// Config holds the coordinator's tree-shape and budget-allocation
// parameters. Build one with NewConfig, which validates every field.
type Config struct {
	LeafPrivacyFraction float64
	MaxNumNodes         int
	MaxDepth            int
	PruningEpsilon      float64
	BudgetFn            string
	Algo                string
}

// NewConfig validates and returns a Config. It returns an error for any
// malformed configuration (spec.md §7: configuration errors fail fast at
// setup and never enter training).
func NewConfig(leafPrivacyFraction float64, maxNumNodes, maxDepth int, pruningEpsilon float64, budgetFn, algo string) (*Config, error) {
	if err := checks.CheckLeafPrivacyFraction(leafPrivacyFraction); err != nil {
		return nil, err
	}
	if err := checks.CheckMaxNumNodes(maxNumNodes); err != nil {
		return nil, err
	}
	if err := checks.CheckMaxDepth(maxDepth); err != nil {
		return nil, err
	}
	if err := checks.CheckPruningEpsilon(pruningEpsilon); err != nil {
		return nil, err
	}
	if err := checks.CheckBudgetFn(budgetFn); err != nil {
		return nil, err
	}
	if err := checks.CheckAlgo(algo); err != nil {
		return nil, err
	}
	return &Config{
		LeafPrivacyFraction: leafPrivacyFraction,
		MaxNumNodes:         maxNumNodes,
		MaxDepth:            maxDepth,
		PruningEpsilon:      pruningEpsilon,
		BudgetFn:            budgetFn,
		Algo:                algo,
	}, nil
}

// Coordinator grows the master tree under cfg's budget, querying entities
// for noised counts and committing the best-scoring split at each step.
type Coordinator struct {
	cfg            *Config
	entities       []*Entity
	splittingClass []split.Fn
	crit           criterion.Criterion
	numDataPoints  int
}

// NewCoordinator returns a Coordinator over entities sharing splittingClass
// and crit, training against numDataPoints total rows.
func NewCoordinator(cfg *Config, entities []*Entity, splittingClass []split.Fn, crit criterion.Criterion, numDataPoints int) *Coordinator {
	return &Coordinator{cfg: cfg, entities: entities, splittingClass: splittingClass, crit: crit, numDataPoints: numDataPoints}
}

// leafBudget returns the normalized share of the structure budget assigned
// to a node at depth (root depth = 1).
func (c *Coordinator) leafBudget(depth int) float64 {
	switch c.cfg.BudgetFn {
	case "uniform":
		return 1.0 / float64(c.cfg.MaxNumNodes)
	case "decay":
		return 1.0 / math.Pow(2, float64(depth))
	case "harmonic":
		var multiplier float64
		for i := 1; i <= depth; i++ {
			multiplier += 1.0 / float64(c.cfg.MaxDepth-i+1)
		}
		return multiplier / float64(c.cfg.MaxDepth)
	default:
		log.Fatalf("dptree.Coordinator.leafBudget: invalid budget function %q", c.cfg.BudgetFn)
		return -1
	}
}

// frontierItem is one entry of the best-first expansion queue.
type frontierItem struct {
	priority float64
	leafID   int
	splitFn  split.Fn
}

type frontier []*frontierItem

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].priority > f[j].priority }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(*frontierItem)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// Train grows the tree under a total privacy budget alpha (alpha == -1
// disables noise) and returns the frozen result.
func (c *Coordinator) Train(alpha float64) (*Tree, error) {
	if err := checks.CheckPrivacyBudget(alpha); err != nil {
		return nil, err
	}
	noiseOff := alpha == -1

	splitsAlpha := alpha * (1 - c.cfg.LeafPrivacyFraction)
	leavesLabelingAlpha := alpha * c.cfg.LeafPrivacyFraction
	if noiseOff {
		splitsAlpha = noiseOffBudget
		leavesLabelingAlpha = noiseOffBudget
	}

	var nodes []*Node
	root := newNode(0, 1)
	root.Weight = 1.0
	nodes = append(nodes, root)

	pq := &frontier{}
	heap.Init(pq)

	rootAlpha := splitsAlpha * c.leafBudget(root.Depth)
	splitFnHat, jHat := c.privateSplit(root.ID, float64(c.numDataPoints), rootAlpha)
	// Gate the root exactly like a child (spec.md §8 S5): a dataset with no
	// real signal at the root — e.g. every row sharing one label — must
	// collapse to a single labeled leaf rather than force a split.
	if splitFnHat != nil && !math.IsNaN(jHat) && jHat >= lowSignalThreshold {
		heap.Push(pq, &frontierItem{priority: jHat, leafID: root.ID, splitFn: splitFnHat})
	}

	for len(nodes) < c.cfg.MaxNumNodes && pq.Len() > 0 {
		item := heap.Pop(pq).(*frontierItem)
		bestLeaf := nodes[item.leafID]
		bestLeaf.SplitFn = item.splitFn
		bestLeaf.IsLeaf = false

		for _, e := range c.entities {
			e.SplitLeaf(bestLeaf.ID, bestLeaf.SplitFn)
		}

		for _, label := range bestLeaf.SplitFn.Labels() {
			child := newNode(len(nodes), bestLeaf.Depth+1)
			bestLeaf.Children[label] = child.ID
			nodes = append(nodes, child)

			if child.Depth >= c.cfg.MaxDepth {
				continue
			}

			betaC := c.leafBudget(child.Depth) * splitsAlpha
			var totalEps float64
			if noiseOff {
				totalEps = noiseOffBudget
			} else {
				totalEps = betaC / 3
			}
			total := c.totalCountAcrossEntities(child.ID, totalEps)
			weight := total / float64(c.numDataPoints)
			child.Weight = weight

			if weight <= c.cfg.PruningEpsilon/float64(c.cfg.MaxNumNodes) {
				log.V(1).Infof("dptree.Coordinator.Train: node %d weight %f is at or below the pruning floor; not expanding", child.ID, weight)
				continue
			}

			var scoreEps float64
			if noiseOff {
				scoreEps = noiseOffBudget
			} else {
				scoreEps = 2 * betaC / 3
			}
			fHat, j := c.privateSplit(child.ID, total, scoreEps)
			if fHat == nil || math.IsNaN(j) {
				continue
			}
			if j < lowSignalThreshold {
				log.V(1).Infof("dptree.Coordinator.Train: node %d information gain %f is below %g; not expanding", child.ID, j, lowSignalThreshold)
				continue
			}
			heap.Push(pq, &frontierItem{priority: weight * j, leafID: child.ID, splitFn: fHat})
		}
	}

	maxAchievedDepth := c.labelLeaves(nodes, root, leavesLabelingAlpha)

	return &Tree{Nodes: nodes, Root: root.ID, NodeCount: len(nodes), MaxDepth: maxAchievedDepth}, nil
}

// labelLeaves votes a label at every remaining leaf in breadth-first order,
// and returns the maximum depth reached.
func (c *Coordinator) labelLeaves(nodes []*Node, root *Node, leavesLabelingAlpha float64) int {
	maxAchievedDepth := 1
	queue := []*Node{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if node.Depth > maxAchievedDepth {
			maxAchievedDepth = node.Depth
		}

		if len(node.Children) == 0 {
			counts := c.labelCountsAcrossEntities(node.ID, leavesLabelingAlpha)
			node.Label = argMaxTieSmallestLabel(counts)
		}

		for _, childID := range node.Children {
			queue = append(queue, nodes[childID])
		}
	}
	return maxAchievedDepth
}

// argMaxTieSmallestLabel returns the label with the highest count, breaking
// ties by the smallest label id (spec.md §9).
func argMaxTieSmallestLabel(counts map[int]float64) int {
	best := UnlabeledLabel
	bestCount := math.Inf(-1)
	for label, count := range counts {
		if count > bestCount || (count == bestCount && label < best) {
			bestCount = count
			best = label
		}
	}
	return best
}
