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
	"testing"

	"github.com/kaiwenw/DPDDT/split"
)

// classify walks tree from its root applying each node's split function
// until it reaches a leaf, and returns the leaf's label.
func classify(tree *Tree, row []float64) int {
	node := tree.Nodes[tree.Root]
	for !node.IsLeaf {
		branch := node.SplitFn.Apply(row)
		childID, ok := node.Children[branch]
		if !ok {
			return node.Label
		}
		node = tree.Nodes[childID]
	}
	return node.Label
}

func s1Fixture() ([][]float64, []int) {
	return [][]float64{{0}, {1}, {2}, {3}}, []int{0, 0, 1, 1}
}

// S1: singleMachine, entropy, maxDepth=2, maxNumNodes=3, noise off.
func TestScenarioS1(t *testing.T) {
	rows, labels := s1Fixture()
	class := []split.Fn{split.NewThreshold([]int{0}, 1.5)}
	cfg, err := NewConfig(0, 3, 2, 0, "uniform", "singleMachine")
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	result, err := Train(Options{Config: cfg, Impurity: "entropy", NumLabels: 2, Seed: 7, Alpha: -1},
		[]Shard{{Rows: rows, Labels: labels}}, class)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if result.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", result.MaxDepth)
	}
	for i, row := range rows {
		if got := classify(result.Tree, row); got != labels[i] {
			t.Errorf("classify(%v) = %d, want %d", row, got, labels[i])
		}
	}
}

// S2: same data split across two entities under distributedBaseline, noise off; same result as S1.
func TestScenarioS2(t *testing.T) {
	class := []split.Fn{split.NewThreshold([]int{0}, 1.5)}
	cfg, err := NewConfig(0, 3, 2, 0, "uniform", "distributedBaseline")
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	shards := []Shard{
		{Rows: [][]float64{{0}, {1}}, Labels: []int{0, 0}},
		{Rows: [][]float64{{2}, {3}}, Labels: []int{1, 1}},
	}
	result, err := Train(Options{Config: cfg, Impurity: "entropy", NumLabels: 2, Seed: 7, Alpha: -1}, shards, class)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if result.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", result.MaxDepth)
	}
	allRows := [][]float64{{0}, {1}, {2}, {3}}
	wantLabels := []int{0, 0, 1, 1}
	for i, row := range allRows {
		if got := classify(result.Tree, row); got != wantLabels[i] {
			t.Errorf("classify(%v) = %d, want %d", row, got, wantLabels[i])
		}
	}
}

// S3: same as S1 with a real privacy budget; re-running with the same seed
// must reproduce a bitwise-identical tree.
func TestScenarioS3Reproducible(t *testing.T) {
	rows, labels := s1Fixture()
	class := []split.Fn{split.NewThreshold([]int{0}, 1.5)}
	runOnce := func() *Tree {
		cfg, err := NewConfig(0.5, 3, 2, 0, "uniform", "singleMachine")
		if err != nil {
			t.Fatalf("NewConfig: %v", err)
		}
		result, err := Train(Options{Config: cfg, Impurity: "entropy", NumLabels: 2, Seed: 7, Alpha: 64},
			[]Shard{{Rows: rows, Labels: labels}}, class)
		if err != nil {
			t.Fatalf("Train: %v", err)
		}
		return result.Tree
	}
	a, b := runOnce(), runOnce()
	if a.NodeCount != b.NodeCount || a.MaxDepth != b.MaxDepth {
		t.Fatalf("reruns diverged: (%d,%d) vs (%d,%d)", a.NodeCount, a.MaxDepth, b.NodeCount, b.MaxDepth)
	}
	for i := range a.Nodes {
		na, nb := a.Nodes[i], b.Nodes[i]
		if na.IsLeaf != nb.IsLeaf || na.Label != nb.Label || na.Depth != nb.Depth {
			t.Fatalf("node %d diverged across reruns: %+v vs %+v", i, na, nb)
		}
	}
}

// S5: all rows share one label; the root is labeled without expansion.
func TestScenarioS5SingleLabelStaysLeaf(t *testing.T) {
	rows := [][]float64{{0}, {1}, {2}, {3}}
	labels := []int{1, 1, 1, 1}
	class := []split.Fn{split.NewThreshold([]int{0}, 1.5)}
	cfg, err := NewConfig(0, 5, 3, 0, "uniform", "singleMachine")
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	result, err := Train(Options{Config: cfg, Impurity: "entropy", NumLabels: 2, Seed: 1, Alpha: -1},
		[]Shard{{Rows: rows, Labels: labels}}, class)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if result.NodeCount != 1 {
		t.Errorf("NodeCount = %d, want 1 (single leaf)", result.NodeCount)
	}
	if result.Tree.Nodes[result.Tree.Root].Label != 1 {
		t.Errorf("root label = %d, want 1", result.Tree.Nodes[result.Tree.Root].Label)
	}
}

// S6: maxNumNodes=1 returns a single leaf labeled by majority class.
func TestScenarioS6MaxNumNodesOne(t *testing.T) {
	rows := [][]float64{{0}, {1}, {2}, {3}}
	labels := []int{0, 0, 1, 1}
	class := []split.Fn{split.NewThreshold([]int{0}, 1.5)}
	cfg, err := NewConfig(0, 1, 3, 0, "uniform", "singleMachine")
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	result, err := Train(Options{Config: cfg, Impurity: "entropy", NumLabels: 2, Seed: 1, Alpha: -1},
		[]Shard{{Rows: rows, Labels: labels}}, class)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if result.NodeCount != 1 {
		t.Errorf("NodeCount = %d, want 1", result.NodeCount)
	}
}

func TestLeafBudgetShapes(t *testing.T) {
	uniformCfg, _ := NewConfig(0, 10, 5, 0, "uniform", "singleMachine")
	c := NewCoordinator(uniformCfg, nil, nil, nil, 0)
	for d := 1; d < 5; d++ {
		if got := c.leafBudget(d); got != 1.0/10 {
			t.Errorf("uniform leafBudget(%d) = %v, want %v", d, got, 1.0/10)
		}
	}

	decayCfg, _ := NewConfig(0, 10, 5, 0, "decay", "singleMachine")
	c = NewCoordinator(decayCfg, nil, nil, nil, 0)
	prev := c.leafBudget(1)
	for d := 2; d < 5; d++ {
		cur := c.leafBudget(d)
		if cur >= prev {
			t.Errorf("decay leafBudget(%d)=%v not strictly less than leafBudget(%d)=%v", d, cur, d-1, prev)
		}
		prev = cur
	}

	harmonicCfg, _ := NewConfig(0, 10, 5, 0, "harmonic", "singleMachine")
	c = NewCoordinator(harmonicCfg, nil, nil, nil, 0)
	prev = c.leafBudget(1)
	for d := 2; d < 5; d++ {
		cur := c.leafBudget(d)
		if cur < prev {
			t.Errorf("harmonic leafBudget(%d)=%v is less than leafBudget(%d)=%v, want non-decreasing", d, cur, d-1, prev)
		}
		prev = cur
	}
}

func TestArgMaxTieSmallestLabel(t *testing.T) {
	for _, tc := range []struct {
		desc   string
		counts map[int]float64
		want   int
	}{
		{"clear winner", map[int]float64{0: 1, 1: 5}, 1},
		{"tie picks smallest label", map[int]float64{3: 5, 1: 5, 2: 5}, 1},
		{"empty counts", map[int]float64{}, UnlabeledLabel},
	} {
		if got := argMaxTieSmallestLabel(tc.counts); got != tc.want {
			t.Errorf("%s: argMaxTieSmallestLabel(%v) = %d, want %d", tc.desc, tc.counts, got, tc.want)
		}
	}
}
