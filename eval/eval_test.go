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

package eval

import (
	"testing"

	"github.com/kaiwenw/DPDDT/dptree"
	"github.com/kaiwenw/DPDDT/split"
)

func s1Tree(t *testing.T) *dptree.Tree {
	t.Helper()
	class := []split.Fn{split.NewThreshold([]int{0}, 1.5)}
	cfg, err := dptree.NewConfig(0, 3, 2, 0, "uniform", "singleMachine")
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	rows := [][]float64{{0}, {1}, {2}, {3}}
	labels := []int{0, 0, 1, 1}
	result, err := dptree.Train(dptree.Options{Config: cfg, Impurity: "entropy", NumLabels: 2, Seed: 7, Alpha: -1},
		[]dptree.Shard{{Rows: rows, Labels: labels}}, class)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	return result.Tree
}

func TestPredictMatchesTraining(t *testing.T) {
	tree := s1Tree(t)
	for _, tc := range []struct {
		row       []float64
		wantLabel int
	}{
		{[]float64{0}, 0},
		{[]float64{1}, 0},
		{[]float64{2}, 1},
		{[]float64{3}, 1},
	} {
		if got := Predict(tree, tc.row); got != tc.wantLabel {
			t.Errorf("Predict(%v) = %d, want %d", tc.row, got, tc.wantLabel)
		}
	}
}

func TestEvaluateReportsPerfectAccuracy(t *testing.T) {
	tree := s1Tree(t)
	rows := [][]float64{{0}, {1}, {2}, {3}}
	labels := []int{0, 0, 1, 1}
	if got := Evaluate(tree, rows, labels); got != 1.0 {
		t.Errorf("Evaluate = %v, want 1.0", got)
	}
}

func TestEvaluateReportsImperfectAccuracy(t *testing.T) {
	tree := s1Tree(t)
	rows := [][]float64{{0}, {1}, {2}, {3}}
	labels := []int{1, 0, 1, 1} // row 0 mislabeled relative to training
	if got := Evaluate(tree, rows, labels); got != 0.75 {
		t.Errorf("Evaluate = %v, want 0.75", got)
	}
}

func TestEvaluateEmptyIsZero(t *testing.T) {
	tree := s1Tree(t)
	if got := Evaluate(tree, nil, nil); got != 0.0 {
		t.Errorf("Evaluate on empty set = %v, want 0.0", got)
	}
}

func TestTraverseVisitsEveryNode(t *testing.T) {
	tree := s1Tree(t)
	var visited int
	err := Traverse(tree, func(*dptree.Node) error {
		visited++
		return nil
	})
	if err != nil {
		t.Fatalf("Traverse: %v", err)
	}
	if visited != len(tree.Nodes) {
		t.Errorf("visited %d nodes, want %d", visited, len(tree.Nodes))
	}
}
