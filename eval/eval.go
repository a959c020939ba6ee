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

// Package eval walks a trained tree to classify rows and report accuracy.
// It is a thin external collaborator: it depends on dptree, never the
// reverse.
package eval

import (
	log "github.com/golang/glog"

	"github.com/kaiwenw/DPDDT/dptree"
)

// Predict descends tree from its root applying each internal node's split
// function, and returns the label of the leaf a row lands on. If a
// continuous-valued row produces a branch label the tree never allocated a
// child for, descent stops at that node and its own label is returned.
func Predict(tree *dptree.Tree, row []float64) int {
	node := tree.Nodes[tree.Root]
	for !node.IsLeaf {
		branch := node.SplitFn.Apply(row)
		childID, ok := node.Children[branch]
		if !ok {
			log.V(1).Infof("eval.Predict: row routes to branch %d at node %d, which has no child; stopping descent", branch, node.ID)
			break
		}
		node = tree.Nodes[childID]
	}
	return node.Label
}

// Traverse visits every node of tree, parent before children, running f at
// each one. It stops and returns f's error, if any.
func Traverse(tree *dptree.Tree, f func(*dptree.Node) error) error {
	return traverse(tree, tree.Nodes[tree.Root], f)
}

func traverse(tree *dptree.Tree, node *dptree.Node, f func(*dptree.Node) error) error {
	if err := f(node); err != nil {
		return err
	}
	for _, childID := range node.Children {
		if err := traverse(tree, tree.Nodes[childID], f); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate classifies every row of rows against labels and returns the
// fraction correctly predicted.
func Evaluate(tree *dptree.Tree, rows [][]float64, labels []int) float64 {
	if len(rows) == 0 {
		return 0.0
	}
	var numCorrect int
	for i, row := range rows {
		if Predict(tree, row) == labels[i] {
			numCorrect++
		}
	}
	return float64(numCorrect) / float64(len(rows))
}
