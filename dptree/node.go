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

// Package dptree implements the coordinator's master tree, the entity query
// engine that mirrors it, and the private-split selector that scores
// candidate splits under a composed Laplace budget.
package dptree

import "github.com/kaiwenw/DPDDT/split"

// UnlabeledLabel marks a leaf that has not yet been voted on.
const UnlabeledLabel = -1

// Node is a coordinator-owned master tree node, addressed by a dense integer
// id shared with every entity's mirror tree.
type Node struct {
	ID     int
	Depth  int
	Weight float64
	IsLeaf bool
	// Label holds the voted class once labeling has run; UnlabeledLabel until then.
	Label int
	// SplitFn is set once this node is committed for expansion.
	SplitFn split.Fn
	// Children maps a branch label to the id of the child routed to it.
	Children map[int]int
}

func newNode(id, depth int) *Node {
	return &Node{ID: id, Depth: depth, IsLeaf: true, Label: UnlabeledLabel, Children: map[int]int{}}
}

// Tree is the frozen result of one training run.
type Tree struct {
	Nodes     []*Node
	Root      int
	NodeCount int
	MaxDepth  int
}
