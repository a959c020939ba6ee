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

// Package criterion defines the impurity functions G used to score
// candidate splits, and the sensitivity of G under the RNM mechanism.
package criterion

import "math"

// Criterion scores a label distribution's impurity and bounds how much a
// single row can move a conditional-impurity estimate over m rows, assuming
// boolean splits.
type Criterion interface {
	// G returns the impurity of a label-count distribution, normalized to
	// [0, 1].
	G(counts map[int]float64) float64
	// Sensitivity bounds the L1 sensitivity of the conditional-impurity sum
	// over m total rows, for use as a Laplace scale numerator.
	Sensitivity(m int) float64
}

// Entropy is normalized Shannon entropy, log-based in numLabels so that G is
// always in [0, 1].
type Entropy struct {
	NumLabels int
}

func (e Entropy) G(counts map[int]float64) float64 {
	var total float64
	for _, c := range counts {
		total += c
	}
	var result float64
	for _, c := range counts {
		p := c / total
		result -= p * math.Log(p) / math.Log(float64(e.NumLabels))
	}
	return result
}

func (e Entropy) Sensitivity(m int) float64 {
	const numSplitLabels = 2.0
	md := float64(m)
	return numSplitLabels/md + float64(e.NumLabels)*math.Log(md)/md*(numSplitLabels+1)
}

// Gini is the Gini impurity 1 - sum(p^2).
type Gini struct {
	NumLabels int
}

func (g Gini) G(counts map[int]float64) float64 {
	var total float64
	for _, c := range counts {
		total += c
	}
	result := 1.0
	for _, c := range counts {
		p := c / total
		result -= p * p
	}
	return result
}

func (g Gini) Sensitivity(m int) float64 {
	md := float64(m)
	return 1 - math.Pow(md/(md+1), 2) - math.Pow(1/(md+1), 2)
}

// GInt is a convenience wrapper for callers holding integer counts.
func GInt(c Criterion, counts map[int]int) float64 {
	floatCounts := make(map[int]float64, len(counts))
	for label, count := range counts {
		floatCounts[label] = float64(count)
	}
	return c.G(floatCounts)
}

// ByName returns the named criterion, for numLabels possible labels. name
// must already be validated by checks.CheckImpurity.
func ByName(name string, numLabels int) Criterion {
	switch name {
	case "entropy":
		return Entropy{NumLabels: numLabels}
	case "gini":
		return Gini{NumLabels: numLabels}
	default:
		panic("criterion: unrecognized name " + name)
	}
}
