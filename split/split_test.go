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

package split

import "testing"

func TestThresholdApply(t *testing.T) {
	s := NewThreshold([]int{0, 1}, 5.0)
	for _, tc := range []struct {
		desc string
		row  []float64
		want int
	}{
		{"mean below threshold routes to 1", []float64{2, 2}, 1},
		{"mean at threshold routes to 1", []float64{5, 5}, 1},
		{"mean above threshold routes to 0", []float64{8, 8}, 0},
	} {
		if got := s.Apply(tc.row); got != tc.want {
			t.Errorf("%s: Apply(%v) = %d, want %d", tc.desc, tc.row, got, tc.want)
		}
	}
}

func TestThresholdLabels(t *testing.T) {
	s := NewThreshold([]int{0}, 1.0)
	want := []int{0, 1}
	got := s.Labels()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Labels() = %v, want %v", got, want)
	}
}

func TestObliqueApply(t *testing.T) {
	// y <= m*x + b, with m=1, b=0: y<=x routes to 1.
	s := NewOblique([]int{0}, []int{1}, 1.0, 0.0)
	for _, tc := range []struct {
		desc string
		row  []float64
		want int
	}{
		{"y below line routes to 1", []float64{5, 2}, 1},
		{"y on line routes to 1", []float64{5, 5}, 1},
		{"y above line routes to 0", []float64{2, 5}, 0},
	} {
		if got := s.Apply(tc.row); got != tc.want {
			t.Errorf("%s: Apply(%v) = %d, want %d", tc.desc, tc.row, got, tc.want)
		}
	}
}

func TestIDsAreUniqueAndMonotonic(t *testing.T) {
	a := NewThreshold([]int{0}, 1.0)
	b := NewThreshold([]int{0}, 2.0)
	if b.ID() <= a.ID() {
		t.Errorf("ID() not monotonic: a=%d, b=%d", a.ID(), b.ID())
	}
}

func TestAddContinuousCount(t *testing.T) {
	var class []Fn
	class = AddContinuous(class, []int{0}, 0, 100, 10)
	if len(class) != 10 {
		t.Fatalf("AddContinuous produced %d splits, want 10", len(class))
	}
	for i, fn := range class {
		th := fn.(*Threshold)
		want := (float64(i) + 0.5) * 10
		if th.threshold != want {
			t.Errorf("threshold %d = %f, want %f", i, th.threshold, want)
		}
	}
}
