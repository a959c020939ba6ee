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

func TestFactorySizes(t *testing.T) {
	for _, tc := range []struct {
		name string
		got  []Fn
		want int
	}{
		{"Adult", AdultSplittingClass(10), 6*10 + 102},
		{"Nursery", NurserySplittingClass(), 27},
		{"Bank", BankSplittingClass(), 6*10 + 1 + 10 + 44},
		{"Creditcard", CreditcardSplittingClass(), 10 + 1 + 6 + 3 + 10*19},
		{"Skin", SkinSplittingClass(16), 3 * 16},
		{"KDDCup", KDDCupSplittingClass(), 34*10 + 87},
		{"CTR", CTRSplittingClass(), 10 + 7 + 7 + 100 + 4 + 4 + 40 + 3 + 10 + 15 + 10 + 53},
		{"ImageBlock", ImageBlockSplittingClass(4, 4, 2, 2, 5), 4 * 5},
	} {
		if len(tc.got) != tc.want {
			t.Errorf("%s splitting class has %d entries, want %d", tc.name, len(tc.got), tc.want)
		}
	}
}

func TestImageBlockRequiresDivisibility(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("ImageBlockSplittingClass with indivisible dimensions did not panic")
		}
	}()
	ImageBlockSplittingClass(5, 4, 2, 2, 3)
}
