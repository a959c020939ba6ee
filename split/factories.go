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

// ImageBlockSplittingClass builds one candidate pool per blockWidth x
// blockHeight block of a width x height image, each block carrying
// numThresholds evenly spaced pixel-intensity thresholds over [0, 255].
// Pixel (row, col) is read from attribute col*height+row.
func ImageBlockSplittingClass(width, height, blockWidth, blockHeight, numThresholds int) []Fn {
	if width%blockWidth != 0 || height%blockHeight != 0 {
		panic("split: image dimensions must be divisible by block dimensions")
	}
	var class []Fn
	for blockRow := 0; blockRow < height/blockHeight; blockRow++ {
		for blockCol := 0; blockCol < width/blockWidth; blockCol++ {
			var attributes []int
			for innerRow := 0; innerRow < blockHeight; innerRow++ {
				for innerCol := 0; innerCol < blockWidth; innerCol++ {
					row := blockRow*blockHeight + innerRow
					col := blockCol*blockWidth + innerCol
					attributes = append(attributes, col*height+row)
				}
			}
			class = AddContinuous(class, attributes, 0.0, 255.0, numThresholds)
		}
	}
	return class
}

// AdultSplittingClass builds the candidate pool for the preprocessed UCI
// Adult dataset: 6 continuous columns (age, fnlwgt, education-num,
// capital-gain, capital-loss, hours-per-week) followed by one-hot encoded
// categorical columns 6..107.
func AdultSplittingClass(numThresholds int) []Fn {
	var class []Fn
	class = AddContinuous(class, []int{0}, 18, 80, numThresholds)
	class = AddContinuous(class, []int{1}, 0, 800000, numThresholds)
	class = AddContinuous(class, []int{2}, 1, 16, numThresholds)
	class = AddContinuous(class, []int{3}, 0, 20000, numThresholds)
	class = AddContinuous(class, []int{4}, 0, 25000, numThresholds)
	class = AddContinuous(class, []int{5}, 0, 100, numThresholds)
	for i := 6; i < 108; i++ {
		class = append(class, NewThreshold([]int{i}, 0.5))
	}
	return class
}

// NurserySplittingClass builds the candidate pool for the 27 one-hot encoded
// columns of the UCI Nursery dataset.
func NurserySplittingClass() []Fn {
	var class []Fn
	for i := 0; i < 27; i++ {
		class = append(class, NewThreshold([]int{i}, 0.5))
	}
	return class
}

// BankSplittingClass builds the candidate pool for the UCI Bank Marketing
// dataset: 7 continuous columns (age, balance, day, duration, campaign,
// pdays, previous) followed by one-hot encoded categorical columns 7..50.
func BankSplittingClass() []Fn {
	var class []Fn
	class = AddContinuous(class, []int{0}, 18, 95, 10)
	class = AddContinuous(class, []int{1}, -8019, 102127, 10)
	class = AddContinuous(class, []int{2}, 1, 31, 10)
	class = AddContinuous(class, []int{3}, 0, 4918, 10)
	class = AddContinuous(class, []int{4}, 1, 63, 10)
	class = AddContinuous(class, []int{5}, 0, 871, 10)
	class = append(class, NewThreshold([]int{5}, -0.5))
	class = AddContinuous(class, []int{6}, 0, 275, 10)
	for i := 7; i < 51; i++ {
		class = append(class, NewThreshold([]int{i}, 0.5))
	}
	return class
}

// CreditcardSplittingClass builds the candidate pool for the UCI Default of
// Credit Card Clients dataset's 23 continuous/ordinal columns.
func CreditcardSplittingClass() []Fn {
	var class []Fn
	class = AddContinuous(class, []int{0}, 10000, 1000000, 10)
	class = AddContinuous(class, []int{1}, 1, 2, 1)
	class = AddContinuous(class, []int{2}, 0, 6, 6)
	class = AddContinuous(class, []int{3}, 0, 3, 3)
	class = AddContinuous(class, []int{4}, 21, 79, 10)
	class = AddContinuous(class, []int{5}, -2, 8, 10)
	class = AddContinuous(class, []int{6}, -2, 8, 10)
	class = AddContinuous(class, []int{7}, -2, 8, 10)
	class = AddContinuous(class, []int{8}, -2, 8, 10)
	class = AddContinuous(class, []int{9}, -2, 8, 10)
	class = AddContinuous(class, []int{10}, -2, 8, 10)
	class = AddContinuous(class, []int{11}, -165580, 964511, 10)
	class = AddContinuous(class, []int{12}, -69777, 983931, 10)
	class = AddContinuous(class, []int{13}, -157264, 1664089, 10)
	class = AddContinuous(class, []int{14}, -170000, 891586, 10)
	class = AddContinuous(class, []int{15}, -81334, 927171, 10)
	class = AddContinuous(class, []int{16}, -339603, 961664, 10)
	class = AddContinuous(class, []int{17}, 0, 873552, 10)
	class = AddContinuous(class, []int{18}, 0, 1684259, 10)
	class = AddContinuous(class, []int{19}, 0, 896040, 10)
	class = AddContinuous(class, []int{20}, 0, 621000, 10)
	class = AddContinuous(class, []int{21}, 0, 426529, 10)
	class = AddContinuous(class, []int{22}, 0, 528666, 10)
	return class
}

// SkinSplittingClass builds the candidate pool for the UCI Skin Segmentation
// dataset's 3 RGB-channel columns, each with numThresh thresholds over
// [0, 255].
func SkinSplittingClass(numThresh int) []Fn {
	var class []Fn
	class = AddContinuous(class, []int{0}, 0, 255, numThresh)
	class = AddContinuous(class, []int{1}, 0, 255, numThresh)
	class = AddContinuous(class, []int{2}, 0, 255, numThresh)
	return class
}

// KDDCupSplittingClass builds the candidate pool for the KDD Cup 1999
// network intrusion dataset's 34 continuous columns followed by one-hot
// encoded categorical columns 34..120.
func KDDCupSplittingClass() []Fn {
	var class []Fn
	class = AddContinuous(class, []int{0}, 0, 58329, 10)
	class = AddContinuous(class, []int{1}, 0, 693375640, 10)
	class = AddContinuous(class, []int{2}, 0, 5155468, 10)
	class = AddContinuous(class, []int{3}, 0, 3, 10)
	class = AddContinuous(class, []int{4}, 0, 3, 10)
	class = AddContinuous(class, []int{5}, 0, 30, 10)
	class = AddContinuous(class, []int{6}, 0, 5, 10)
	class = AddContinuous(class, []int{7}, 0, 884, 10)
	class = AddContinuous(class, []int{8}, 0, 1, 10)
	class = AddContinuous(class, []int{9}, 0, 2, 10)
	class = AddContinuous(class, []int{10}, 0, 993, 10)
	class = AddContinuous(class, []int{11}, 0, 28, 10)
	class = AddContinuous(class, []int{12}, 0, 2, 10)
	class = AddContinuous(class, []int{13}, 0, 8, 10)
	class = AddContinuous(class, []int{14}, 0, 0, 10)
	class = AddContinuous(class, []int{15}, 0, 511, 10)
	class = AddContinuous(class, []int{16}, 0, 511, 10)
	class = AddContinuous(class, []int{17}, 0.0, 1.0, 10)
	class = AddContinuous(class, []int{18}, 0.0, 1.0, 10)
	class = AddContinuous(class, []int{19}, 0.0, 1.0, 10)
	class = AddContinuous(class, []int{20}, 0.0, 1.0, 10)
	class = AddContinuous(class, []int{21}, 0.0, 1.0, 10)
	class = AddContinuous(class, []int{22}, 0.0, 1.0, 10)
	class = AddContinuous(class, []int{23}, 0.0, 1.0, 10)
	class = AddContinuous(class, []int{24}, 0, 255, 10)
	class = AddContinuous(class, []int{25}, 0, 255, 10)
	class = AddContinuous(class, []int{26}, 0.0, 1.0, 10)
	class = AddContinuous(class, []int{27}, 0.0, 1.0, 10)
	class = AddContinuous(class, []int{28}, 0.0, 1.0, 10)
	class = AddContinuous(class, []int{29}, 0.0, 1.0, 10)
	class = AddContinuous(class, []int{30}, 0.0, 1.0, 10)
	class = AddContinuous(class, []int{31}, 0.0, 1.0, 10)
	class = AddContinuous(class, []int{32}, 0.0, 1.0, 10)
	class = AddContinuous(class, []int{33}, 0.0, 1.0, 10)
	for i := 34; i < 121; i++ {
		class = append(class, NewThreshold([]int{i}, 0.5))
	}
	return class
}

// CTRSplittingClass builds the candidate pool for the Avazu Click-Through
// Rate dataset's 11 continuous/ordinal columns followed by one-hot encoded
// categorical columns 11..63.
func CTRSplittingClass() []Fn {
	var class []Fn
	class = AddContinuous(class, []int{0}, 14102100, 14103023, 10) // hour
	class = AddContinuous(class, []int{1}, 0, 7, 7)                // banner_pos
	class = AddContinuous(class, []int{2}, 1001, 1012, 7)          // C1
	class = AddContinuous(class, []int{3}, 375, 24052, 100)        // C14
	class = AddContinuous(class, []int{4}, 120, 1024, 4)           // C15
	class = AddContinuous(class, []int{5}, 20, 1024, 4)            // C16
	class = AddContinuous(class, []int{6}, 112, 2758, 40)          // C17
	class = AddContinuous(class, []int{7}, 0, 3, 3)                // C18
	class = AddContinuous(class, []int{8}, 33, 1839, 10)           // C19
	class = AddContinuous(class, []int{9}, 100000, 100248, 15)     // C20
	class = AddContinuous(class, []int{10}, 1, 255, 10)            // C21
	for i := 11; i < 64; i++ {
		class = append(class, NewThreshold([]int{i}, 0.5))
	}
	return class
}
