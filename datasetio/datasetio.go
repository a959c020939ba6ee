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

// Package datasetio loads and saves the length-prefixed binary dataset
// record described in spec.md §6: a header of numRows, numCols, numLabels
// followed by a packed numRows*numCols float32 array in row-major order and
// a parallel int32 label array.
package datasetio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/rand"
)

// Dataset is an in-memory, fully materialized dataset record.
type Dataset struct {
	Rows      [][]float64
	Labels    []int
	NumLabels int
}

// Save writes ds to w in the spec.md §6 wire format.
func Save(w io.Writer, ds Dataset) error {
	numRows := len(ds.Rows)
	numCols := 0
	if numRows > 0 {
		numCols = len(ds.Rows[0])
	}
	header := [3]int64{int64(numRows), int64(numCols), int64(ds.NumLabels)}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("datasetio.Save: writing header: %w", err)
	}
	for r, row := range ds.Rows {
		if len(row) != numCols {
			return fmt.Errorf("datasetio.Save: row %d has %d columns, want %d", r, len(row), numCols)
		}
		for _, v := range row {
			if err := binary.Write(w, binary.LittleEndian, float32(v)); err != nil {
				return fmt.Errorf("datasetio.Save: writing row %d: %w", r, err)
			}
		}
	}
	for _, label := range ds.Labels {
		if err := binary.Write(w, binary.LittleEndian, int32(label)); err != nil {
			return fmt.Errorf("datasetio.Save: writing labels: %w", err)
		}
	}
	return nil
}

// SaveFile saves ds to a file at path, creating or truncating it.
func SaveFile(path string, ds Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("datasetio.SaveFile: %w", err)
	}
	defer f.Close()
	return Save(f, ds)
}

// Load reads a full dataset record from r.
func Load(r io.Reader) (Dataset, error) {
	var header [3]int64
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return Dataset{}, fmt.Errorf("datasetio.Load: reading header: %w", err)
	}
	numRows, numCols, numLabels := int(header[0]), int(header[1]), int(header[2])

	rows := make([][]float64, numRows)
	for i := range rows {
		row := make([]float32, numCols)
		if err := binary.Read(r, binary.LittleEndian, row); err != nil {
			return Dataset{}, fmt.Errorf("datasetio.Load: reading row %d: %w", i, err)
		}
		wideRow := make([]float64, numCols)
		for j, v := range row {
			wideRow[j] = float64(v)
		}
		rows[i] = wideRow
	}

	rawLabels := make([]int32, numRows)
	if err := binary.Read(r, binary.LittleEndian, rawLabels); err != nil {
		return Dataset{}, fmt.Errorf("datasetio.Load: reading labels: %w", err)
	}
	labels := make([]int, numRows)
	for i, l := range rawLabels {
		labels[i] = int(l)
	}

	return Dataset{Rows: rows, Labels: labels, NumLabels: numLabels}, nil
}

// LoadFile reads a full dataset record from the file at path.
func LoadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("datasetio.LoadFile: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Shuffle permutes ds.Rows and ds.Labels together under seed, matching the
// reference shuffleData contract: build one permutation and apply it to
// both slices in lockstep.
func Shuffle(seed int64, ds Dataset) Dataset {
	r := rand.New(rand.NewSource(uint64(seed)))
	n := len(ds.Rows)
	perm := r.Perm(n)
	rows := make([][]float64, n)
	labels := make([]int, n)
	for i, p := range perm {
		rows[i] = ds.Rows[p]
		labels[i] = ds.Labels[p]
	}
	return Dataset{Rows: rows, Labels: labels, NumLabels: ds.NumLabels}
}

// Subsample returns the first round(len(ds.Rows)*fraction) rows of ds,
// matching parseProtobuf's permute-then-take-prefix contract. Callers
// shuffle first if they want a random subsample rather than a prefix.
func Subsample(ds Dataset, fraction float64) Dataset {
	n := len(ds.Rows)
	getNumRows := int(float64(n)*fraction + 0.5)
	if getNumRows > n {
		getNumRows = n
	}
	return Dataset{
		Rows:      append([][]float64(nil), ds.Rows[:getNumRows]...),
		Labels:    append([]int(nil), ds.Labels[:getNumRows]...),
		NumLabels: ds.NumLabels,
	}
}

// LoadShuffledSubsample loads the dataset at path, shuffles it under seed,
// and returns the first round(numRows*fraction) rows and labels — the exact
// operation the trainer's harness performs before handing shards to
// dptree.Train.
func LoadShuffledSubsample(path string, seed int64, fraction float64) (Dataset, error) {
	ds, err := LoadFile(path)
	if err != nil {
		return Dataset{}, err
	}
	return Subsample(Shuffle(seed, ds), fraction), nil
}
