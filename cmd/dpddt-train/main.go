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

// Command dpddt-train runs a parameter sweep of the trainer over one
// dataset and writes one CSV row per (alpha, algo) combination. It is a
// thin harness, not an experiment-analysis tool: flag/env wiring and a CSV
// sink only.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kaiwenw/DPDDT/datasetio"
	"github.com/kaiwenw/DPDDT/dptree"
	"github.com/kaiwenw/DPDDT/eval"
	"github.com/kaiwenw/DPDDT/split"
)

var log = logrus.New()

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dpddt-train: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dpddt-train",
		Short:   "Sweep the private distributed decision tree trainer over one dataset",
		Version: "0.1.0",
		RunE:    runSweep,
	}

	cmd.Flags().String("train-path", "", "path to the training dataset record (env DATASET_TRAIN_PATH)")
	cmd.Flags().String("test-path", "", "path to the test dataset record (env DATASET_TEST_PATH)")
	cmd.Flags().String("dataset", "", "dataset name selecting the split factory: adult, bank, creditcard, skin, kddcup, ctr, nursery, mnist (env DATASET)")
	cmd.Flags().Int64("seed", 0, "shuffle and RNG seed (env SEED)")
	cmd.Flags().Float64("training-fraction", 1.0, "fraction of the training set to subsample (env TRAINING_FRACTION)")
	cmd.Flags().String("budget-fn", "uniform", "per-depth budget function: uniform, decay, harmonic (env BUDGET_FN)")
	cmd.Flags().Float64("leaf-privacy-fraction", 0.5, "fraction of alpha reserved for leaf labeling (env LEAF_PRIVACY_FRACTION)")
	cmd.Flags().Int("num-entities", 1, "number of entities to partition the training set across")
	cmd.Flags().Int("max-num-nodes", 64, "maximum number of tree nodes")
	cmd.Flags().Int("max-depth", 8, "maximum tree depth")
	cmd.Flags().Float64("pruning-epsilon", 0, "weight floor below which a child is labeled but not expanded")
	cmd.Flags().String("impurity", "entropy", "splitting criterion: entropy, gini")
	cmd.Flags().StringSlice("algos", []string{"singleMachine"}, "algorithms to sweep: singleMachine, localRNM, distributedBaseline")
	cmd.Flags().Float64Slice("alphas", []float64{-1}, "privacy budgets to sweep; -1 disables noise")
	cmd.Flags().String("out", "dpddt-train-results.csv", "output CSV path")

	viper.BindPFlag("train-path", cmd.Flags().Lookup("train-path"))
	viper.BindPFlag("test-path", cmd.Flags().Lookup("test-path"))
	viper.BindPFlag("dataset", cmd.Flags().Lookup("dataset"))
	viper.BindPFlag("seed", cmd.Flags().Lookup("seed"))
	viper.BindPFlag("training-fraction", cmd.Flags().Lookup("training-fraction"))
	viper.BindPFlag("budget-fn", cmd.Flags().Lookup("budget-fn"))
	viper.BindPFlag("leaf-privacy-fraction", cmd.Flags().Lookup("leaf-privacy-fraction"))
	viper.BindEnv("train-path", "DATASET_TRAIN_PATH")
	viper.BindEnv("test-path", "DATASET_TEST_PATH")
	viper.BindEnv("dataset", "DATASET")
	viper.BindEnv("seed", "SEED")
	viper.BindEnv("training-fraction", "TRAINING_FRACTION")
	viper.BindEnv("budget-fn", "BUDGET_FN")
	viper.BindEnv("leaf-privacy-fraction", "LEAF_PRIVACY_FRACTION")

	return cmd
}

// splittingClassFor returns the candidate split pool for a named dataset,
// mirroring performTest's dataset dispatch in single_run.cpp.
func splittingClassFor(dataset string) ([]split.Fn, error) {
	switch dataset {
	case "mnist", "mnist60k", "mnist100k":
		return split.ImageBlockSplittingClass(28, 28, 4, 4, 3), nil
	case "adult":
		return split.AdultSplittingClass(10), nil
	case "bank":
		return split.BankSplittingClass(), nil
	case "creditcard":
		return split.CreditcardSplittingClass(), nil
	case "skin":
		return split.SkinSplittingClass(32), nil
	case "kddcup":
		return split.KDDCupSplittingClass(), nil
	case "ctr":
		return split.CTRSplittingClass(), nil
	case "nursery":
		return split.NurserySplittingClass(), nil
	default:
		return nil, fmt.Errorf("unrecognized dataset %q", dataset)
	}
}

// partitionShards splits rows/labels into numEntities contiguous blocks, the
// last absorbing any remainder, matching utils.h's partitionData.
func partitionShards(ds datasetio.Dataset, numEntities int) []dptree.Shard {
	n := len(ds.Rows)
	entitySize := n / numEntities
	shards := make([]dptree.Shard, numEntities)
	offset := 0
	for i := 0; i < numEntities; i++ {
		size := entitySize
		if i == numEntities-1 {
			size = n - offset
		}
		shards[i] = dptree.Shard{Rows: ds.Rows[offset : offset+size], Labels: ds.Labels[offset : offset+size]}
		offset += size
	}
	return shards
}

func runSweep(cmd *cobra.Command, args []string) error {
	trainPath := viper.GetString("train-path")
	testPath := viper.GetString("test-path")
	dataset := viper.GetString("dataset")
	seed := viper.GetInt64("seed")
	trainingFraction := viper.GetFloat64("training-fraction")
	budgetFn := viper.GetString("budget-fn")
	leafPrivacyFraction := viper.GetFloat64("leaf-privacy-fraction")

	numEntities, _ := cmd.Flags().GetInt("num-entities")
	maxNumNodes, _ := cmd.Flags().GetInt("max-num-nodes")
	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	pruningEpsilon, _ := cmd.Flags().GetFloat64("pruning-epsilon")
	impurity, _ := cmd.Flags().GetString("impurity")
	algos, _ := cmd.Flags().GetStringSlice("algos")
	alphas, _ := cmd.Flags().GetFloat64Slice("alphas")
	outPath, _ := cmd.Flags().GetString("out")

	if trainPath == "" || dataset == "" {
		return fmt.Errorf("both --train-path/DATASET_TRAIN_PATH and --dataset/DATASET must be set")
	}

	trainDS, err := datasetio.LoadShuffledSubsample(trainPath, seed, trainingFraction)
	if err != nil {
		return fmt.Errorf("loading training dataset: %w", err)
	}
	var testDS datasetio.Dataset
	if testPath != "" {
		testDS, err = datasetio.LoadShuffledSubsample(testPath, 0, 1.0)
		if err != nil {
			return fmt.Errorf("loading test dataset: %w", err)
		}
	}

	class, err := splittingClassFor(dataset)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer out.Close()
	w := csv.NewWriter(out)
	defer w.Flush()
	if err := w.Write([]string{
		"dataset", "trainingFraction", "numEntities", "seed", "impurity",
		"leafPrivacyFraction", "maxNumNodes", "maxDepth", "alpha", "budgetFn",
		"algo", "trainAcc", "testAcc", "trainingTimeSeconds", "evaluationTimeSeconds",
		"numNodes", "maxAchievedDepth", "runID",
	}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	cfgTemplate, err := dptree.NewConfig(leafPrivacyFraction, maxNumNodes, maxDepth, pruningEpsilon, budgetFn, "singleMachine")
	if err != nil {
		return fmt.Errorf("building config: %w", err)
	}

	for _, algo := range algos {
		cfg := *cfgTemplate
		cfg.Algo = algo
		shards := partitionShards(trainDS, numEntities)
		if algo == "singleMachine" {
			shards = []dptree.Shard{{Rows: trainDS.Rows, Labels: trainDS.Labels}}
		}

		for _, alpha := range alphas {
			recorder := dptree.NewPrometheusRecorder(registry, uuid.NewString())
			start := time.Now()
			result, err := dptree.Train(dptree.Options{
				Config:    &cfg,
				Impurity:  impurity,
				NumLabels: trainDS.NumLabels,
				Seed:      seed,
				Alpha:     alpha,
				Recorder:  recorder,
			}, shards, class)
			trainingTime := time.Since(start)
			if err != nil {
				log.WithFields(logrus.Fields{
					"dataset": dataset, "algo": algo, "alpha": alpha, "error": err,
				}).Error("training run failed")
				continue
			}

			evalStart := time.Now()
			trainAcc := eval.Evaluate(result.Tree, trainDS.Rows, trainDS.Labels)
			var testAcc float64
			if len(testDS.Rows) > 0 {
				testAcc = eval.Evaluate(result.Tree, testDS.Rows, testDS.Labels)
			}
			evaluationTime := time.Since(evalStart)

			log.WithFields(logrus.Fields{
				"dataset": dataset, "algo": algo, "alpha": alpha, "nodeCount": result.NodeCount,
				"maxDepth": result.MaxDepth, "trainAcc": trainAcc, "testAcc": testAcc, "runID": result.RunID,
			}).Info("training run complete")

			if err := w.Write([]string{
				dataset,
				strconv.FormatFloat(trainingFraction, 'f', -1, 64),
				strconv.Itoa(numEntities),
				strconv.FormatInt(seed, 10),
				impurity,
				strconv.FormatFloat(leafPrivacyFraction, 'f', -1, 64),
				strconv.Itoa(maxNumNodes),
				strconv.Itoa(maxDepth),
				strconv.FormatFloat(alpha, 'f', -1, 64),
				budgetFn,
				algo,
				strconv.FormatFloat(trainAcc, 'f', -1, 64),
				strconv.FormatFloat(testAcc, 'f', -1, 64),
				strconv.FormatFloat(trainingTime.Seconds(), 'f', -1, 64),
				strconv.FormatFloat(evaluationTime.Seconds(), 'f', -1, 64),
				strconv.Itoa(result.NodeCount),
				strconv.Itoa(result.MaxDepth),
				result.RunID,
			}); err != nil {
				return fmt.Errorf("writing CSV row: %w", err)
			}
		}
	}

	return nil
}
