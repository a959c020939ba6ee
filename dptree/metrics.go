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
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder observes the per-query privacy spend of every Laplace draw an
// entity makes, so a caller can track budget consumption (spec.md §8
// property 3) without dptree depending on any particular metrics backend.
type Recorder interface {
	// ObserveQuery is called once per Laplace draw with the ε that draw
	// spent.
	ObserveQuery(eps float64)
}

// NopRecorder discards every observation. It is the default Recorder when
// none is supplied.
type NopRecorder struct{}

func (NopRecorder) ObserveQuery(float64) {}

// PrometheusRecorder reports query counts and cumulative privacy spend
// through Prometheus collectors, labeled by runID so multiple concurrent
// runs (e.g. a parameter sweep) don't clobber each other's series.
type PrometheusRecorder struct {
	runID        string
	queriesTotal *prometheus.CounterVec
	budgetSpent  *prometheus.CounterVec
}

// NewPrometheusRecorder registers dpddt_queries_total and
// dpddt_privacy_budget_spent against reg and returns a Recorder scoped to
// runID. If reg already holds those collectors (from an earlier run), the
// existing ones are reused.
func NewPrometheusRecorder(reg prometheus.Registerer, runID string) *PrometheusRecorder {
	r := &PrometheusRecorder{
		runID: runID,
		queriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dpddt_queries_total",
			Help: "Number of noised queries answered by entities, by run id.",
		}, []string{"run_id"}),
		budgetSpent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dpddt_privacy_budget_spent",
			Help: "Cumulative epsilon spent across noised queries, by run id.",
		}, []string{"run_id"}),
	}
	for _, cv := range []**prometheus.CounterVec{&r.queriesTotal, &r.budgetSpent} {
		if err := reg.Register(*cv); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				panic(err)
			}
			*cv = are.ExistingCollector.(*prometheus.CounterVec)
		}
	}
	return r
}

func (r *PrometheusRecorder) ObserveQuery(eps float64) {
	r.queriesTotal.WithLabelValues(r.runID).Inc()
	r.budgetSpent.WithLabelValues(r.runID).Add(eps)
}
