/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package crawler

import (
	"github.com/nuts-foundation/ion-crawler/core"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

var documentsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: core.MetricsNamespace,
	Name:      "documents_total",
	Help:      "Number of core index files inspected by crawls, by outcome (success, cas_read, decompression, parse).",
}, []string{"outcome"})

var discoveredCounter = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: core.MetricsNamespace,
	Name:      "dids_discovered_total",
	Help:      "Number of DIDs found in core index files, including ones already cached.",
})

var cacheWritesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: core.MetricsNamespace,
	Name:      "cache_writes_total",
	Help:      "Number of newly discovered DIDs written to the cache, by outcome.",
}, []string{"outcome"})

var resolveDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Namespace: core.MetricsNamespace,
	Name:      "resolve_duration_seconds",
	Help:      "Duration of crawls.",
	Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
})

func registerMetrics() error {
	return core.RegisterCollectors(documentsCounter, discoveredCounter, cacheWritesCounter, resolveDuration)
}
