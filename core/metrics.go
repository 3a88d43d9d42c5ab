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

package core

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsNamespace is the prometheus namespace all crawler metrics are registered under.
const MetricsNamespace = "ion_crawler"

// NewMetricsEngine creates a new Engine for exposing prometheus metrics via http.
// Metrics are exposed on /metrics, by default the GoCollector and ProcessCollector are enabled.
func NewMetricsEngine() Engine {
	return &metrics{}
}

type metrics struct{}

func (e metrics) Name() string {
	return "Metrics"
}

func (e metrics) Routes(router EchoRouter) {
	router.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// runtimeCollectors are created once, so configuring another metrics engine in the same process registers the same instances.
var runtimeCollectors = []prometheus.Collector{
	collectors.NewGoCollector(),
	collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	buildInfoCollector(),
}

func (e metrics) Configure(_ ServerConfig) error {
	return RegisterCollectors(runtimeCollectors...)
}

// buildInfoCollector exposes the version of the running binary as labels of a constant gauge.
func buildInfoCollector() prometheus.Collector {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "build_info",
		Help:      "Version information of the crawler, the value is always 1.",
		ConstLabels: prometheus.Labels{
			"version": Version(),
			"commit":  Commit(),
			"os_arch": OSArch(),
		},
	}, func() float64 { return 1 })
}

// RegisterCollectors registers the given collectors with the default registry.
// Registering a collector again is a no-op, but a different collector with the same metrics is an error.
func RegisterCollectors(collectors ...prometheus.Collector) error {
	for _, c := range collectors {
		err := prometheus.Register(c)
		if err == nil {
			continue
		}
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) && alreadyRegistered.ExistingCollector == c {
			continue
		}
		return err
	}
	return nil
}
