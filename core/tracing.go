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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
)

const serviceName = "ion-crawler"

const tracingShutdownTimeout = 5 * time.Second

// TracingConfig contains the settings for exporting traces through OTLP.
type TracingConfig struct {
	// Endpoint is the host:port of the OTLP HTTP collector. Tracing is disabled when empty.
	Endpoint    string  `koanf:"endpoint"`
	// Insecure disables TLS towards the collector.
	Insecure    bool    `koanf:"insecure"`
	// SampleRatio is the fraction of root spans that is sampled, between 0 and 1.
	SampleRatio float64 `koanf:"sampleratio"`
}

func (c TracingConfig) validate() error {
	if c.SampleRatio < 0 || c.SampleRatio > 1 {
		return fmt.Errorf("tracing.sampleratio must be between 0 and 1 (was: %v)", c.SampleRatio)
	}
	return nil
}

var tracingEnabled atomic.Bool

// TracingEnabled returns true while traces are exported.
func TracingEnabled() bool {
	return tracingEnabled.Load()
}

// Tracer returns the tracer for the given instrumentation scope, e.g. a package name.
// Spans are dropped when tracing isn't set up.
func Tracer(scope string) trace.Tracer {
	return otel.Tracer(serviceName + "/" + scope)
}

// SetupTracing installs a tracer provider exporting to the configured OTLP collector.
// The returned function flushes pending spans and stops exporting.
// Without an endpoint, tracing stays disabled and the returned function does nothing.
func SetupTracing(cfg TracingConfig) (func(context.Context) error, error) {
	if cfg.Endpoint == "" {
		logrus.Info("Tracing disabled (no endpoint configured)")
		return func(context.Context) error { return nil }, nil
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	ctx := context.Background()
	exporter, err := newTraceExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create trace exporter: %w", err)
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceVersionKey.String(Version()),
	))
	if err != nil {
		return nil, err
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		logrus.WithError(err).Warn("Trace export failed")
	}))
	logrus.AddHook(&tracingLogrusHook{})
	tracingEnabled.Store(true)
	logrus.WithFields(logrus.Fields{
		"endpoint":    cfg.Endpoint,
		"sampleRatio": cfg.SampleRatio,
	}).Info("Exporting traces")

	return func(ctx context.Context) error {
		tracingEnabled.Store(false)
		ctx, cancel := context.WithTimeout(ctx, tracingShutdownTimeout)
		defer cancel()
		return errors.Join(provider.Shutdown(ctx), exporter.Shutdown(ctx))
	}, nil
}

func newTraceExporter(ctx context.Context, cfg TracingConfig) (sdktrace.SpanExporter, error) {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return otlptracehttp.New(ctx, opts...)
}

// tracingLogrusHook adds the IDs of the span in the entry's context to the log entry.
type tracingLogrusHook struct{}

func (h *tracingLogrusHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *tracingLogrusHook) Fire(entry *logrus.Entry) error {
	if entry.Context == nil {
		return nil
	}
	spanContext := trace.SpanContextFromContext(entry.Context)
	if !spanContext.IsValid() {
		return nil
	}
	entry.Data["trace_id"] = spanContext.TraceID().String()
	entry.Data["span_id"] = spanContext.SpanID().String()
	return nil
}
