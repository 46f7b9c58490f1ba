// Copyright 2026 AgentCore Authors. All rights reserved.
// Use of this source code is governed by the project license.

// Package telemetry installs the OpenTelemetry SDK for the agentcore
// service: OTLP/gRPC exporters for traces and metrics, a parent-based ratio
// sampler, and the W3C trace-context propagator.
//
// With telemetry disabled, Init installs nothing and the returned
// Providers hands out tracers from the global noop provider, so callers
// never branch on whether tracing is on.
package telemetry
