// Package metrics defines the sinks that record planning runs. Sinks like
// PromSink and InfluxSink live in infra/metrics and register themselves with
// the factory; NewMetricsSink combines several configured sinks into a
// MultiSink. Optional capabilities are expressed as separate recorder
// interfaces that MultiSink forwards to when a sink implements them.
package metrics
