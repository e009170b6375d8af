/*
Package observability provides Prometheus instrumentation for seedbed.

Components accept an optional *Metrics and record one outcome per operation,
labelled by component ("configstore", "scaffold", "cache"), operation name and
outcome ("ok", "error", "skipped"). Command-line runs can dump the collected
series to a node_exporter textfile with WriteTextfile.
*/
package observability
