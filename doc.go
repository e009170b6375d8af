/*
Package seedbed bootstraps machine-learning projects.

The module is split into small packages that can be used on their own:

  - pkg/configstore reads YAML configuration into a document.Document and
    reads and writes JSON and binary artifact files with uniform logging and
    error kinds.
  - pkg/scaffold materializes an idempotent project skeleton from a list of
    relative paths.
  - pkg/artifact caches encoded artifacts between pipeline stages on any
    ports.ArtifactStore backend (file, memory, redis).

The seedbed command (cmd/seedbed) wires them together:

	seedbed init --project churn
	seedbed config show config/config.yaml --key data_ingestion.root_dir
	seedbed cache push features artifacts/features.cbor
*/
package seedbed
