// Package document provides Document, a read-only view over parsed
// structured text (YAML or JSON) with both keyed and field-style access.
//
// Keyed access reads a single top-level key:
//
//	v, ok := doc.Get("artifacts_root")
//
// Field-style access walks nested mappings with a dotted path:
//
//	dir, ok := doc.String("data_ingestion.root_dir")
//
// Call sites that know the shape of their configuration should decode it
// into a typed struct instead:
//
//	var cfg IngestionConfig
//	err := doc.Sub("data_ingestion").Decode(&cfg)
package document
