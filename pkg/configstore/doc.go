/*
Package configstore reads and writes the configuration and intermediate
artifacts of an ML project: YAML config files, JSON data files and binary
(CBOR) artifacts, plus directory creation and size queries.

Every operation that touches the filesystem logs one info line naming the
path on success. Single-target operations return a *domain.PathError whose
kind is one of domain.ErrEmptyDocument, domain.ErrParse, domain.ErrNotFound
or domain.ErrIO. EnsureDirectories is a batch operation: it logs per-path
failures, keeps going, and reports them in its Report instead of an error.

# Usage

	store := configstore.New(
		configstore.WithLogger(logger),
	)

	doc, err := store.ReadConfig("config/config.yaml")
	if errors.Is(err, domain.ErrEmptyDocument) {
		// file exists but has no content
	}
	root, _ := doc.String("artifacts_root")

	store.EnsureDirectories([]string{root})
	err = store.SaveJSON("scores.json", map[string]any{"loss": 0.12})
*/
package configstore
