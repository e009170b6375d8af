/*
Package domain contains the core vocabulary shared by the seedbed components.

It defines how paths are classified for scaffolding and the error taxonomy that
every persistence operation reports. This package is kept pure and free of
I/O so both the config store and the scaffolder can depend on it.

# Key Entities

  - PathKind: Directory or File, derived from the path's suffix.
  - PathError: The error value returned by every single-target operation.
  - ErrEmptyDocument, ErrParse, ErrNotFound, ErrInvalidPath, ErrIO, ErrEncode: error kinds.
  - Report: The outcome of a batch operation over many paths.
*/
package domain
