// Package logfields holds the canonical log attribute names used across seedbed.
package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath  = "path"
	KeyOp    = "op"
	KeyKind  = "kind"
	KeyCount = "count"
	KeyKey   = "key"
	KeyBytes = "bytes"
	KeyError = "error"
)

func Path(p string) slog.Attr   { return slog.String(KeyPath, p) }
func Op(name string) slog.Attr  { return slog.String(KeyOp, name) }
func Kind(k string) slog.Attr   { return slog.String(KeyKind, k) }
func Count(n int) slog.Attr     { return slog.Int(KeyCount, n) }
func Key(k string) slog.Attr    { return slog.String(KeyKey, k) }
func Bytes(n int) slog.Attr     { return slog.Int(KeyBytes, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
