// Package codec implements the binary artifact encoding used by seedbed.
//
// Artifacts are encoded as CBOR (RFC 8949), a self-describing format: a file
// can be decoded back into a generic value graph without any external schema,
// and into the original Go type when the caller provides one.
package codec

import (
	"fmt"
	"reflect"

	"github.com/aretw0/seedbed/pkg/document"
	"github.com/fxamacker/cbor/v2"
)

// Codec encodes and decodes artifact value graphs.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, target any) error
}

// CBOR is the default Codec.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCBOR creates a CBOR codec with deterministic encoding.
// Times are written as tagged RFC 3339 strings with nanoseconds and offset.
// Generic decoding yields map[any]any for mappings so non-string keys survive;
// DecodeValue folds them into map[string]any.
func NewCBOR() (*CBOR, error) {
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	opts.TimeTag = cbor.EncTagRequired
	enc, err := opts.EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to build cbor encoder: %w", err)
	}
	dec, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[any]any(nil)),
	}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("failed to build cbor decoder: %w", err)
	}
	return &CBOR{enc: enc, dec: dec}, nil
}

// MustCBOR is like NewCBOR but panics on error. The default options never fail.
func MustCBOR() *CBOR {
	c, err := NewCBOR()
	if err != nil {
		panic(err)
	}
	return c
}

// Marshal encodes v.
func (c *CBOR) Marshal(v any) ([]byte, error) {
	data, err := c.enc.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode artifact: %w", err)
	}
	return data, nil
}

// Unmarshal decodes data into target, which must be a non-nil pointer.
func (c *CBOR) Unmarshal(data []byte, target any) error {
	if err := c.dec.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode artifact: %w", err)
	}
	return nil
}

// DecodeValue decodes data into a generic value graph normalized the same way
// as parsed documents: map[string]any, []any, int and float64. Non-string map
// keys are formatted as strings, so {0: "cat"} becomes {"0": "cat"}.
func DecodeValue(c Codec, data []byte) (any, error) {
	var v any
	if err := c.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return document.Normalize(normalizeUnsigned(v)), nil
}

// normalizeUnsigned turns CBOR unsigned integers into int64 so Normalize can fold them to int.
func normalizeUnsigned(v any) any {
	switch val := v.(type) {
	case uint64:
		if val <= 1<<63-1 {
			return int64(val)
		}
		return val
	case map[any]any:
		out := make(map[any]any, len(val))
		for k, item := range val {
			out[normalizeUnsigned(k)] = normalizeUnsigned(item)
		}
		return out
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeUnsigned(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeUnsigned(item)
		}
		return val
	default:
		return v
	}
}
