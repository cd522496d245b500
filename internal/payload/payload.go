// Package payload turns a loadimports row into normalised fields.
//
// The payload blob is decoded into a flat dictionary of optional scalars; nested
// objects are kept only as a kind marker. Every logical field is resolved through
// one declarative table of sources (dedicated column first, then payload aliases).
package payload

import (
	"bytes"
	"encoding/json"
	"strings"
)

type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindObject
)

// Scalar is one payload value. Numbers keep their literal text so nothing is lost
// to float formatting before the caller decides how to read them.
type Scalar struct {
	Kind  Kind
	Text  string
	Items []Scalar
}

// String returns the trimmed text of a string/number/bool value, nil when empty.
func (s Scalar) String() *string {
	switch s.Kind {
	case KindString, KindNumber, KindBool:
		return StrOrNil(s.Text)
	}
	return nil
}

// Blob is the decoded payload_json object.
type Blob map[string]Scalar

// Decode parses payload_json. Anything that is not a JSON object yields an empty blob.
func Decode(raw *string) Blob {
	out := Blob{}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return out
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(*raw), &fields); err != nil {
		return out
	}
	for k, v := range fields {
		out[k] = decodeScalar(v)
	}
	return out
}

func decodeScalar(raw json.RawMessage) Scalar {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Scalar{Kind: KindNull}
	}
	return fromValue(v)
}

func fromValue(v any) Scalar {
	switch t := v.(type) {
	case nil:
		return Scalar{Kind: KindNull}
	case string:
		return Scalar{Kind: KindString, Text: t}
	case json.Number:
		return Scalar{Kind: KindNumber, Text: t.String()}
	case bool:
		if t {
			return Scalar{Kind: KindBool, Text: "1"}
		}
		return Scalar{Kind: KindBool, Text: ""}
	case []any:
		items := make([]Scalar, 0, len(t))
		for _, it := range t {
			items = append(items, fromValue(it))
		}
		return Scalar{Kind: KindList, Items: items}
	default:
		return Scalar{Kind: KindObject}
	}
}

// Lookup returns the value of the first alias present with a non-null value.
func (b Blob) Lookup(aliases ...string) (Scalar, bool) {
	for _, k := range aliases {
		if v, ok := b[k]; ok && v.Kind != KindNull {
			return v, true
		}
	}
	return Scalar{}, false
}

// String returns the first alias whose value is non-empty after trimming.
func (b Blob) String(aliases ...string) *string {
	for _, k := range aliases {
		if v, ok := b[k]; ok {
			if s := v.String(); s != nil {
				return s
			}
		}
	}
	return nil
}

// StrOrNil trims s and maps the empty string to nil.
func StrOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return StrOrNil(*s)
}
