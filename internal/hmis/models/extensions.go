package models

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// ExtensionKind is the declared type of an extension value.
type ExtensionKind string

const (
	ExtensionString ExtensionKind = "string"
	ExtensionNumber ExtensionKind = "number"
	ExtensionBool   ExtensionKind = "bool"
	ExtensionDate   ExtensionKind = "date"
)

// ExtensionValue holds one field that is not part of the core schema. Exactly
// one of the payload fields is meaningful, selected by Kind.
type ExtensionValue struct {
	Kind   ExtensionKind
	String string
	Number float64
	Bool   bool
	Date   time.Time
}

// Extensions maps unanticipated field names to typed values. Core schema
// fields never appear here.
type Extensions map[string]ExtensionValue

func StringExt(s string) ExtensionValue  { return ExtensionValue{Kind: ExtensionString, String: s} }
func NumberExt(n float64) ExtensionValue { return ExtensionValue{Kind: ExtensionNumber, Number: n} }
func BoolExt(b bool) ExtensionValue      { return ExtensionValue{Kind: ExtensionBool, Bool: b} }
func DateExt(t time.Time) ExtensionValue { return ExtensionValue{Kind: ExtensionDate, Date: t} }

// Value returns the payload as a plain Go value.
func (v ExtensionValue) Value() any {
	switch v.Kind {
	case ExtensionString:
		return v.String
	case ExtensionNumber:
		return v.Number
	case ExtensionBool:
		return v.Bool
	case ExtensionDate:
		return v.Date
	default:
		return nil
	}
}

type extensionJSON struct {
	Kind  ExtensionKind   `json:"kind"`
	Value json.RawMessage `json:"value"`
}

func (v ExtensionValue) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(v.Value())
	if err != nil {
		return nil, err
	}
	return json.Marshal(extensionJSON{Kind: v.Kind, Value: raw})
}

func (v *ExtensionValue) UnmarshalJSON(b []byte) error {
	var wire extensionJSON
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	out := ExtensionValue{Kind: wire.Kind}
	var err error
	switch wire.Kind {
	case ExtensionString:
		err = json.Unmarshal(wire.Value, &out.String)
	case ExtensionNumber:
		err = json.Unmarshal(wire.Value, &out.Number)
	case ExtensionBool:
		err = json.Unmarshal(wire.Value, &out.Bool)
	case ExtensionDate:
		err = json.Unmarshal(wire.Value, &out.Date)
	default:
		return fmt.Errorf("unknown extension kind %q", wire.Kind)
	}
	if err != nil {
		return fmt.Errorf("decode %s extension: %w", wire.Kind, err)
	}
	*v = out
	return nil
}

// Clone returns an independent copy; nil stays nil.
func (e Extensions) Clone() Extensions {
	if e == nil {
		return nil
	}
	out := make(Extensions, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
