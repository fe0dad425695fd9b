package tables

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the scalar type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
)

// Value is one cell: a string, an integer, a float, or null. Integers and
// floats are kept distinct so spreadsheet cells keep their numeric type.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, num: i} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, flt: f} }

// Kind returns the scalar type of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Cell returns the value as the native Go type a spreadsheet cell takes:
// string, int64, float64, or nil.
func (v Value) Cell() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindFloat:
		return v.flt
	default:
		return nil
	}
}

// Display returns the value rendered for HTML output. Null renders empty.
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.flt, 'g', -1, 64)
	default:
		return ""
	}
}

// UnmarshalJSON decodes a scalar JSON value. Numbers without a fraction or
// exponent decode as integers; anything besides string/number/null is
// rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" {
		return fmt.Errorf("empty cell value")
	}
	if s == "null" {
		*v = Value{kind: KindNull}
		return nil
	}

	switch s[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("invalid string cell value: %w", err)
		}
		*v = Value{kind: KindString, str: str}
		return nil
	case '{', '[', 't', 'f':
		return fmt.Errorf("unsupported cell value %s", s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid numeric cell value: %w", err)
		}
		if !strings.ContainsAny(n.String(), ".eE") {
			if i, err := n.Int64(); err == nil {
				*v = Value{kind: KindInt, num: i}
				return nil
			}
		}
		f, err := n.Float64()
		if err != nil {
			return fmt.Errorf("invalid numeric cell value %q: %w", n.String(), err)
		}
		*v = Value{kind: KindFloat, flt: f}
		return nil
	}
}

// MarshalJSON encodes the value back to its scalar JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindInt:
		return json.Marshal(v.num)
	case KindFloat:
		return json.Marshal(v.flt)
	default:
		return []byte("null"), nil
	}
}
