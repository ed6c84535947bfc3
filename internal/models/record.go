package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Record is one decoded-but-untyped vendor JSON object. Numbers are expected
// as json.Number (see DecodeRecord), but float64 values from a plain
// json.Unmarshal are accepted too.
type Record map[string]any

// DecodeRecord decodes a single JSON object into a Record, keeping numbers
// as json.Number so ids and prices are not rounded through float64.
func DecodeRecord(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var r Record
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if r == nil {
		return nil, fmt.Errorf("decode record: not a JSON object")
	}
	return r, nil
}

// get returns the value under key or a MissingFieldError naming path.
func (r Record) get(path, key string) (any, error) {
	v, ok := r[key]
	if !ok {
		return nil, &MissingFieldError{Field: joinPath(path, key)}
	}
	return v, nil
}

func (r Record) intField(path, key string) (int, error) {
	v, err := r.get(path, key)
	if err != nil {
		return 0, err
	}
	return toInt(joinPath(path, key), v)
}

func (r Record) stringField(path, key string) (string, error) {
	v, err := r.get(path, key)
	if err != nil {
		return "", err
	}
	return toString(joinPath(path, key), v)
}

func (r Record) boolField(path, key string) (bool, error) {
	v, err := r.get(path, key)
	if err != nil {
		return false, err
	}
	return Truthy(v), nil
}

func (r Record) decimalField(path, key string) (decimal.Decimal, error) {
	v, err := r.get(path, key)
	if err != nil {
		return decimal.Zero, err
	}
	return toDecimal(joinPath(path, key), v)
}

// listField returns the list under key. JSON null is an empty list.
func (r Record) listField(path, key string) ([]any, error) {
	v, err := r.get(path, key)
	if err != nil {
		return nil, err
	}
	switch l := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return l, nil
	}
	return nil, &TypeConversionError{Field: joinPath(path, key), Value: v, Target: "list"}
}

// Truthy reports the truth value of a decoded JSON value: nil, false, zero,
// "" and empty lists or objects are false, everything else is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t != ""
		}
		return f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	case Record:
		return len(t) > 0
	}
	return true
}

func toInt(field string, v any) (int, error) {
	fail := func(err error) (int, error) {
		return 0, &TypeConversionError{Field: field, Value: v, Target: "integer", Err: err}
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return fail(err)
		}
		return integral(f, fail)
	case float64:
		return integral(n, fail)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return fail(err)
		}
		return i, nil
	}
	return fail(nil)
}

func integral(f float64, fail func(error) (int, error)) (int, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return fail(fmt.Errorf("not an integral value"))
	}
	return int(f), nil
}

func toDecimal(field string, v any) (decimal.Decimal, error) {
	var (
		d   decimal.Decimal
		err error
	)
	switch n := v.(type) {
	case json.Number:
		d, err = decimal.NewFromString(string(n))
	case float64:
		d = decimal.NewFromFloat(n)
	case int:
		d = decimal.NewFromInt(int64(n))
	case int64:
		d = decimal.NewFromInt(n)
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(n))
	default:
		err = fmt.Errorf("unsupported type")
	}
	if err != nil {
		return decimal.Zero, &TypeConversionError{Field: field, Value: v, Target: "decimal", Err: err}
	}
	return d, nil
}

// toString accepts strings and scalars; JSON null maps to "".
func toString(field string, v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case json.Number:
		return string(s), nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(s), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case bool:
		return strconv.FormatBool(s), nil
	}
	return "", &TypeConversionError{Field: field, Value: v, Target: "string"}
}

func toRecord(field string, v any) (Record, error) {
	switch m := v.(type) {
	case map[string]any:
		return Record(m), nil
	case Record:
		return m, nil
	}
	return nil, &TypeConversionError{Field: field, Value: v, Target: "object"}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
