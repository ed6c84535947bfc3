package lcsc

import (
	"github.com/lukman83/lcsc-scrap/internal/models"
)

// decodeEnvelope decodes a vendor response body. Every endpoint wraps its
// payload as {"code": ..., "msg": ..., "result": ...}.
func decodeEnvelope(endpoint string, body []byte) (models.Record, error) {
	rec, err := models.DecodeRecord(body)
	if err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	return rec, nil
}

// walk follows keys through nested objects, reporting the dotted path of the
// first missing key or non-object value.
func walk(rec models.Record, keys ...string) (any, error) {
	var (
		cur  any = rec
		path string
	)
	for _, key := range keys {
		obj, ok := asRecord(cur)
		if !ok {
			return nil, &models.TypeConversionError{Field: path, Value: cur, Target: "object"}
		}
		if path != "" {
			path += "."
		}
		path += key
		if cur, ok = obj[key]; !ok {
			return nil, &models.MissingFieldError{Field: path}
		}
	}
	return cur, nil
}

func asRecord(v any) (models.Record, bool) {
	switch m := v.(type) {
	case models.Record:
		return m, true
	case map[string]any:
		return models.Record(m), true
	}
	return nil, false
}

// productList extracts result.productSearchResultVO.productList. A null list
// is an empty search.
func productList(rec models.Record) ([]models.Record, error) {
	const path = "result.productSearchResultVO.productList"
	v, err := walk(rec, "result", "productSearchResultVO", "productList")
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, &models.TypeConversionError{Field: path, Value: v, Target: "list"}
	}
	records := make([]models.Record, len(items))
	for i, item := range items {
		r, ok := asRecord(item)
		if !ok {
			return nil, &models.TypeConversionError{Field: path, Value: item, Target: "object"}
		}
		records[i] = r
	}
	return records, nil
}
