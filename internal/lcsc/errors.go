package lcsc

import "fmt"

// InvalidSortKeyError is returned for a sort key other than "stock" or
// "price" (compared case-insensitively).
type InvalidSortKeyError struct {
	Key string
}

func (e *InvalidSortKeyError) Error() string {
	return fmt.Sprintf("invalid sort key %q: want %q or %q", e.Key, SortByStock, SortByPrice)
}

// DecodeError is returned when a response body is not a JSON object.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NotFoundError is returned when the vendor answers a lookup with an empty
// result.
type NotFoundError struct {
	PartNumber string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no product found for part number %q", e.PartNumber)
}
