package models

import "fmt"

// MissingFieldError reports a required key absent from a raw vendor record.
// Nested keys are reported as dotted paths, e.g. "productPriceList[1].usdPrice".
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// TypeConversionError reports a field that is present but cannot be coerced
// to its target type.
type TypeConversionError struct {
	Field  string
	Value  any
	Target string
	Err    error
}

func (e *TypeConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("field %q: cannot convert %v (%T) to %s: %v", e.Field, e.Value, e.Value, e.Target, e.Err)
	}
	return fmt.Sprintf("field %q: cannot convert %v (%T) to %s", e.Field, e.Value, e.Value, e.Target)
}

func (e *TypeConversionError) Unwrap() error { return e.Err }

// PriceLadderError reports a price list that cannot form a valid ladder:
// empty, not strictly ascending by quantity, or carrying a negative price.
type PriceLadderError struct {
	Index  int
	Reason string
}

func (e *PriceLadderError) Error() string {
	if e.Index < 0 {
		return "invalid price ladder: " + e.Reason
	}
	return fmt.Sprintf("invalid price ladder at entry %d: %s", e.Index, e.Reason)
}

// InvariantError reports a mapped product that violates a value constraint
// (for example a split quantity below 1).
type InvariantError struct {
	Field string
	Rule  string
	Value any
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("product %s violates %q (got %v)", e.Field, e.Rule, e.Value)
}

// QuantityTooLowError is returned when an order quantity is below the
// product's minimum order quantity.
type QuantityTooLowError struct {
	Quantity    int
	MinQuantity int
}

func (e *QuantityTooLowError) Error() string {
	return fmt.Sprintf("quantity %d is less than minimum order quantity of %d", e.Quantity, e.MinQuantity)
}

// QuantityNotAMultipleError is returned when an order quantity is not a
// multiple of the product's split quantity.
type QuantityNotAMultipleError struct {
	Quantity      int
	SplitQuantity int
}

func (e *QuantityNotAMultipleError) Error() string {
	return fmt.Sprintf("quantity %d is not a multiple of split quantity of %d", e.Quantity, e.SplitQuantity)
}
