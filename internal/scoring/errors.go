package scoring

import (
	"errors"
	"strings"
)

var (
	ErrMissingIdentifierColumn = errors.New("missing identifier column")
	ErrNoDomainColumnsFound    = errors.New("no domain columns found")
	ErrZeroWeightSum           = errors.New("domain weights sum to zero")
	ErrNoItems                 = errors.New("no scored items")
	ErrDuplicateItem           = errors.New("duplicate item identifier")
	ErrNonNumericDomainValues  = errors.New("non-numeric domain values")
)

// NonNumericDomainValuesError lists the domain columns holding cells that
// could not be read as finite numbers, in header order.
type NonNumericDomainValuesError struct {
	Columns []string
}

func (e *NonNumericDomainValuesError) Error() string {
	return "non-numeric values in domain columns: " + strings.Join(e.Columns, ", ")
}

func (e *NonNumericDomainValuesError) Is(target error) bool {
	return target == ErrNonNumericDomainValues
}

// IsInputError reports whether err comes from rejecting a malformed table.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingIdentifierColumn) ||
		errors.Is(err, ErrNoDomainColumnsFound) ||
		errors.Is(err, ErrZeroWeightSum) ||
		errors.Is(err, ErrNoItems) ||
		errors.Is(err, ErrDuplicateItem) ||
		errors.Is(err, ErrNonNumericDomainValues)
}
