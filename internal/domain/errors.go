package domain

// Error allows sentinel errors to be declared as constants.
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrNotFound Error = "not found"

	// ErrInvalidProductID is returned for product ids that are not positive integers.
	ErrInvalidProductID Error = "Invalid parameter, please provide a positive integer number."
	// ErrMissingParam is returned when a submission lacks a required field.
	ErrMissingParam     Error = "Missing one or more required parameters."
)
