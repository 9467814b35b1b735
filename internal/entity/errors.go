package entity

import "errors"

// ErrInvalidInput marks challenge input that violates the caller contract
// (for example a ragged maze grid or one without a start cell).
var ErrInvalidInput = errors.New("invalid challenge input")
