// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates internal server error.
//
// Handlers return it instead of any error they do not know how to map, so
// internal details never leak into responses.
var ErrInternal = errors.New("internal")
