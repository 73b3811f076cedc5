// Package errorspkg provides errors shared by every application layer.
package errorspkg

import "errors"

// ErrInternal replaces failures whose details must not reach the client.
// The cause is logged where it happens.
var ErrInternal = errors.New("internal error")
