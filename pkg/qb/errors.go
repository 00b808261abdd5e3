package qb

import "errors"

// ErrInvalidStatement is returned by Build when no action verb was invoked,
// or the accumulated statement is missing a required part (such as a table
// name). The Builder stays usable; fix the accumulation sequence and Build
// again, or Reset and start over.
var ErrInvalidStatement = errors.New("invalid statement")
