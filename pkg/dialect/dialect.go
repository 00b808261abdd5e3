// Package dialect provides SQL dialect configuration and identifier quoting.
//
// A dialect selects the delimiter pair used to quote column identifiers in
// generated SQL. Concrete dialects are registered in the global registry from
// builtin.go; additional dialects can be registered by callers before use.
package dialect

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedIdentifier is returned when a function-wrapped identifier does
// not match the single-level name(arg) shape. Nested parentheses (for example
// SUM(LENGTH(a))) are not supported and fail loudly rather than producing
// wrong SQL.
var ErrMalformedIdentifier = errors.New("malformed identifier")

// IdentifierConfig holds the quote delimiter pair for a dialect.
// Both fields are empty for the "none" dialect.
type IdentifierConfig struct {
	Quote    string // Opening delimiter, e.g. "`" for MySQL, "[" for MSSQL
	QuoteEnd string // Closing delimiter, e.g. "`" for MySQL, "]" for MSSQL
}

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name        string
	Identifiers IdentifierConfig
}

// funcIdent matches a single-level function-wrapped identifier, e.g.
// COUNT(age) or SUM(t.amount). Group 1 is the function prefix, group 2 the
// inner argument. Nested parentheses deliberately do not match.
var funcIdent = regexp.MustCompile(`^([^()]+)\(([^()]*)\)$`)

// Quote returns the identifier with dialect delimiters applied.
//
// A qualified name such as "t.c" is split on the first dot and both parts are
// quoted independently. A bare "*" passes through unquoted. An identifier
// wrapped in a function call, such as "COUNT(c)", keeps the function prefix
// verbatim and quotes only the inner argument.
func (d *Dialect) Quote(name string) (string, error) {
	if strings.Contains(name, "(") {
		m := funcIdent.FindStringSubmatch(name)
		if m == nil {
			return "", fmt.Errorf("%w: %q", ErrMalformedIdentifier, name)
		}
		inner, err := d.Quote(m[2])
		if err != nil {
			return "", err
		}
		return m[1] + "(" + inner + ")", nil
	}

	parts := strings.SplitN(name, ".", 2)
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p != "*" {
			p = d.Identifiers.Quote + p + d.Identifiers.QuoteEnd
		}
		parts[i] = p
	}
	return strings.Join(parts, "."), nil
}
