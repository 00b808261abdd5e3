package qb

import (
	"strings"

	"github.com/efoft/query-builder/pkg/dialect"
)

// Value is a condition leaf value: either a plain literal compared with
// equality, or a wildcard pattern compared with LIKE. The variant is decided
// once, when the condition is constructed, never re-sniffed later.
type Value struct {
	literal  any
	pattern  string
	wildcard bool
	foldCase bool
}

// Literal wraps a value for plain equality comparison.
func Literal(v any) Value {
	return Value{literal: v}
}

// Pattern compiles a wildcard pattern for a LIKE comparison. Every ".*"
// token becomes the SQL "%" wildcard. With caseInsensitive set, the pattern
// is lower-cased and the column is wrapped in LOWER() at render time.
func Pattern(pattern string, caseInsensitive bool) Value {
	p := strings.ReplaceAll(pattern, ".*", "%")
	if caseInsensitive {
		p = strings.ToLower(p)
	}
	return Value{pattern: p, wildcard: true, foldCase: caseInsensitive}
}

// parseValue decides the Value variant for raw input. Strings delimited as
// /pattern/ or /pattern/i are wildcard patterns; anything else is a literal.
func parseValue(v any) Value {
	if s, ok := v.(string); ok && len(s) >= 2 && strings.HasPrefix(s, "/") {
		if strings.HasSuffix(s, "/i") && len(s) >= 3 {
			return Pattern(s[1:len(s)-2], true)
		}
		if strings.HasSuffix(s, "/") {
			return Pattern(s[1:len(s)-1], false)
		}
	}
	return Literal(v)
}

// Cond is a node in the WHERE condition tree: an ordered list of column
// leaves and nested AND/OR groups.
type Cond struct {
	entries []condEntry
}

type condEntry struct {
	column string
	value  Value
	group  *Cond // non-nil for a nested group
	or     bool  // nested group combines its children with OR
}

// F creates an equality condition leaf. String values of the form /pattern/
// or /pattern/i are recognized as wildcard patterns and rendered with LIKE.
func F(column string, value any) *Cond {
	return &Cond{entries: []condEntry{{column: column, value: parseValue(value)}}}
}

// FV creates a condition leaf with an explicitly tagged Value, bypassing
// pattern recognition on strings.
func FV(column string, value Value) *Cond {
	return &Cond{entries: []condEntry{{column: column, value: value}}}
}

// Like creates a LIKE condition leaf from a wildcard pattern (without the
// /…/ delimiters).
func Like(column, pattern string, caseInsensitive bool) *Cond {
	return FV(column, Pattern(pattern, caseInsensitive))
}

// And groups conditions so that they combine with AND.
func And(conds ...*Cond) *Cond {
	return group(false, conds)
}

// Or groups conditions so that they combine with OR.
func Or(conds ...*Cond) *Cond {
	return group(true, conds)
}

func group(or bool, conds []*Cond) *Cond {
	inner := &Cond{}
	for _, c := range conds {
		if c != nil {
			inner.entries = append(inner.entries, c.entries...)
		}
	}
	return &Cond{entries: []condEntry{{group: inner, or: or}}}
}

// merge appends another condition's entries (shallow union, insertion order
// preserved). Used by Builder.Where across repeated calls.
func (c *Cond) merge(other *Cond) {
	if other != nil {
		c.entries = append(c.entries, other.entries...)
	}
}

func (c *Cond) empty() bool {
	return c == nil || len(c.entries) == 0
}

// build compiles the tree into boolean expression text. Sub-conditions are
// collected in insertion order; zero yields empty text, exactly one is
// emitted verbatim, two or more are parenthesized and joined. Nested groups
// recurse with their own joiner so only the nested group gains parentheses,
// never its siblings.
func (c *Cond) build(d *dialect.Dialect, b *binder, joiner string) (string, error) {
	var parts []string
	for _, e := range c.entries {
		if e.group != nil {
			j := " AND "
			if e.or {
				j = " OR "
			}
			sub, err := e.group.build(d, b, j)
			if err != nil {
				return "", err
			}
			if sub != "" {
				parts = append(parts, sub)
			}
			continue
		}
		expr, err := leafExpr(d, b, e.column, e.value)
		if err != nil {
			return "", err
		}
		parts = append(parts, expr)
	}

	switch len(parts) {
	case 0:
		return "", nil
	case 1:
		return parts[0], nil
	default:
		return "(" + strings.Join(parts, joiner) + ")", nil
	}
}

// leafExpr renders a single column comparison and binds its value.
func leafExpr(d *dialect.Dialect, b *binder, column string, v Value) (string, error) {
	col, err := d.Quote(column)
	if err != nil {
		return "", err
	}
	if v.wildcard {
		if v.foldCase {
			col = "LOWER(" + col + ")"
		}
		return col + " LIKE :" + b.bind(column, v.pattern), nil
	}
	return col + "=:" + b.bind(column, v.literal), nil
}
