package qb

import (
	"context"
	"database/sql"
	"sort"
)

// NamedArgs converts a binding mapping to driver-level named arguments,
// sorted by tag for deterministic order. The result feeds directly into
// database/sql Exec and Query variadics for any driver that supports named
// parameters (the generated SQL uses the ":tag" convention).
func NamedArgs(bindings map[string]any) []any {
	tags := make([]string, 0, len(bindings))
	for tag := range bindings {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	args := make([]any, 0, len(tags))
	for _, tag := range tags {
		args = append(args, sql.Named(tag, bindings[tag]))
	}
	return args
}

// Exec builds the statement and executes it on db with the bindings passed
// as named arguments.
func (b *Builder) Exec(ctx context.Context, db *sql.DB) (sql.Result, error) {
	text, bindings, err := b.Build()
	if err != nil {
		return nil, err
	}
	return db.ExecContext(ctx, text, NamedArgs(bindings)...)
}

// Query builds the statement and runs it on db with the bindings passed as
// named arguments. The caller owns the returned rows.
func (b *Builder) Query(ctx context.Context, db *sql.DB) (*sql.Rows, error) {
	text, bindings, err := b.Build()
	if err != nil {
		return nil, err
	}
	return db.QueryContext(ctx, text, NamedArgs(bindings)...)
}
