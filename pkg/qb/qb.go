package qb

import (
	"strings"

	"github.com/efoft/query-builder/pkg/dialect"
)

// action identifies the statement kind. It is set by whichever verb method
// ran last before Build.
type action int

const (
	actionNone action = iota
	actionSelect
	actionInsert
	actionUpdate
	actionDelete
)

// Field is one column -> value entry for INSERT and UPDATE data. A slice of
// fields keeps the caller's insertion order, which Go maps would lose.
type Field struct {
	Name  string
	Value any
}

// selectColumn is a projection entry, optionally aliased.
type selectColumn struct {
	name  string
	alias string
}

// orderEntry is one ORDER BY entry; empty direction implies ascending.
type orderEntry struct {
	column    string
	direction string
}

// joinEntry describes one JOIN clause. Field names are bare; rendering
// qualifies them with their table automatically.
type joinEntry struct {
	table       string
	localField  string
	joinedField string
	joinType    string
}

// statement is the accumulated description of one in-progress statement.
// Reset wipes all fields.
type statement struct {
	action   action
	tables   []string
	columns  []selectColumn
	distinct bool
	orderBy  []orderEntry
	groupBy  []string
	joins    []joinEntry
	where    Cond
	data     []Field
	limit    int
}

// Builder accumulates one statement and compiles it with Build. All
// accumulation methods return the same *Builder for fluent chaining.
//
// A Builder is not safe for concurrent use; it assumes sequential
// accumulate -> Build -> Reset cycles by a single goroutine.
type Builder struct {
	dialect *dialect.Dialect
	model   statement
	binder  *binder
}

// New creates a Builder for the named dialect. The name must be registered
// in pkg/dialect ("none", "sql", "sqlite", "mysql", "mssql" are built in);
// an unknown name fails immediately.
func New(dialectName string) (*Builder, error) {
	d, err := dialect.Get(dialectName)
	if err != nil {
		return nil, err
	}
	return NewWithDialect(d), nil
}

// NewWithDialect creates a Builder for an already resolved dialect.
func NewWithDialect(d *dialect.Dialect) *Builder {
	return &Builder{dialect: d, binder: newBinder()}
}

// Reset discards the accumulated statement and binding mapping, returning
// the Builder to its freshly constructed state.
func (b *Builder) Reset() *Builder {
	b.model = statement{}
	b.binder = newBinder()
	return b
}

// Table adds table names. Each argument may itself be a comma-joined list;
// duplicates are dropped. Only the first table is used by INSERT, UPDATE and
// DELETE.
func (b *Builder) Table(names ...string) *Builder {
	b.model.tables = appendDistinct(b.model.tables, splitList(names)...)
	return b
}

// From is an alias for Table.
func (b *Builder) From(names ...string) *Builder {
	return b.Table(names...)
}

// Select marks the statement as SELECT and adds projection columns. Each
// argument may be a comma-joined list; duplicate columns are dropped. With
// no columns accumulated at all, Build renders "*".
func (b *Builder) Select(columns ...string) *Builder {
	b.model.action = actionSelect
	for _, name := range splitList(columns) {
		b.addColumn(selectColumn{name: name})
	}
	return b
}

// SelectAs marks the statement as SELECT and adds one aliased projection
// column.
func (b *Builder) SelectAs(column, alias string) *Builder {
	b.model.action = actionSelect
	b.addColumn(selectColumn{name: column, alias: alias})
	return b
}

func (b *Builder) addColumn(c selectColumn) {
	for _, have := range b.model.columns {
		if have == c {
			return
		}
	}
	b.model.columns = append(b.model.columns, c)
}

// Distinct forces the DISTINCT keyword in SELECT.
func (b *Builder) Distinct() *Builder {
	b.model.distinct = true
	return b
}

// OrderBy adds an ORDER BY entry. Direction is optional; when given it is
// rendered upper-cased after the column.
func (b *Builder) OrderBy(column string, direction ...string) *Builder {
	e := orderEntry{column: column}
	if len(direction) > 0 {
		e.direction = direction[0]
	}
	b.model.orderBy = append(b.model.orderBy, e)
	return b
}

// GroupBy adds GROUP BY columns. Each argument may be a comma-joined list.
func (b *Builder) GroupBy(columns ...string) *Builder {
	b.model.groupBy = appendDistinct(b.model.groupBy, splitList(columns)...)
	return b
}

// Limit sets the row limit. Values below one render no LIMIT clause.
func (b *Builder) Limit(n int) *Builder {
	b.model.limit = n
	return b
}

// Join adds a JOIN clause matching localField on the statement's first table
// against joinedField on the joined table. Join type defaults to LEFT.
// Field names must be bare; they are qualified with their table at render
// time.
func (b *Builder) Join(table, localField, joinedField string, joinType ...string) *Builder {
	e := joinEntry{table: table, localField: localField, joinedField: joinedField, joinType: "LEFT"}
	if len(joinType) > 0 && joinType[0] != "" {
		e.joinType = strings.ToUpper(joinType[0])
	}
	b.model.joins = append(b.model.joins, e)
	return b
}

// Insert marks the statement as INSERT and merges column data. A repeated
// column name overwrites the earlier value; order of first appearance is
// kept.
func (b *Builder) Insert(data ...Field) *Builder {
	b.model.action = actionInsert
	b.mergeData(data)
	return b
}

// Update marks the statement as UPDATE and merges column data like Insert.
func (b *Builder) Update(data ...Field) *Builder {
	b.model.action = actionUpdate
	b.mergeData(data)
	return b
}

func (b *Builder) mergeData(data []Field) {
	for _, f := range data {
		replaced := false
		for i := range b.model.data {
			if b.model.data[i].Name == f.Name {
				b.model.data[i].Value = f.Value
				replaced = true
				break
			}
		}
		if !replaced {
			b.model.data = append(b.model.data, f)
		}
	}
}

// Delete marks the statement as DELETE.
func (b *Builder) Delete() *Builder {
	b.model.action = actionDelete
	return b
}

// Where merges conditions into the statement's condition tree. Conditions
// from repeated calls combine with AND at the top level.
func (b *Builder) Where(conds ...*Cond) *Builder {
	for _, c := range conds {
		b.model.where.merge(c)
	}
	return b
}

// Bindings returns the binding mapping accumulated by the last Build. The
// map is owned by the Builder until the next Reset.
func (b *Builder) Bindings() map[string]any {
	return b.binder.values
}

// BindingTags returns the placeholder tags in the order they were allocated.
func (b *Builder) BindingTags() []string {
	return b.binder.tags
}

// splitList flattens comma-joined items into a trimmed, de-duplicated
// ordered list. Heterogeneous caller input (single names, comma-joined
// strings, repeated calls) all normalize through here before reaching the
// renderers.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = appendDistinct(out, part)
			}
		}
	}
	return out
}

func appendDistinct(list []string, items ...string) []string {
next:
	for _, item := range items {
		for _, have := range list {
			if have == item {
				continue next
			}
		}
		list = append(list, item)
	}
	return list
}
