package qb

import (
	"fmt"
	"strconv"
	"strings"
)

// Build compiles the accumulated statement into final SQL text and returns
// it together with the binding mapping. The bindings from any previous Build
// are discarded first, so building twice does not leak tags.
func (b *Builder) Build() (string, map[string]any, error) {
	b.binder = newBinder()

	var sql string
	var err error
	switch b.model.action {
	case actionSelect:
		sql, err = b.renderSelect()
	case actionInsert:
		sql, err = b.renderInsert()
	case actionUpdate:
		sql, err = b.renderUpdate()
	case actionDelete:
		sql, err = b.renderDelete()
	default:
		return "", nil, fmt.Errorf("%w: no action set", ErrInvalidStatement)
	}
	if err != nil {
		return "", nil, err
	}
	return sql, b.binder.values, nil
}

func (b *Builder) renderSelect() (string, error) {
	if len(b.model.tables) == 0 {
		return "", fmt.Errorf("%w: no table specified", ErrInvalidStatement)
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	if b.model.distinct {
		sb.WriteString("DISTINCT ")
	}

	cols, err := b.columnList()
	if err != nil {
		return "", err
	}
	sb.WriteString(cols)
	sb.WriteString(" FROM ")
	sb.WriteString(strings.Join(b.model.tables, ","))

	for _, part := range []func() (string, error){b.joinClause, b.whereClause, b.orderClause, b.groupClause} {
		s, err := part()
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	if b.model.limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(b.model.limit))
	}
	sb.WriteString(";")
	return sb.String(), nil
}

func (b *Builder) renderInsert() (string, error) {
	if len(b.model.tables) == 0 {
		return "", fmt.Errorf("%w: no table specified", ErrInvalidStatement)
	}
	if len(b.model.data) == 0 {
		return "", fmt.Errorf("%w: no insert data", ErrInvalidStatement)
	}

	cols := make([]string, 0, len(b.model.data))
	tags := make([]string, 0, len(b.model.data))
	for _, f := range b.model.data {
		col, err := b.dialect.Quote(f.Name)
		if err != nil {
			return "", err
		}
		cols = append(cols, col)
		tags = append(tags, ":"+b.binder.bind(f.Name, f.Value))
	}

	return "INSERT INTO " + b.model.tables[0] +
		"(" + strings.Join(cols, ",") + ") VALUES (" + strings.Join(tags, ",") + ");", nil
}

func (b *Builder) renderUpdate() (string, error) {
	if len(b.model.tables) == 0 {
		return "", fmt.Errorf("%w: no table specified", ErrInvalidStatement)
	}
	if len(b.model.data) == 0 {
		return "", fmt.Errorf("%w: no update data", ErrInvalidStatement)
	}

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(b.model.tables[0])

	joins, err := b.joinClause()
	if err != nil {
		return "", err
	}
	sb.WriteString(joins)

	sb.WriteString(" SET ")
	parts := make([]string, 0, len(b.model.data))
	for _, f := range b.model.data {
		col, err := b.dialect.Quote(f.Name)
		if err != nil {
			return "", err
		}
		parts = append(parts, col+"=:"+b.binder.bind(f.Name, f.Value))
	}
	sb.WriteString(strings.Join(parts, ","))

	where, err := b.whereClause()
	if err != nil {
		return "", err
	}
	sb.WriteString(where)
	sb.WriteString(";")
	return sb.String(), nil
}

func (b *Builder) renderDelete() (string, error) {
	if len(b.model.tables) == 0 {
		return "", fmt.Errorf("%w: no table specified", ErrInvalidStatement)
	}

	var sb strings.Builder
	sb.WriteString("DELETE")
	// Multi-table delete syntax needs the target table repeated before FROM;
	// single-table delete must not repeat it.
	if len(b.model.joins) > 0 {
		sb.WriteString(" ")
		sb.WriteString(b.model.tables[0])
	}
	sb.WriteString(" FROM ")
	sb.WriteString(b.model.tables[0])

	joins, err := b.joinClause()
	if err != nil {
		return "", err
	}
	sb.WriteString(joins)

	where, err := b.whereClause()
	if err != nil {
		return "", err
	}
	sb.WriteString(where)
	sb.WriteString(";")
	return sb.String(), nil
}

// columnList renders the SELECT projection; "*" when no columns were
// accumulated.
func (b *Builder) columnList() (string, error) {
	if len(b.model.columns) == 0 {
		return "*", nil
	}
	parts := make([]string, 0, len(b.model.columns))
	for _, c := range b.model.columns {
		col, err := b.dialect.Quote(c.name)
		if err != nil {
			return "", err
		}
		if c.alias != "" {
			col += " AS " + c.alias
		}
		parts = append(parts, col)
	}
	return strings.Join(parts, ","), nil
}

// joinClause renders all JOIN clauses in order. Local and joined field names
// are qualified with their table before quoting; callers never pre-qualify
// them.
func (b *Builder) joinClause() (string, error) {
	var sb strings.Builder
	for _, j := range b.model.joins {
		local, err := b.dialect.Quote(b.model.tables[0] + "." + j.localField)
		if err != nil {
			return "", err
		}
		joined, err := b.dialect.Quote(j.table + "." + j.joinedField)
		if err != nil {
			return "", err
		}
		sb.WriteString(" ")
		sb.WriteString(j.joinType)
		sb.WriteString(" JOIN ")
		sb.WriteString(j.table)
		sb.WriteString(" ON ")
		sb.WriteString(local)
		sb.WriteString("=")
		sb.WriteString(joined)
	}
	return sb.String(), nil
}

// whereClause compiles the condition tree. An empty tree yields no WHERE
// clause at all. A result already wrapped by the tree builder loses one
// redundant outer parenthesis pair, so a single top-level OR/AND group is
// not doubly nested.
func (b *Builder) whereClause() (string, error) {
	if b.model.where.empty() {
		return "", nil
	}
	s, err := b.model.where.build(b.dialect, b.binder, " AND ")
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", nil
	}
	if strings.HasPrefix(s, "(") {
		s = s[1 : len(s)-1]
	}
	return " WHERE " + s, nil
}

func (b *Builder) orderClause() (string, error) {
	if len(b.model.orderBy) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(b.model.orderBy))
	for _, e := range b.model.orderBy {
		col, err := b.dialect.Quote(e.column)
		if err != nil {
			return "", err
		}
		if e.direction != "" {
			col += " " + strings.ToUpper(e.direction)
		}
		parts = append(parts, col)
	}
	return " ORDER BY " + strings.Join(parts, ","), nil
}

func (b *Builder) groupClause() (string, error) {
	if len(b.model.groupBy) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(b.model.groupBy))
	for _, name := range b.model.groupBy {
		col, err := b.dialect.Quote(name)
		if err != nil {
			return "", err
		}
		parts = append(parts, col)
	}
	return " GROUP BY " + strings.Join(parts, ","), nil
}
