// Package loader compiles YAML statement descriptions into an accumulated
// Builder. Documents are decoded through yaml.Node so that mapping order is
// preserved: column, data and condition order in the document is the order
// in the generated SQL.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/efoft/query-builder/pkg/qb"
)

// Connective markers inside a "where" mapping. The mapped value holds the
// sub-conditions combined with OR respectively AND.
const (
	markerOr  = "$or"
	markerAnd = "$and"
)

// LoadFile reads a statement description file and accumulates it onto a new
// Builder. fallbackDialect applies when the document carries no dialect key.
func LoadFile(path, fallbackDialect string) (*qb.Builder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read statement file: %w", err)
	}
	b, err := Compile(data, fallbackDialect)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Compile parses a statement description document and accumulates it onto a
// new Builder.
func Compile(data []byte, fallbackDialect string) (*qb.Builder, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty statement document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("statement document must be a mapping")
	}

	dialectName := fallbackDialect
	if n := mappingValue(root, "dialect"); n != nil {
		dialectName = n.Value
	}
	b, err := qb.New(dialectName)
	if err != nil {
		return nil, err
	}

	action := ""
	var loopErr error
	mappingPairs(root)(func(key string, value *yaml.Node) bool {
		if key == "action" {
			action = value.Value
			return true
		}
		if err := applyField(b, key, value); err != nil {
			loopErr = err
			return false
		}
		return true
	})
	if loopErr != nil {
		return nil, loopErr
	}
	// The verb is applied last so that it wins over the verb implied by
	// accumulating "data", regardless of document key order.
	if action != "" {
		if err := applyAction(b, action); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// applyField accumulates one top-level document field onto the builder.
func applyField(b *qb.Builder, key string, value *yaml.Node) error {
	switch key {
	case "dialect":
		return nil // handled at construction
	case "tables", "table", "from":
		b.Table(stringList(value)...)
	case "columns":
		return applyColumns(b, value)
	case "distinct":
		if value.Value == "true" {
			b.Distinct()
		}
	case "joins":
		return applyJoins(b, value)
	case "where":
		cond, err := condFromNode(value)
		if err != nil {
			return err
		}
		b.Where(cond)
	case "order_by":
		return applyOrderBy(b, value)
	case "group_by":
		b.GroupBy(stringList(value)...)
	case "limit":
		var n int
		if err := value.Decode(&n); err != nil {
			return fmt.Errorf("invalid limit: %w", err)
		}
		b.Limit(n)
	case "data":
		// Accumulated through Insert; the document's "action" key is applied
		// afterwards and decides whether this renders as INSERT or UPDATE.
		fields, err := fieldList(value)
		if err != nil {
			return err
		}
		b.Insert(fields...)
	default:
		return fmt.Errorf("unknown statement field %q", key)
	}
	return nil
}

func applyAction(b *qb.Builder, action string) error {
	switch action {
	case "select":
		b.Select()
	case "insert":
		b.Insert()
	case "update":
		b.Update()
	case "delete":
		b.Delete()
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	return nil
}

// applyColumns handles a sequence of bare column names or {column, alias}
// mappings.
func applyColumns(b *qb.Builder, n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode {
		return fmt.Errorf("columns must be a sequence")
	}
	for _, item := range n.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			b.Select(item.Value)
		case yaml.MappingNode:
			col := mappingValue(item, "column")
			if col == nil {
				return fmt.Errorf("column entry missing \"column\"")
			}
			if alias := mappingValue(item, "alias"); alias != nil {
				b.SelectAs(col.Value, alias.Value)
			} else {
				b.Select(col.Value)
			}
		default:
			return fmt.Errorf("invalid column entry")
		}
	}
	return nil
}

func applyJoins(b *qb.Builder, n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode {
		return fmt.Errorf("joins must be a sequence")
	}
	for _, item := range n.Content {
		if item.Kind != yaml.MappingNode {
			return fmt.Errorf("invalid join entry")
		}
		table := mappingValue(item, "table")
		local := mappingValue(item, "local")
		joined := mappingValue(item, "joined")
		if table == nil || local == nil || joined == nil {
			return fmt.Errorf("join entry needs table, local and joined fields")
		}
		joinType := ""
		if t := mappingValue(item, "type"); t != nil {
			joinType = t.Value
		}
		b.Join(table.Value, local.Value, joined.Value, joinType)
	}
	return nil
}

func applyOrderBy(b *qb.Builder, n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode {
		return fmt.Errorf("order_by must be a sequence")
	}
	for _, item := range n.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			b.OrderBy(item.Value)
		case yaml.MappingNode:
			col := mappingValue(item, "column")
			if col == nil {
				return fmt.Errorf("order entry missing \"column\"")
			}
			dir := ""
			if d := mappingValue(item, "direction"); d != nil {
				dir = d.Value
			}
			b.OrderBy(col.Value, dir)
		default:
			return fmt.Errorf("invalid order entry")
		}
	}
	return nil
}

// condFromNode translates a condition node into the builder's condition
// tree. Mappings keep document order; $or and $and keys open nested groups;
// sequence entries are implicit AND branches.
func condFromNode(n *yaml.Node) (*qb.Cond, error) {
	conds, err := condList(n)
	if err != nil {
		return nil, err
	}
	return qb.And(conds...), nil
}

func condList(n *yaml.Node) ([]*qb.Cond, error) {
	switch n.Kind {
	case yaml.MappingNode:
		var conds []*qb.Cond
		var loopErr error
		mappingPairs(n)(func(key string, value *yaml.Node) bool {
			c, err := condEntry(key, value)
			if err != nil {
				loopErr = err
				return false
			}
			conds = append(conds, c)
			return true
		})
		if loopErr != nil {
			return nil, loopErr
		}
		return conds, nil
	case yaml.SequenceNode:
		var conds []*qb.Cond
		for _, item := range n.Content {
			sub, err := condList(item)
			if err != nil {
				return nil, err
			}
			conds = append(conds, qb.And(sub...))
		}
		return conds, nil
	default:
		return nil, fmt.Errorf("invalid condition structure")
	}
}

func condEntry(key string, value *yaml.Node) (*qb.Cond, error) {
	switch key {
	case markerOr:
		sub, err := condList(value)
		if err != nil {
			return nil, err
		}
		return qb.Or(sub...), nil
	case markerAnd:
		sub, err := condList(value)
		if err != nil {
			return nil, err
		}
		return qb.And(sub...), nil
	default:
		var v any
		if err := value.Decode(&v); err != nil {
			return nil, fmt.Errorf("invalid condition value for %q: %w", key, err)
		}
		return qb.F(key, v), nil
	}
}

// fieldList decodes an ordered mapping into insert/update fields.
func fieldList(n *yaml.Node) ([]qb.Field, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("data must be a mapping")
	}
	var fields []qb.Field
	var loopErr error
	mappingPairs(n)(func(key string, value *yaml.Node) bool {
		var v any
		if err := value.Decode(&v); err != nil {
			loopErr = fmt.Errorf("invalid data value for %q: %w", key, err)
			return false
		}
		fields = append(fields, qb.Field{Name: key, Value: v})
		return true
	})
	if loopErr != nil {
		return nil, loopErr
	}
	return fields, nil
}

// stringList accepts a scalar (possibly comma-joined) or a sequence of
// scalars.
func stringList(n *yaml.Node) []string {
	if n.Kind == yaml.SequenceNode {
		out := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			out = append(out, item.Value)
		}
		return out
	}
	return []string{n.Value}
}

// mappingPairs iterates a mapping node's key/value pairs in document order.
func mappingPairs(n *yaml.Node) func(yield func(string, *yaml.Node) bool) {
	return func(yield func(string, *yaml.Node) bool) {
		for i := 0; i+1 < len(n.Content); i += 2 {
			if !yield(n.Content[i].Value, n.Content[i+1]) {
				return
			}
		}
	}
}

// mappingValue returns the value node for a key, or nil when absent.
func mappingValue(n *yaml.Node, key string) *yaml.Node {
	var found *yaml.Node
	mappingPairs(n)(func(k string, v *yaml.Node) bool {
		if k == key {
			found = v
			return false
		}
		return true
	})
	return found
}
