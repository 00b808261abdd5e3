package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efoft/query-builder/pkg/dialect"
)

func compile(t *testing.T, doc string) (string, map[string]any) {
	t.Helper()
	b, err := Compile([]byte(doc), "mysql")
	require.NoError(t, err)
	sql, bindings, err := b.Build()
	require.NoError(t, err)
	return sql, bindings
}

func TestCompileSelect(t *testing.T) {
	sql, bindings := compile(t, `
action: select
tables: t1,t2
columns:
  - column: t2.age
    alias: a
  - column: t1.name
    alias: n
where:
  id: 13
`)
	assert.Equal(t, "SELECT `t2`.`age` AS a,`t1`.`name` AS n FROM t1,t2 WHERE `id`=:id;", sql)
	assert.Equal(t, map[string]any{"id": 13}, bindings)
}

func TestCompileSelectFullClauseSet(t *testing.T) {
	sql, bindings := compile(t, `
action: select
tables: [t1]
columns:
  - name
  - age
distinct: true
joins:
  - table: t2
    local: id
    joined: t1_id
    type: inner
where:
  age: /3.*/
order_by:
  - column: age
    direction: desc
  - name
group_by: name
limit: 5
`)
	assert.Equal(t,
		"SELECT DISTINCT `name`,`age` FROM t1"+
			" INNER JOIN t2 ON `t1`.`id`=`t2`.`t1_id`"+
			" WHERE `age` LIKE :age"+
			" ORDER BY `age` DESC,`name`"+
			" GROUP BY `name`"+
			" LIMIT 5;",
		sql)
	assert.Equal(t, map[string]any{"age": "3%"}, bindings)
}

func TestCompileOrConnective(t *testing.T) {
	sql, bindings := compile(t, `
action: update
table: t1
data:
  age: 34
where:
  $or:
    id: 13
    phone: /+7916.*/
`)
	assert.Equal(t, "UPDATE t1 SET `age`=:age WHERE `id`=:id OR `phone` LIKE :phone;", sql)
	assert.Equal(t, map[string]any{"age": 34, "id": 13, "phone": "+7916%"}, bindings)
}

func TestCompileNestedConnectives(t *testing.T) {
	sql, _ := compile(t, `
action: select
table: t1
where:
  active: 1
  $or:
    id: 13
    $and:
      age: 30
      name: John
`)
	assert.Equal(t,
		"SELECT * FROM t1 WHERE `active`=:active AND (`id`=:id OR (`age`=:age AND `name`=:name));",
		sql)
}

func TestCompileImplicitAndBranches(t *testing.T) {
	// Sequence entries are implicit AND branches.
	sql, _ := compile(t, `
action: select
table: t1
where:
  $or:
    - a: 1
      b: 2
    - c: 3
`)
	assert.Equal(t, "SELECT * FROM t1 WHERE (`a`=:a AND `b`=:b) OR `c`=:c;", sql)
}

func TestCompileInsert(t *testing.T) {
	sql, bindings := compile(t, `
action: insert
table: t1
data:
  age: 34
  name: John
`)
	assert.Equal(t, "INSERT INTO t1(`age`,`name`) VALUES (:age,:name);", sql)
	assert.Equal(t, map[string]any{"age": 34, "name": "John"}, bindings)
}

func TestCompileDelete(t *testing.T) {
	sql, bindings := compile(t, `
action: delete
from: t3
where:
  id: 13
`)
	assert.Equal(t, "DELETE FROM t3 WHERE `id`=:id;", sql)
	assert.Equal(t, map[string]any{"id": 13}, bindings)
}

func TestCompileDialectOverride(t *testing.T) {
	b, err := Compile([]byte("dialect: mssql\naction: select\ntable: t1\ncolumns: [name]\n"), "mysql")
	require.NoError(t, err)
	sql, _, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT [name] FROM t1;", sql)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "bogus: 1\n"},
		{"unknown action", "action: merge\n"},
		{"scalar where", "where: 13\n"},
		{"join missing fields", "joins:\n  - table: t2\n"},
		{"sequence document", "- a\n- b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile([]byte(tt.doc), "mysql")
			assert.Error(t, err)
		})
	}
}

func TestCompileUnknownDialect(t *testing.T) {
	_, err := Compile([]byte("dialect: oracle\naction: select\ntable: t1\n"), "mysql")
	assert.ErrorIs(t, err, dialect.ErrUnknownDialect)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stmt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("action: select\ntable: t1\n"), 0644))

	b, err := LoadFile(path, "none")
	require.NoError(t, err)
	sql, _, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t1;", sql)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), "none")
	assert.Error(t, err)
}
