/*
Package qb compiles a fluently accumulated statement description into
parameterized SQL text with named placeholders, plus the mapping from
placeholder tag to bound value. No literal value ever appears inline in the
generated SQL.

A Builder accumulates one statement at a time:

	b, err := qb.New("mysql")
	if err != nil { ... }
	sql, bindings, err := b.From("t1,t2").
		SelectAs("t2.age", "a").
		SelectAs("t1.name", "n").
		Where(qb.F("id", 13)).
		Build()

	// sql      = SELECT `t2`.`age` AS a,`t1`.`name` AS n FROM t1,t2 WHERE `id`=:id;
	// bindings = map[string]any{"id": 13}

WHERE logic is a tree of AND/OR groups built with F, Like, And and Or.
String values of the form /pattern/ or /pattern/i are recognized once, at
condition construction, and compiled to LIKE with ".*" wildcards replaced
by "%".

A Builder owns its statement state and binding mapping exclusively. Use is
strictly sequential: accumulate, Build once, then Reset before reuse.
Sharing one Builder across goroutines without external synchronization is
not supported.
*/
package qb
