package dialect

// Built-in dialects. "none" emits identifiers verbatim; "sql" and "sqlite"
// share the ANSI double-quote convention.
var (
	// None performs no identifier quoting.
	None = &Dialect{Name: "none"}

	// SQL is the ANSI standard double-quote dialect.
	SQL = &Dialect{Name: "sql", Identifiers: IdentifierConfig{Quote: `"`, QuoteEnd: `"`}}

	// SQLite follows the ANSI double-quote convention.
	SQLite = &Dialect{Name: "sqlite", Identifiers: IdentifierConfig{Quote: `"`, QuoteEnd: `"`}}

	// MySQL quotes identifiers with backticks.
	MySQL = &Dialect{Name: "mysql", Identifiers: IdentifierConfig{Quote: "`", QuoteEnd: "`"}}

	// MSSQL quotes identifiers with square brackets.
	MSSQL = &Dialect{Name: "mssql", Identifiers: IdentifierConfig{Quote: "[", QuoteEnd: "]"}}
)

func init() {
	Register(None)
	Register(SQL)
	Register(SQLite)
	Register(MySQL)
	Register(MSSQL)
}
