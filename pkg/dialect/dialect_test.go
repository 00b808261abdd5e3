package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		dialect string
		name    string
		want    string
	}{
		{"none", "age", "age"},
		{"none", "t.age", "t.age"},
		{"mysql", "age", "`age`"},
		{"mysql", "t1.name", "`t1`.`name`"},
		{"sql", "t1.name", `"t1"."name"`},
		{"sqlite", "t1.name", `"t1"."name"`},
		{"mssql", "t1.name", "[t1].[name]"},
		{"mysql", "*", "*"},
		{"mysql", "t1.*", "`t1`.*"},
		{"mysql", "COUNT(age)", "COUNT(`age`)"},
		{"mysql", "COUNT(*)", "COUNT(*)"},
		{"mssql", "SUM(t.amount)", "SUM([t].[amount])"},
		{"mysql", " t1 . name ", "`t1`.`name`"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect+"/"+tt.name, func(t *testing.T) {
			d, err := Get(tt.dialect)
			require.NoError(t, err)

			got, err := d.Quote(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuoteMalformed(t *testing.T) {
	d, err := Get("mysql")
	require.NoError(t, err)

	for _, name := range []string{"SUM(LENGTH(a))", "COUNT(a", "f()(", "a)b("} {
		t.Run(name, func(t *testing.T) {
			_, err := d.Quote(name)
			assert.ErrorIs(t, err, ErrMalformedIdentifier)
		})
	}
}

func TestGet(t *testing.T) {
	t.Run("known", func(t *testing.T) {
		d, err := Get("MySQL") // case insensitive
		require.NoError(t, err)
		assert.Equal(t, "mysql", d.Name)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Get("oracle")
		assert.ErrorIs(t, err, ErrUnknownDialect)
	})
}

func TestList(t *testing.T) {
	names := List()
	assert.Subset(t, names, []string{"mssql", "mysql", "none", "sql", "sqlite"})
	assert.IsIncreasing(t, names)
}

func TestRegister(t *testing.T) {
	Register(&Dialect{Name: "testdialect", Identifiers: IdentifierConfig{Quote: "<", QuoteEnd: ">"}})

	d, err := Get("testdialect")
	require.NoError(t, err)

	got, err := d.Quote("a.b")
	require.NoError(t, err)
	assert.Equal(t, "<a>.<b>", got)
}
