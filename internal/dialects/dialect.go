// Package dialects provides database-specific SQL rendering policies for
// PostgreSQL, MySQL, and SQLite: identifier quoting, parameter placeholder
// syntax, UPSERT rendering, and RETURNING support.
package dialects

// Dialect defines database-specific rendering behaviors. A compiler applies
// one dialect uniformly across a whole statement; styles are never mixed.
type Dialect interface {
	QuoteIdentifier(string) string
	Placeholder(int) string
	UpsertSQL(string, []string, []string) string
	SupportsReturning() bool
}

var dialects = make(map[string]Dialect)

// RegisterDialect registers a database dialect by driver name.
func RegisterDialect(name string, d Dialect) {
	dialects[name] = d
}

// GetDialect retrieves a registered dialect by driver name, panics if not found.
func GetDialect(name string) Dialect {
	if d, ok := dialects[name]; ok {
		return d
	}
	panic("unsupported dialect: " + name)
}
