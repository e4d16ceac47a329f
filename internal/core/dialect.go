package core

import (
	"context"

	"github.com/coregx/sqlkit/internal/ast"
	"github.com/coregx/sqlkit/internal/compiler"
	"github.com/coregx/sqlkit/internal/dialects"
)

// Dialect bundles everything needed to target one database engine: a driver
// factory, a query compiler, and the adapter/introspector collaborators.
type Dialect interface {
	CreateDriver(cfg Config, opts ...Option) (*Driver, error)
	CreateQueryCompiler() compiler.QueryCompiler
	CreateAdapter() Adapter
	CreateIntrospector(d *Driver) Introspector
}

// Adapter reports engine capabilities the builder layer keys off.
type Adapter interface {
	SupportsReturning() bool
	SupportsTransactionalDDL() bool
}

// Introspector exposes minimal schema discovery. Full introspection is an
// external collaborator; only table listing lives here.
type Introspector interface {
	GetTables(ctx context.Context) ([]string, error)
}

// PostgresDialect targets PostgreSQL, the reference pooled backend.
type PostgresDialect struct{}

func (PostgresDialect) CreateDriver(cfg Config, opts ...Option) (*Driver, error) {
	return NewDriver(cfg, opts...)
}

func (PostgresDialect) CreateQueryCompiler() compiler.QueryCompiler {
	return compiler.New(dialects.GetDialect("postgres"))
}

func (PostgresDialect) CreateAdapter() Adapter {
	return dialectAdapter{returning: true, transactionalDDL: true}
}

func (PostgresDialect) CreateIntrospector(d *Driver) Introspector {
	return &schemaIntrospector{
		driver:     d,
		tablesSQL:  "select table_name from information_schema.tables where table_schema = 'public' order by table_name",
		nameColumn: "table_name",
	}
}

// MySQLDialect targets MySQL / MariaDB.
type MySQLDialect struct{}

func (MySQLDialect) CreateDriver(cfg Config, opts ...Option) (*Driver, error) {
	return NewDriver(cfg, opts...)
}

func (MySQLDialect) CreateQueryCompiler() compiler.QueryCompiler {
	return compiler.New(dialects.GetDialect("mysql"))
}

func (MySQLDialect) CreateAdapter() Adapter {
	return dialectAdapter{}
}

func (MySQLDialect) CreateIntrospector(d *Driver) Introspector {
	return &schemaIntrospector{
		driver:     d,
		tablesSQL:  "select table_name from information_schema.tables where table_schema = database() order by table_name",
		nameColumn: "table_name",
	}
}

// SQLiteDialect targets SQLite. SQLite has no ALTER TABLE DROP CONSTRAINT,
// so its compiler refuses that node kind outright.
type SQLiteDialect struct{}

func (SQLiteDialect) CreateDriver(cfg Config, opts ...Option) (*Driver, error) {
	return NewDriver(cfg, opts...)
}

func (SQLiteDialect) CreateQueryCompiler() compiler.QueryCompiler {
	return compiler.New(dialects.GetDialect("sqlite"), compiler.WithoutKinds(ast.KindDropConstraint))
}

func (SQLiteDialect) CreateAdapter() Adapter {
	return dialectAdapter{returning: true, transactionalDDL: true}
}

func (SQLiteDialect) CreateIntrospector(d *Driver) Introspector {
	return &schemaIntrospector{
		driver:     d,
		tablesSQL:  "select name from sqlite_master where type = 'table' order by name",
		nameColumn: "name",
	}
}

type dialectAdapter struct {
	returning        bool
	transactionalDDL bool
}

func (a dialectAdapter) SupportsReturning() bool        { return a.returning }
func (a dialectAdapter) SupportsTransactionalDDL() bool { return a.transactionalDDL }

// schemaIntrospector lists tables through a short-lived acquisition.
type schemaIntrospector struct {
	driver     *Driver
	tablesSQL  string
	nameColumn string
}

func (i *schemaIntrospector) GetTables(ctx context.Context) ([]string, error) {
	conn, err := i.driver.AcquireConnection(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = i.driver.ReleaseConnection(conn) }()

	res, err := conn.ExecuteQuery(ctx, &compiler.CompiledQuery{SQL: i.tablesSQL, Params: []any{}})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(res.Rows))
	for _, row := range res.Rows {
		if name, ok := row[i.nameColumn].(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}
