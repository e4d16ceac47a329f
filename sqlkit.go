// Package sqlkit provides the execution core of a SQL toolkit for Go:
// an immutable statement tree, per-dialect compilation to parameterized
// SQL, and a driver layer with pooled or single-connection execution,
// transactions, streaming, and OpenTelemetry tracing out of the box.
package sqlkit

import (
	"github.com/coregx/sqlkit/internal/ast"
	"github.com/coregx/sqlkit/internal/compiler"
	"github.com/coregx/sqlkit/internal/core"
)

type (
	// Node is one immutable vertex of a statement tree.
	Node = ast.Node
	// Kind discriminates the node variants.
	Kind = ast.Kind
	// ComparisonOperator names a binary comparison.
	ComparisonOperator = ast.ComparisonOperator
	// JoinType names a join flavor.
	JoinType = ast.JoinType
	// Direction orders a sort key.
	Direction = ast.Direction
	// SelectOption configures an optional clause of a SELECT statement.
	SelectOption = ast.SelectOption

	// Node variants, aliased so callers can name them in literals.
	IdentifierNode  = ast.IdentifierNode
	TableNode       = ast.TableNode
	ColumnNode      = ast.ColumnNode
	AliasNode       = ast.AliasNode
	ValueNode       = ast.ValueNode
	ValueListNode   = ast.ValueListNode
	RawNode         = ast.RawNode
	ComparisonNode  = ast.ComparisonNode
	AndNode         = ast.AndNode
	OrNode          = ast.OrNode
	NotNode         = ast.NotNode
	WhereNode       = ast.WhereNode
	JoinNode        = ast.JoinNode
	OrderByNode     = ast.OrderByNode
	OrderByItemNode = ast.OrderByItemNode
	LimitNode       = ast.LimitNode
	OffsetNode      = ast.OffsetNode
	AssignmentNode  = ast.AssignmentNode
	OnConflictNode  = ast.OnConflictNode
	ReturningNode   = ast.ReturningNode
	SelectQueryNode = ast.SelectQueryNode
	InsertQueryNode = ast.InsertQueryNode
	UpdateQueryNode = ast.UpdateQueryNode
	DeleteQueryNode = ast.DeleteQueryNode
	AlterTableNode  = ast.AlterTableNode

	// CompiledQuery is the executable output of compilation: SQL text plus
	// its positional parameters.
	CompiledQuery = compiler.CompiledQuery
	// QueryCompiler renders statement trees for one dialect.
	QueryCompiler = compiler.QueryCompiler
	// UnsupportedNodeError reports a node kind the target dialect cannot
	// render.
	UnsupportedNodeError = compiler.UnsupportedNodeError

	// Driver manages connection acquisition, transactions, and teardown.
	Driver = core.Driver
	// Config selects and configures the driver's backend.
	Config = core.Config
	// Option is a functional option for configuring a Driver.
	Option = core.Option
	// Connection executes compiled statements on one native connection.
	Connection = core.Connection
	// Result is the normalized outcome of one executed statement.
	Result = core.Result
	// Row is a single result row keyed by column name.
	Row = core.Row
	// ResultStream iterates a streamed result set in chunks.
	ResultStream = core.ResultStream
	// TxOptions carries transaction isolation and access mode.
	TxOptions = core.TxOptions
	// IsolationLevel names a SQL transaction isolation level.
	IsolationLevel = core.IsolationLevel
	// QueryHook observes every executed statement.
	QueryHook = core.QueryHook
	// QueryEvent describes one executed statement to hooks.
	QueryEvent = core.QueryEvent

	// Dialect bundles the per-engine collaborators.
	Dialect = core.Dialect
	// Adapter reports engine capabilities.
	Adapter = core.Adapter
	// Introspector exposes minimal schema discovery.
	Introspector = core.Introspector

	// PostgresDialect targets PostgreSQL.
	PostgresDialect = core.PostgresDialect
	// MySQLDialect targets MySQL / MariaDB.
	MySQLDialect = core.MySQLDialect
	// SQLiteDialect targets SQLite.
	SQLiteDialect = core.SQLiteDialect
)

// Re-export statement tree constructors.
var (
	NewIdentifier          = ast.NewIdentifier
	NewTable               = ast.NewTable
	NewSchemaTable         = ast.NewSchemaTable
	NewColumn              = ast.NewColumn
	NewQualifiedColumn     = ast.NewQualifiedColumn
	NewAlias               = ast.NewAlias
	NewValue               = ast.NewValue
	NewValueList           = ast.NewValueList
	NewRaw                 = ast.NewRaw
	NewComparison          = ast.NewComparison
	NewAnd                 = ast.NewAnd
	NewOr                  = ast.NewOr
	NewNot                 = ast.NewNot
	NewWhere               = ast.NewWhere
	NewJoin                = ast.NewJoin
	NewOrderBy             = ast.NewOrderBy
	NewOrderByItem         = ast.NewOrderByItem
	NewLimit               = ast.NewLimit
	NewOffset              = ast.NewOffset
	NewAssignment          = ast.NewAssignment
	NewOnConflictDoNothing = ast.NewOnConflictDoNothing
	NewOnConflictDoUpdate  = ast.NewOnConflictDoUpdate
	NewReturning           = ast.NewReturning
	NewSelectQuery         = ast.NewSelectQuery
	NewInsertQuery         = ast.NewInsertQuery
	NewUpdateQuery         = ast.NewUpdateQuery
	NewDeleteQuery         = ast.NewDeleteQuery
	NewAlterTable          = ast.NewAlterTable
	NewDropConstraint      = ast.NewDropConstraint
	NewDropColumn          = ast.NewDropColumn
)

// Re-export optional SELECT clauses.
var (
	WithDistinct   = ast.WithDistinct
	WithSelections = ast.WithSelections
	WithJoin       = ast.WithJoin
	WithWhere      = ast.WithWhere
	WithGroupBy    = ast.WithGroupBy
	WithOrderBy    = ast.WithOrderBy
	WithLimit      = ast.WithLimit
	WithOffset     = ast.WithOffset
)

// Comparison operators, join flavors, and sort directions.
const (
	OpEq      = ast.OpEq
	OpNe      = ast.OpNe
	OpGt      = ast.OpGt
	OpGe      = ast.OpGe
	OpLt      = ast.OpLt
	OpLe      = ast.OpLe
	OpIn      = ast.OpIn
	OpNotIn   = ast.OpNotIn
	OpLike    = ast.OpLike
	OpNotLike = ast.OpNotLike
	OpIs      = ast.OpIs
	OpIsNot   = ast.OpIsNot

	InnerJoin = ast.InnerJoin
	LeftJoin  = ast.LeftJoin
	RightJoin = ast.RightJoin
	FullJoin  = ast.FullJoin
	CrossJoin = ast.CrossJoin

	Ascending  = ast.Ascending
	Descending = ast.Descending
)

// Transaction isolation levels.
const (
	IsolationDefault     = core.IsolationDefault
	LevelReadUncommitted = core.LevelReadUncommitted
	LevelReadCommitted   = core.LevelReadCommitted
	LevelRepeatableRead  = core.LevelRepeatableRead
	LevelSerializable    = core.LevelSerializable
)

// Re-export driver constructors and configuration options.
var (
	NewDriver     = core.NewDriver
	WithLogger    = core.WithLogger
	WithTracer    = core.WithTracer
	WithQueryHook = core.WithQueryHook
	WithSanitizer = core.WithSanitizer
)

// Re-export driver sentinel errors for errors.Is checks.
var (
	ErrStreamingNotSupported = core.ErrStreamingNotSupported
	ErrInvalidChunkSize      = core.ErrInvalidChunkSize
	ErrDriverDestroyed       = core.ErrDriverDestroyed
	ErrNoBackendConfigured   = core.ErrNoBackendConfigured
	ErrAmbiguousBackend      = core.ErrAmbiguousBackend
	ErrConnectionDetached    = core.ErrConnectionDetached
)
