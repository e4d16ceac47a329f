// Package ast defines the immutable operation-node tree that represents SQL
// statements and fragments independently of any database engine. Nodes are
// built through per-variant factory functions, identified by a closed Kind
// discriminator, and consumed read-only by the dialect compilers.
//
// Nodes must be treated as immutable after construction: a factory is the
// only supported way to produce a node, and no field of a returned node (or
// of any nested node) may be modified afterwards. Two nodes with identical
// fields are interchangeable; equality is structural, never referential.
package ast

// Kind identifies the variant of an operation node. The set of kinds is
// closed: every value is declared in this package and every compiler pass
// can enumerate them at compile time.
type Kind string

const (
	KindIdentifier     Kind = "identifier"
	KindTable          Kind = "table"
	KindColumn         Kind = "column"
	KindAlias          Kind = "alias"
	KindValue          Kind = "value"
	KindValueList      Kind = "value-list"
	KindRaw            Kind = "raw"
	KindComparison     Kind = "comparison"
	KindAnd            Kind = "and"
	KindOr             Kind = "or"
	KindNot            Kind = "not"
	KindWhere          Kind = "where"
	KindJoin           Kind = "join"
	KindOrderBy        Kind = "order-by"
	KindOrderByItem    Kind = "order-by-item"
	KindLimit          Kind = "limit"
	KindOffset         Kind = "offset"
	KindAssignment     Kind = "assignment"
	KindOnConflict     Kind = "on-conflict"
	KindReturning      Kind = "returning"
	KindSelectQuery    Kind = "select-query"
	KindInsertQuery    Kind = "insert-query"
	KindUpdateQuery    Kind = "update-query"
	KindDeleteQuery    Kind = "delete-query"
	KindAlterTable     Kind = "alter-table"
	KindDropConstraint Kind = "drop-constraint"
	KindDropColumn     Kind = "drop-column"
)

// Node is the interface implemented by every operation node. The unexported
// method seals the set: node variants cannot be declared outside this
// package.
type Node interface {
	Kind() Kind
	node()
}

// ComparisonOperator is a binary comparison rendered between two operands.
type ComparisonOperator string

const (
	OpEq      ComparisonOperator = "="
	OpNe      ComparisonOperator = "!="
	OpGt      ComparisonOperator = ">"
	OpGe      ComparisonOperator = ">="
	OpLt      ComparisonOperator = "<"
	OpLe      ComparisonOperator = "<="
	OpIn      ComparisonOperator = "IN"
	OpNotIn   ComparisonOperator = "NOT IN"
	OpLike    ComparisonOperator = "LIKE"
	OpNotLike ComparisonOperator = "NOT LIKE"
	OpIs      ComparisonOperator = "IS"
	OpIsNot   ComparisonOperator = "IS NOT"
)

// JoinType is the SQL join keyword emitted before the joined table.
type JoinType string

const (
	InnerJoin JoinType = "INNER JOIN"
	LeftJoin  JoinType = "LEFT JOIN"
	RightJoin JoinType = "RIGHT JOIN"
	FullJoin  JoinType = "FULL JOIN"
	CrossJoin JoinType = "CROSS JOIN"
)

// Direction is the sort direction of an ORDER BY item.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)
