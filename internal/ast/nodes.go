package ast

// IdentifierNode names a single SQL identifier: a table, column, constraint
// or alias. Quoting is a compiler concern, so the name is stored verbatim.
type IdentifierNode struct {
	Name string
}

func (*IdentifierNode) Kind() Kind { return KindIdentifier }
func (*IdentifierNode) node()      {}

// TableNode references a table, optionally qualified by a schema.
type TableNode struct {
	Schema *IdentifierNode // nil when unqualified
	Table  *IdentifierNode
}

func (*TableNode) Kind() Kind { return KindTable }
func (*TableNode) node()      {}

// ColumnNode references a column, optionally qualified by a table or alias.
type ColumnNode struct {
	Table  *IdentifierNode // nil when unqualified
	Column *IdentifierNode
}

func (*ColumnNode) Kind() Kind { return KindColumn }
func (*ColumnNode) node()      {}

// AliasNode attaches an AS alias to an arbitrary expression or subquery.
type AliasNode struct {
	Node  Node
	Alias *IdentifierNode
}

func (*AliasNode) Kind() Kind { return KindAlias }
func (*AliasNode) node()      {}

// ValueNode carries one bound parameter value. Values are always rendered as
// placeholders, never inlined into the SQL text.
type ValueNode struct {
	Value any
}

func (*ValueNode) Kind() Kind { return KindValue }
func (*ValueNode) node()      {}

// ValueListNode is a parenthesized list of expressions, used as the right
// operand of IN / NOT IN comparisons.
type ValueListNode struct {
	Values []Node
}

func (*ValueListNode) Kind() Kind { return KindValueList }
func (*ValueListNode) node()      {}

// RawNode splices a verbatim SQL fragment into the output. It is the escape
// hatch for constructs the node model does not cover (NULL, DEFAULT,
// function calls) and carries no parameters.
type RawNode struct {
	SQL string
}

func (*RawNode) Kind() Kind { return KindRaw }
func (*RawNode) node()      {}

// ComparisonNode is a binary comparison between two operand expressions.
type ComparisonNode struct {
	Left     Node
	Operator ComparisonOperator
	Right    Node
}

func (*ComparisonNode) Kind() Kind { return KindComparison }
func (*ComparisonNode) node()      {}

// AndNode combines two conditions with AND.
type AndNode struct {
	Left  Node
	Right Node
}

func (*AndNode) Kind() Kind { return KindAnd }
func (*AndNode) node()      {}

// OrNode combines two conditions with OR. Compilers parenthesize it so that
// operator precedence survives nesting inside AND chains.
type OrNode struct {
	Left  Node
	Right Node
}

func (*OrNode) Kind() Kind { return KindOr }
func (*OrNode) node()      {}

// NotNode negates a condition.
type NotNode struct {
	Operand Node
}

func (*NotNode) Kind() Kind { return KindNot }
func (*NotNode) node()      {}

// WhereNode wraps the filter condition of a SELECT, UPDATE or DELETE.
type WhereNode struct {
	Condition Node
}

func (*WhereNode) Kind() Kind { return KindWhere }
func (*WhereNode) node()      {}

// JoinNode joins another table into a SELECT. On is nil for CROSS JOIN and
// required for every other join type.
type JoinNode struct {
	JoinType JoinType
	Table    Node // TableNode or AliasNode over one
	On       Node
}

func (*JoinNode) Kind() Kind { return KindJoin }
func (*JoinNode) node()      {}

// OrderByItemNode orders by one expression in one direction.
type OrderByItemNode struct {
	Expr      Node
	Direction Direction
}

func (*OrderByItemNode) Kind() Kind { return KindOrderByItem }
func (*OrderByItemNode) node()      {}

// OrderByNode is the ordered list of ORDER BY items.
type OrderByNode struct {
	Items []*OrderByItemNode
}

func (*OrderByNode) Kind() Kind { return KindOrderBy }
func (*OrderByNode) node()      {}

// LimitNode caps the row count of a SELECT. Count is typically a ValueNode
// so the limit travels as a bound parameter.
type LimitNode struct {
	Count Node
}

func (*LimitNode) Kind() Kind { return KindLimit }
func (*LimitNode) node()      {}

// OffsetNode skips leading rows of a SELECT.
type OffsetNode struct {
	Start Node
}

func (*OffsetNode) Kind() Kind { return KindOffset }
func (*OffsetNode) node()      {}

// AssignmentNode sets one column in an UPDATE statement.
type AssignmentNode struct {
	Column *IdentifierNode
	Value  Node
}

func (*AssignmentNode) Kind() Kind { return KindAssignment }
func (*AssignmentNode) node()      {}

// OnConflictNode describes upsert behavior for an INSERT. When DoNothing is
// false, UpdateColumns lists the columns refreshed from the incoming row
// (rendered via the dialect's upsert syntax).
type OnConflictNode struct {
	Columns       []*IdentifierNode
	DoNothing     bool
	UpdateColumns []*IdentifierNode
}

func (*OnConflictNode) Kind() Kind { return KindOnConflict }
func (*OnConflictNode) node()      {}

// ReturningNode lists the expressions a mutating statement hands back.
type ReturningNode struct {
	Selections []Node
}

func (*ReturningNode) Kind() Kind { return KindReturning }
func (*ReturningNode) node()      {}

// SelectQueryNode is the root of a SELECT statement.
type SelectQueryNode struct {
	Distinct   bool
	Selections []Node // empty means SELECT *
	From       *TableNode
	Joins      []*JoinNode
	Where      *WhereNode
	GroupBy    []Node
	OrderBy    *OrderByNode
	Limit      *LimitNode
	Offset     *OffsetNode
}

func (*SelectQueryNode) Kind() Kind { return KindSelectQuery }
func (*SelectQueryNode) node()      {}

// InsertQueryNode is the root of an INSERT statement. Rows holds one value
// expression per column, per inserted row.
type InsertQueryNode struct {
	Table      *TableNode
	Columns    []*IdentifierNode
	Rows       [][]Node
	OnConflict *OnConflictNode
	Returning  *ReturningNode
}

func (*InsertQueryNode) Kind() Kind { return KindInsertQuery }
func (*InsertQueryNode) node()      {}

// UpdateQueryNode is the root of an UPDATE statement.
type UpdateQueryNode struct {
	Table       *TableNode
	Assignments []*AssignmentNode
	Where       *WhereNode
	Returning   *ReturningNode
}

func (*UpdateQueryNode) Kind() Kind { return KindUpdateQuery }
func (*UpdateQueryNode) node()      {}

// DeleteQueryNode is the root of a DELETE statement.
type DeleteQueryNode struct {
	Table     *TableNode
	Where     *WhereNode
	Returning *ReturningNode
}

func (*DeleteQueryNode) Kind() Kind { return KindDeleteQuery }
func (*DeleteQueryNode) node()      {}

// AlterTableNode is the root of an ALTER TABLE statement holding one or more
// alteration operations (DropConstraintNode, DropColumnNode).
type AlterTableNode struct {
	Table      *TableNode
	Operations []Node
}

func (*AlterTableNode) Kind() Kind { return KindAlterTable }
func (*AlterTableNode) node()      {}

// DropConstraintNode drops a named constraint. Its single child identifies
// the constraint being removed.
type DropConstraintNode struct {
	Constraint *IdentifierNode
}

func (*DropConstraintNode) Kind() Kind { return KindDropConstraint }
func (*DropConstraintNode) node()      {}

// DropColumnNode drops a column inside an ALTER TABLE.
type DropColumnNode struct {
	Column *IdentifierNode
}

func (*DropColumnNode) Kind() Kind { return KindDropColumn }
func (*DropColumnNode) node()      {}
