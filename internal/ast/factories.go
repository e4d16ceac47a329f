package ast

import "fmt"

// Factories are the only supported way to build nodes. They validate
// structural requirements and panic on violations: a malformed tree is a
// programming error in the builder layer, not a runtime condition the
// compiler or driver can recover from.

// NewIdentifier creates an identifier node. The name must be non-empty.
func NewIdentifier(name string) *IdentifierNode {
	if name == "" {
		panic("ast: identifier name must not be empty")
	}
	return &IdentifierNode{Name: name}
}

// NewTable creates an unqualified table reference.
func NewTable(name string) *TableNode {
	return &TableNode{Table: NewIdentifier(name)}
}

// NewSchemaTable creates a schema-qualified table reference.
func NewSchemaTable(schema, name string) *TableNode {
	return &TableNode{Schema: NewIdentifier(schema), Table: NewIdentifier(name)}
}

// NewColumn creates an unqualified column reference.
func NewColumn(name string) *ColumnNode {
	return &ColumnNode{Column: NewIdentifier(name)}
}

// NewQualifiedColumn creates a table-qualified column reference.
func NewQualifiedColumn(table, name string) *ColumnNode {
	return &ColumnNode{Table: NewIdentifier(table), Column: NewIdentifier(name)}
}

// NewAlias attaches an alias to an expression or subquery.
func NewAlias(node Node, alias string) *AliasNode {
	mustChild("alias", "node", node)
	return &AliasNode{Node: node, Alias: NewIdentifier(alias)}
}

// NewValue creates a bound parameter value.
func NewValue(v any) *ValueNode {
	return &ValueNode{Value: v}
}

// NewValueList creates a parenthesized expression list. At least one element
// is required; SQL has no empty IN list.
func NewValueList(values ...Node) *ValueListNode {
	if len(values) == 0 {
		panic("ast: value list requires at least one value")
	}
	for _, v := range values {
		mustChild("value-list", "value", v)
	}
	return &ValueListNode{Values: values}
}

// NewRaw creates a verbatim SQL fragment.
func NewRaw(sql string) *RawNode {
	if sql == "" {
		panic("ast: raw fragment must not be empty")
	}
	return &RawNode{SQL: sql}
}

// NewComparison creates a binary comparison.
func NewComparison(left Node, op ComparisonOperator, right Node) *ComparisonNode {
	mustChild("comparison", "left operand", left)
	mustChild("comparison", "right operand", right)
	return &ComparisonNode{Left: left, Operator: op, Right: right}
}

// NewAnd combines two conditions with AND.
func NewAnd(left, right Node) *AndNode {
	mustChild("and", "left operand", left)
	mustChild("and", "right operand", right)
	return &AndNode{Left: left, Right: right}
}

// NewOr combines two conditions with OR.
func NewOr(left, right Node) *OrNode {
	mustChild("or", "left operand", left)
	mustChild("or", "right operand", right)
	return &OrNode{Left: left, Right: right}
}

// NewNot negates a condition.
func NewNot(operand Node) *NotNode {
	mustChild("not", "operand", operand)
	return &NotNode{Operand: operand}
}

// NewWhere wraps a filter condition.
func NewWhere(condition Node) *WhereNode {
	mustChild("where", "condition", condition)
	return &WhereNode{Condition: condition}
}

// NewJoin creates a join clause. Every join type except CROSS JOIN requires
// an ON condition; CROSS JOIN must not have one.
func NewJoin(joinType JoinType, table Node, on Node) *JoinNode {
	mustChild("join", "table", table)
	if joinType == CrossJoin {
		if on != nil {
			panic("ast: cross join must not have an on condition")
		}
	} else if on == nil {
		panic(fmt.Sprintf("ast: %s requires an on condition", joinType))
	}
	return &JoinNode{JoinType: joinType, Table: table, On: on}
}

// NewOrderByItem orders by one expression.
func NewOrderByItem(expr Node, direction Direction) *OrderByItemNode {
	mustChild("order-by-item", "expression", expr)
	return &OrderByItemNode{Expr: expr, Direction: direction}
}

// NewOrderBy creates an ORDER BY list from one or more items.
func NewOrderBy(items ...*OrderByItemNode) *OrderByNode {
	if len(items) == 0 {
		panic("ast: order by requires at least one item")
	}
	return &OrderByNode{Items: items}
}

// NewLimit creates a LIMIT clause.
func NewLimit(count Node) *LimitNode {
	mustChild("limit", "count", count)
	return &LimitNode{Count: count}
}

// NewOffset creates an OFFSET clause.
func NewOffset(start Node) *OffsetNode {
	mustChild("offset", "start", start)
	return &OffsetNode{Start: start}
}

// NewAssignment sets one column to an expression in an UPDATE.
func NewAssignment(column string, value Node) *AssignmentNode {
	mustChild("assignment", "value", value)
	return &AssignmentNode{Column: NewIdentifier(column), Value: value}
}

// NewOnConflictDoNothing creates an upsert clause that ignores conflicts on
// the given columns.
func NewOnConflictDoNothing(columns ...string) *OnConflictNode {
	return &OnConflictNode{Columns: identifiers(columns), DoNothing: true}
}

// NewOnConflictDoUpdate creates an upsert clause that, on conflict over
// conflictColumns, refreshes updateColumns from the incoming row.
func NewOnConflictDoUpdate(conflictColumns, updateColumns []string) *OnConflictNode {
	if len(conflictColumns) == 0 {
		panic("ast: on conflict do update requires at least one conflict column")
	}
	if len(updateColumns) == 0 {
		panic("ast: on conflict do update requires at least one update column")
	}
	return &OnConflictNode{
		Columns:       identifiers(conflictColumns),
		UpdateColumns: identifiers(updateColumns),
	}
}

// NewReturning lists the expressions a mutating statement returns.
func NewReturning(selections ...Node) *ReturningNode {
	if len(selections) == 0 {
		panic("ast: returning requires at least one selection")
	}
	for _, s := range selections {
		mustChild("returning", "selection", s)
	}
	return &ReturningNode{Selections: selections}
}

// SelectOption customizes a select query under construction. Options run
// before the factory returns, so the finished node is still immutable.
type SelectOption func(*SelectQueryNode)

// WithDistinct marks the query SELECT DISTINCT.
func WithDistinct() SelectOption {
	return func(q *SelectQueryNode) { q.Distinct = true }
}

// WithSelections sets the select list. Without it the query selects *.
func WithSelections(selections ...Node) SelectOption {
	for _, s := range selections {
		mustChild("select-query", "selection", s)
	}
	return func(q *SelectQueryNode) { q.Selections = selections }
}

// WithJoin appends a join clause.
func WithJoin(join *JoinNode) SelectOption {
	mustChild("select-query", "join", join)
	return func(q *SelectQueryNode) { q.Joins = append(q.Joins, join) }
}

// WithWhere sets the filter condition.
func WithWhere(where *WhereNode) SelectOption {
	mustChild("select-query", "where", where)
	return func(q *SelectQueryNode) { q.Where = where }
}

// WithGroupBy sets the grouping expressions.
func WithGroupBy(exprs ...Node) SelectOption {
	for _, e := range exprs {
		mustChild("select-query", "group-by expression", e)
	}
	return func(q *SelectQueryNode) { q.GroupBy = exprs }
}

// WithOrderBy sets the ordering.
func WithOrderBy(orderBy *OrderByNode) SelectOption {
	mustChild("select-query", "order-by", orderBy)
	return func(q *SelectQueryNode) { q.OrderBy = orderBy }
}

// WithLimit sets the row limit.
func WithLimit(limit *LimitNode) SelectOption {
	mustChild("select-query", "limit", limit)
	return func(q *SelectQueryNode) { q.Limit = limit }
}

// WithOffset sets the row offset.
func WithOffset(offset *OffsetNode) SelectOption {
	mustChild("select-query", "offset", offset)
	return func(q *SelectQueryNode) { q.Offset = offset }
}

// NewSelectQuery creates a SELECT root over the given table.
func NewSelectQuery(from *TableNode, opts ...SelectOption) *SelectQueryNode {
	mustChild("select-query", "from", from)
	q := &SelectQueryNode{From: from}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// NewInsertQuery creates an INSERT root. Every row must supply exactly one
// expression per column. OnConflict and returning may be nil.
func NewInsertQuery(table *TableNode, columns []string, rows [][]Node, onConflict *OnConflictNode, returning *ReturningNode) *InsertQueryNode {
	mustChild("insert-query", "table", table)
	if len(columns) == 0 {
		panic("ast: insert requires at least one column")
	}
	if len(rows) == 0 {
		panic("ast: insert requires at least one row")
	}
	for _, row := range rows {
		if len(row) != len(columns) {
			panic(fmt.Sprintf("ast: insert row has %d values for %d columns", len(row), len(columns)))
		}
		for _, v := range row {
			mustChild("insert-query", "row value", v)
		}
	}
	return &InsertQueryNode{
		Table:      table,
		Columns:    identifiers(columns),
		Rows:       rows,
		OnConflict: onConflict,
		Returning:  returning,
	}
}

// NewUpdateQuery creates an UPDATE root. Where and returning may be nil.
func NewUpdateQuery(table *TableNode, assignments []*AssignmentNode, where *WhereNode, returning *ReturningNode) *UpdateQueryNode {
	mustChild("update-query", "table", table)
	if len(assignments) == 0 {
		panic("ast: update requires at least one assignment")
	}
	for _, a := range assignments {
		mustChild("update-query", "assignment", a)
	}
	return &UpdateQueryNode{Table: table, Assignments: assignments, Where: where, Returning: returning}
}

// NewDeleteQuery creates a DELETE root. Where and returning may be nil.
func NewDeleteQuery(table *TableNode, where *WhereNode, returning *ReturningNode) *DeleteQueryNode {
	mustChild("delete-query", "table", table)
	return &DeleteQueryNode{Table: table, Where: where, Returning: returning}
}

// NewAlterTable creates an ALTER TABLE root over one or more operations.
func NewAlterTable(table *TableNode, operations ...Node) *AlterTableNode {
	mustChild("alter-table", "table", table)
	if len(operations) == 0 {
		panic("ast: alter table requires at least one operation")
	}
	for _, op := range operations {
		mustChild("alter-table", "operation", op)
		switch op.Kind() {
		case KindDropConstraint, KindDropColumn:
		default:
			panic(fmt.Sprintf("ast: %s is not an alter-table operation", op.Kind()))
		}
	}
	return &AlterTableNode{Table: table, Operations: operations}
}

// NewDropConstraint drops the named constraint.
func NewDropConstraint(constraint string) *DropConstraintNode {
	return &DropConstraintNode{Constraint: NewIdentifier(constraint)}
}

// NewDropColumn drops the named column.
func NewDropColumn(column string) *DropColumnNode {
	return &DropColumnNode{Column: NewIdentifier(column)}
}

func identifiers(names []string) []*IdentifierNode {
	out := make([]*IdentifierNode, len(names))
	for i, n := range names {
		out[i] = NewIdentifier(n)
	}
	return out
}

func mustChild(kind, field string, n Node) {
	if n == nil {
		panic(fmt.Sprintf("ast: %s requires a %s", kind, field))
	}
}
