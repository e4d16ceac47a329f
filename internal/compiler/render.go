package compiler

import (
	"strings"

	"github.com/coregx/sqlkit/internal/ast"
)

// state accumulates one compilation pass. A fresh state is created per
// CompileQuery call, which keeps the compiler itself stateless.
type state struct {
	c      *queryCompiler
	sql    strings.Builder
	params []any
}

func newState(c *queryCompiler) *state {
	return &state{c: c, params: make([]any, 0, 8)}
}

// param appends a parameter value and writes its dialect placeholder.
func (st *state) param(v any) {
	st.params = append(st.params, v)
	st.sql.WriteString(st.c.dialect.Placeholder(len(st.params)))
}

func (st *state) quote(name string) string {
	return st.c.dialect.QuoteIdentifier(name)
}

// node dispatches on the closed kind set. Every kind the dialect cannot
// render, and any kind without a case here, fails before SQL is returned.
func (st *state) node(n ast.Node) error {
	if st.c.unsupported[n.Kind()] {
		return &UnsupportedNodeError{NodeKind: n.Kind()}
	}
	switch t := n.(type) {
	case *ast.IdentifierNode:
		st.sql.WriteString(st.quote(t.Name))
	case *ast.TableNode:
		st.table(t)
	case *ast.ColumnNode:
		if t.Table != nil {
			st.sql.WriteString(st.quote(t.Table.Name))
			st.sql.WriteString(".")
		}
		st.sql.WriteString(st.quote(t.Column.Name))
	case *ast.AliasNode:
		if err := st.node(t.Node); err != nil {
			return err
		}
		st.sql.WriteString(" AS ")
		st.sql.WriteString(st.quote(t.Alias.Name))
	case *ast.ValueNode:
		st.param(t.Value)
	case *ast.ValueListNode:
		st.sql.WriteString("(")
		for i, v := range t.Values {
			if i > 0 {
				st.sql.WriteString(", ")
			}
			if err := st.node(v); err != nil {
				return err
			}
		}
		st.sql.WriteString(")")
	case *ast.RawNode:
		st.sql.WriteString(t.SQL)
	case *ast.ComparisonNode:
		if err := st.node(t.Left); err != nil {
			return err
		}
		st.sql.WriteString(" ")
		st.sql.WriteString(string(t.Operator))
		st.sql.WriteString(" ")
		return st.node(t.Right)
	case *ast.AndNode:
		if err := st.node(t.Left); err != nil {
			return err
		}
		st.sql.WriteString(" AND ")
		return st.node(t.Right)
	case *ast.OrNode:
		st.sql.WriteString("(")
		if err := st.node(t.Left); err != nil {
			return err
		}
		st.sql.WriteString(" OR ")
		if err := st.node(t.Right); err != nil {
			return err
		}
		st.sql.WriteString(")")
	case *ast.NotNode:
		st.sql.WriteString("NOT (")
		if err := st.node(t.Operand); err != nil {
			return err
		}
		st.sql.WriteString(")")
	case *ast.WhereNode:
		st.sql.WriteString(" WHERE ")
		return st.node(t.Condition)
	case *ast.JoinNode:
		st.sql.WriteString(" ")
		st.sql.WriteString(string(t.JoinType))
		st.sql.WriteString(" ")
		if err := st.node(t.Table); err != nil {
			return err
		}
		if t.On != nil {
			st.sql.WriteString(" ON ")
			return st.node(t.On)
		}
	case *ast.OrderByNode:
		st.sql.WriteString(" ORDER BY ")
		for i, item := range t.Items {
			if i > 0 {
				st.sql.WriteString(", ")
			}
			if err := st.node(item); err != nil {
				return err
			}
		}
	case *ast.OrderByItemNode:
		if err := st.node(t.Expr); err != nil {
			return err
		}
		st.sql.WriteString(" ")
		st.sql.WriteString(string(t.Direction))
	case *ast.LimitNode:
		st.sql.WriteString(" LIMIT ")
		return st.node(t.Count)
	case *ast.OffsetNode:
		st.sql.WriteString(" OFFSET ")
		return st.node(t.Start)
	case *ast.AssignmentNode:
		st.sql.WriteString(st.quote(t.Column.Name))
		st.sql.WriteString(" = ")
		return st.node(t.Value)
	case *ast.ReturningNode:
		return st.returning(t)
	case *ast.SelectQueryNode:
		return st.selectQuery(t)
	case *ast.InsertQueryNode:
		return st.insertQuery(t)
	case *ast.UpdateQueryNode:
		return st.updateQuery(t)
	case *ast.DeleteQueryNode:
		return st.deleteQuery(t)
	case *ast.AlterTableNode:
		return st.alterTable(t)
	case *ast.DropConstraintNode:
		st.sql.WriteString("DROP CONSTRAINT ")
		st.sql.WriteString(st.quote(t.Constraint.Name))
	case *ast.DropColumnNode:
		st.sql.WriteString("DROP COLUMN ")
		st.sql.WriteString(st.quote(t.Column.Name))
	default:
		return &UnsupportedNodeError{NodeKind: n.Kind()}
	}
	return nil
}

func (st *state) table(t *ast.TableNode) {
	if t.Schema != nil {
		st.sql.WriteString(st.quote(t.Schema.Name))
		st.sql.WriteString(".")
	}
	st.sql.WriteString(st.quote(t.Table.Name))
}

func (st *state) selectQuery(q *ast.SelectQueryNode) error {
	// A select rendered into an already started statement is a subquery.
	nested := st.sql.Len() > 0
	if nested {
		st.sql.WriteString("(")
	}
	st.sql.WriteString("SELECT ")
	if q.Distinct {
		st.sql.WriteString("DISTINCT ")
	}
	if len(q.Selections) == 0 {
		st.sql.WriteString("*")
	} else {
		for i, sel := range q.Selections {
			if i > 0 {
				st.sql.WriteString(", ")
			}
			if err := st.node(sel); err != nil {
				return err
			}
		}
	}
	st.sql.WriteString(" FROM ")
	st.table(q.From)
	for _, join := range q.Joins {
		if err := st.node(join); err != nil {
			return err
		}
	}
	if q.Where != nil {
		if err := st.node(q.Where); err != nil {
			return err
		}
	}
	if len(q.GroupBy) > 0 {
		st.sql.WriteString(" GROUP BY ")
		for i, g := range q.GroupBy {
			if i > 0 {
				st.sql.WriteString(", ")
			}
			if err := st.node(g); err != nil {
				return err
			}
		}
	}
	if q.OrderBy != nil {
		if err := st.node(q.OrderBy); err != nil {
			return err
		}
	}
	if q.Limit != nil {
		if err := st.node(q.Limit); err != nil {
			return err
		}
	}
	if q.Offset != nil {
		if err := st.node(q.Offset); err != nil {
			return err
		}
	}
	if nested {
		st.sql.WriteString(")")
	}
	return nil
}

func (st *state) insertQuery(q *ast.InsertQueryNode) error {
	st.sql.WriteString("INSERT INTO ")
	st.table(q.Table)
	st.sql.WriteString(" (")
	for i, col := range q.Columns {
		if i > 0 {
			st.sql.WriteString(", ")
		}
		st.sql.WriteString(st.quote(col.Name))
	}
	st.sql.WriteString(") VALUES ")
	for i, row := range q.Rows {
		if i > 0 {
			st.sql.WriteString(", ")
		}
		st.sql.WriteString("(")
		for j, v := range row {
			if j > 0 {
				st.sql.WriteString(", ")
			}
			if err := st.node(v); err != nil {
				return err
			}
		}
		st.sql.WriteString(")")
	}
	if q.OnConflict != nil {
		if err := st.onConflict(q.OnConflict); err != nil {
			return err
		}
	}
	if q.Returning != nil {
		if err := st.node(q.Returning); err != nil {
			return err
		}
	}
	return nil
}

// onConflict renders the upsert clause through the dialect's UpsertSQL
// policy. Column names are pre-quoted here so the policy stays string-based.
func (st *state) onConflict(oc *ast.OnConflictNode) error {
	if st.c.unsupported[ast.KindOnConflict] {
		return &UnsupportedNodeError{NodeKind: ast.KindOnConflict}
	}
	conflict := st.quoteAll(oc.Columns)
	var updates []string
	if !oc.DoNothing {
		updates = st.quoteAll(oc.UpdateColumns)
	}
	st.sql.WriteString(st.c.dialect.UpsertSQL("", conflict, updates))
	return nil
}

func (st *state) returning(r *ast.ReturningNode) error {
	if !st.c.dialect.SupportsReturning() {
		return &UnsupportedNodeError{NodeKind: ast.KindReturning}
	}
	st.sql.WriteString(" RETURNING ")
	for i, sel := range r.Selections {
		if i > 0 {
			st.sql.WriteString(", ")
		}
		if err := st.node(sel); err != nil {
			return err
		}
	}
	return nil
}

func (st *state) updateQuery(q *ast.UpdateQueryNode) error {
	st.sql.WriteString("UPDATE ")
	st.table(q.Table)
	st.sql.WriteString(" SET ")
	for i, a := range q.Assignments {
		if i > 0 {
			st.sql.WriteString(", ")
		}
		if err := st.node(a); err != nil {
			return err
		}
	}
	if q.Where != nil {
		if err := st.node(q.Where); err != nil {
			return err
		}
	}
	if q.Returning != nil {
		return st.node(q.Returning)
	}
	return nil
}

func (st *state) deleteQuery(q *ast.DeleteQueryNode) error {
	st.sql.WriteString("DELETE FROM ")
	st.table(q.Table)
	if q.Where != nil {
		if err := st.node(q.Where); err != nil {
			return err
		}
	}
	if q.Returning != nil {
		return st.node(q.Returning)
	}
	return nil
}

func (st *state) alterTable(q *ast.AlterTableNode) error {
	st.sql.WriteString("ALTER TABLE ")
	st.table(q.Table)
	st.sql.WriteString(" ")
	for i, op := range q.Operations {
		if i > 0 {
			st.sql.WriteString(", ")
		}
		if err := st.node(op); err != nil {
			return err
		}
	}
	return nil
}

func (st *state) quoteAll(ids []*ast.IdentifierNode) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = st.quote(id.Name)
	}
	return out
}
