package ast

// Type guards perform a cheap discriminator check before further processing.
// They are the supported way to narrow a Node handed across a package
// boundary; callers then assert to the concrete type.

func IsIdentifier(n Node) bool     { return n != nil && n.Kind() == KindIdentifier }
func IsTable(n Node) bool          { return n != nil && n.Kind() == KindTable }
func IsColumn(n Node) bool         { return n != nil && n.Kind() == KindColumn }
func IsAlias(n Node) bool          { return n != nil && n.Kind() == KindAlias }
func IsValue(n Node) bool          { return n != nil && n.Kind() == KindValue }
func IsValueList(n Node) bool      { return n != nil && n.Kind() == KindValueList }
func IsRaw(n Node) bool            { return n != nil && n.Kind() == KindRaw }
func IsComparison(n Node) bool     { return n != nil && n.Kind() == KindComparison }
func IsAnd(n Node) bool            { return n != nil && n.Kind() == KindAnd }
func IsOr(n Node) bool             { return n != nil && n.Kind() == KindOr }
func IsNot(n Node) bool            { return n != nil && n.Kind() == KindNot }
func IsWhere(n Node) bool          { return n != nil && n.Kind() == KindWhere }
func IsJoin(n Node) bool           { return n != nil && n.Kind() == KindJoin }
func IsOrderBy(n Node) bool        { return n != nil && n.Kind() == KindOrderBy }
func IsOrderByItem(n Node) bool    { return n != nil && n.Kind() == KindOrderByItem }
func IsLimit(n Node) bool          { return n != nil && n.Kind() == KindLimit }
func IsOffset(n Node) bool         { return n != nil && n.Kind() == KindOffset }
func IsAssignment(n Node) bool     { return n != nil && n.Kind() == KindAssignment }
func IsOnConflict(n Node) bool     { return n != nil && n.Kind() == KindOnConflict }
func IsReturning(n Node) bool      { return n != nil && n.Kind() == KindReturning }
func IsSelectQuery(n Node) bool    { return n != nil && n.Kind() == KindSelectQuery }
func IsInsertQuery(n Node) bool    { return n != nil && n.Kind() == KindInsertQuery }
func IsUpdateQuery(n Node) bool    { return n != nil && n.Kind() == KindUpdateQuery }
func IsDeleteQuery(n Node) bool    { return n != nil && n.Kind() == KindDeleteQuery }
func IsAlterTable(n Node) bool     { return n != nil && n.Kind() == KindAlterTable }
func IsDropConstraint(n Node) bool { return n != nil && n.Kind() == KindDropConstraint }
func IsDropColumn(n Node) bool     { return n != nil && n.Kind() == KindDropColumn }

// IsRootQuery reports whether the node can be compiled as a statement root.
func IsRootQuery(n Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind() {
	case KindSelectQuery, KindInsertQuery, KindUpdateQuery, KindDeleteQuery, KindAlterTable:
		return true
	}
	return false
}
