// Package compiler renders an operation-node tree into executable SQL text
// plus an ordered parameter list for one SQL dialect. Compilation is pure
// and stateless between calls: the same tree always yields byte-identical
// output, and parameters appear in the exact order their placeholders are
// emitted.
package compiler

import (
	"errors"
	"fmt"

	"github.com/coregx/sqlkit/internal/ast"
	"github.com/coregx/sqlkit/internal/dialects"
)

// CompiledQuery is the compiler's output and the sole hand-off artifact
// between the compiler and the driver: SQL text plus the bound parameter
// values matching its placeholders left to right.
type CompiledQuery struct {
	SQL    string
	Params []any
}

// QueryCompiler renders an AST root into a CompiledQuery.
type QueryCompiler interface {
	CompileQuery(root ast.Node) (*CompiledQuery, error)
}

// UnsupportedNodeError reports an AST node the target dialect has no
// rendering rule for. It is a configuration error: no partial SQL is
// produced and the compilation is never retried.
type UnsupportedNodeError struct {
	NodeKind ast.Kind
}

func (e *UnsupportedNodeError) Error() string {
	return fmt.Sprintf("compiler: no rendering rule for node kind %q in this dialect", e.NodeKind)
}

// ErrNilRoot is returned when CompileQuery receives a nil node.
var ErrNilRoot = errors.New("compiler: nil root node")

// Option customizes a compiler at construction.
type Option func(*queryCompiler)

// WithoutKinds marks node kinds the dialect cannot render. Compiling a tree
// containing one of them fails with an UnsupportedNodeError.
func WithoutKinds(kinds ...ast.Kind) Option {
	return func(c *queryCompiler) {
		for _, k := range kinds {
			c.unsupported[k] = true
		}
	}
}

// New creates a query compiler for the given dialect policy.
func New(dialect dialects.Dialect, opts ...Option) QueryCompiler {
	c := &queryCompiler{dialect: dialect, unsupported: make(map[ast.Kind]bool)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type queryCompiler struct {
	dialect     dialects.Dialect
	unsupported map[ast.Kind]bool
}

// CompileQuery renders the root statement node. The tree is consumed
// read-only and not retained.
func (c *queryCompiler) CompileQuery(root ast.Node) (*CompiledQuery, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	if !ast.IsRootQuery(root) {
		return nil, &UnsupportedNodeError{NodeKind: root.Kind()}
	}
	st := newState(c)
	if err := st.node(root); err != nil {
		return nil, err
	}
	return &CompiledQuery{SQL: st.sql.String(), Params: st.params}, nil
}
