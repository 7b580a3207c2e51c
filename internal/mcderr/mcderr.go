// Package mcderr defines the error taxonomy shared by every layer of the
// decoding engine, from keyfile access through response decoding.
//
// Each kind is a distinct exported type rather than a sentinel or a raw
// string so a caller several layers up can recover the offending
// identifier with errors.As, matching the wrapping style used throughout
// this module's managers and parsers.
package mcderr

import "fmt"

// IOError wraps a failure opening, reading, or decompressing a file.
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FormatError reports a structurally malformed record, stream, or enum
// value: unknown record length, a bad existence flag, a stream overrun,
// an unrecognized object tag, a key of the wrong length, or a duplicate
// key within a pool.
type FormatError struct {
	Context string
	Detail  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format error in %s: %s", e.Context, e.Detail)
}

// ReferenceError reports a reference that could not be resolved, either
// because the named object does not exist in the target pool or because
// a pool-less reference matched no layer in the search list.
type ReferenceError struct {
	Kind     string // "DOP", "TABLE", "REQUEST", ...
	ObjectID string
	PoolID   string // empty when the reference carried no pool id
}

func (e *ReferenceError) Error() string {
	if e.PoolID == "" {
		return fmt.Sprintf("Access to database element failed - %s with name: %s", e.Kind, e.ObjectID)
	}
	return fmt.Sprintf("Access to database element failed - %s with name: %s (pool %s)", e.Kind, e.ObjectID, e.PoolID)
}

// ConstraintError reports a decoded value outside an internal or
// physical constraint, or landing inside a non-VALID scale constraint.
type ConstraintError struct {
	NodeName string
	Label    string // scale constraint short label, when applicable
	Detail   string
}

func (e *ConstraintError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("constraint violation on %s: value falls in scale %q: %s", e.NodeName, e.Label, e.Detail)
	}
	return fmt.Sprintf("constraint violation on %s: %s", e.NodeName, e.Detail)
}

// SemanticError reports a fatal invariant violation discovered while
// normalizing a raw object into a description node, e.g. an
// incompatible (diag-coded-type, base-data-type, encoding) combination.
type SemanticError struct {
	NodeName string
	Detail   string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("semantic error on %s: %s", e.NodeName, e.Detail)
}

// NodeError is a recoverable SemanticError demoted to a value carried on
// the offending node (the Go replacement for the source's "#error"
// string marker) so a collecting visitor can still consume the rest of
// the tree. It still satisfies error so callers that want fail-fast
// behavior can propagate it directly.
type NodeError struct {
	NodeName string
	Detail   string
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s: %s", e.NodeName, e.Detail)
}
