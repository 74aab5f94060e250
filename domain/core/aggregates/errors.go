package aggregates

import (
	"fmt"

	"graphd/domain/core/valueobjects"
	pkgerrors "graphd/pkg/errors"
)

// Error codes reported by graph operations
const (
	CodeNodeNotFound = "NODE_NOT_FOUND"
	CodeEdgeExists   = "EDGE_EXISTS"
	CodeEdgeNotFound = "EDGE_NOT_FOUND"
	CodeSelfLoop     = "SELF_LOOP"
	CodeUnreachable  = "NO_PATH"
)

// Sentinels for errors.Is. Operations return fresh errors carrying the same
// type and code.
var (
	ErrNodeNotFound = &pkgerrors.AppError{Type: pkgerrors.ErrorTypeNotFound, Code: CodeNodeNotFound}
	ErrEdgeExists   = &pkgerrors.AppError{Type: pkgerrors.ErrorTypeConflict, Code: CodeEdgeExists}
	ErrEdgeNotFound = &pkgerrors.AppError{Type: pkgerrors.ErrorTypeConflict, Code: CodeEdgeNotFound}
	ErrSelfLoop     = &pkgerrors.AppError{Type: pkgerrors.ErrorTypeConflict, Code: CodeSelfLoop}
	ErrUnreachable  = &pkgerrors.AppError{Type: pkgerrors.ErrorTypeUnreachable, Code: CodeUnreachable}
)

func nodeNotFound(id valueobjects.NodeID) error {
	return pkgerrors.NewNotFoundError(fmt.Sprintf("node %d", id)).
		WithCode(CodeNodeNotFound).
		WithDetails(map[string]interface{}{"node_id": id.Int()})
}

func edgeExists(src, dst valueobjects.NodeID) error {
	return pkgerrors.NewConflictError(fmt.Sprintf("edge %d -> %d already exists", src, dst)).
		WithCode(CodeEdgeExists)
}

func edgeNotFound(src, dst valueobjects.NodeID) error {
	return pkgerrors.NewConflictError(fmt.Sprintf("edge %d -> %d does not exist", src, dst)).
		WithCode(CodeEdgeNotFound)
}

func selfLoop(id valueobjects.NodeID) error {
	return pkgerrors.NewConflictError(fmt.Sprintf("node %d cannot be connected to itself", id)).
		WithCode(CodeSelfLoop)
}

func unreachable(src, dst valueobjects.NodeID) error {
	return pkgerrors.NewUnreachableError(fmt.Sprintf("no path from node %d to node %d", src, dst)).
		WithCode(CodeUnreachable)
}
