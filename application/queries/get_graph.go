package queries

import (
	"graphd/domain/core/valueobjects"
	pkgerrors "graphd/pkg/errors"
	"graphd/pkg/utils"
)

// Cycle search modes
const (
	// CycleModeDFS reports the back edges of one depth-first forest
	CycleModeDFS = "dfs"
	// CycleModeAll enumerates every elementary cycle
	CycleModeAll = "all"
)

// Export formats
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ShortestPathQuery asks for the hop distance between two nodes
type ShortestPathQuery struct {
	SourceID valueobjects.NodeID
	TargetID valueobjects.NodeID
}

func (ShortestPathQuery) QueryName() string { return "shortest_path" }
func (ShortestPathQuery) Validate() error   { return nil }

// ShortestPathResult is the answer to a ShortestPathQuery
type ShortestPathResult struct {
	Distance int `json:"distance"`
}

// FindCyclesQuery lists the cycles of the graph
type FindCyclesQuery struct {
	Mode string `json:"mode" validate:"omitempty,oneof=dfs all"`
}

func (FindCyclesQuery) QueryName() string { return "find_cycles" }

// Validate checks the mode; empty means dfs
func (q FindCyclesQuery) Validate() error {
	if err := utils.ValidateStruct(q); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// ExportGraphQuery renders the whole graph
type ExportGraphQuery struct {
	Format string `json:"format" validate:"required,oneof=dot svg"`
}

func (ExportGraphQuery) QueryName() string { return "export_graph" }

// Validate checks the format
func (q ExportGraphQuery) Validate() error {
	if err := utils.ValidateStruct(q); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// ExportResult is a rendered graph
type ExportResult struct {
	ContentType string
	Body        []byte
}
