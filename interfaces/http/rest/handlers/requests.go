package handlers

import (
	"fmt"
	"net/http"

	"graphd/domain/core/valueobjects"
	pkgerrors "graphd/pkg/errors"
	"graphd/pkg/utils"
)

// CreateNodeRequest is the body of a node creation
type CreateNodeRequest struct {
	Titre       string `json:"titre" validate:"required,min=3"`
	Description string `json:"description" validate:"required"`
	Condition   string `json:"condition" validate:"required"`
}

// UpdateNodeRequest is the body of a node update. Absent fields are left unchanged.
type UpdateNodeRequest struct {
	Titre       *string `json:"titre,omitempty" validate:"omitempty,min=3"`
	Description *string `json:"description,omitempty"`
	Condition   *string `json:"condition,omitempty"`
}

// validate applies the transport rules on top of the struct tags. An empty
// condition is a valid expression for the graph but not for the API.
func (r UpdateNodeRequest) validate() error {
	if err := utils.ValidateStruct(r); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	if r.Condition != nil && *r.Condition == "" {
		return pkgerrors.NewValidationError("condition cannot be empty")
	}
	return nil
}

func (r CreateNodeRequest) validate() error {
	if err := utils.ValidateStruct(r); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// pathNodeID parses a node id path parameter
func pathNodeID(r *http.Request, param func(*http.Request, string) string, name string) (valueobjects.NodeID, error) {
	raw := param(r, name)
	id, err := valueobjects.ParseNodeID(raw)
	if err != nil {
		return 0, pkgerrors.NewValidationError(fmt.Sprintf("invalid %s %q: %v", name, raw, err)).
			WithCode("INVALID_NODE_ID")
	}
	return id, nil
}

func invalidBody(err error) error {
	return pkgerrors.NewValidationError("invalid request body: " + err.Error()).WithCode("INVALID_BODY")
}
