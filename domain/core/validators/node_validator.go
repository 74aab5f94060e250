package validators

import (
	"fmt"
	"unicode/utf8"

	"graphd/domain/config"
	"graphd/pkg/errors"
)

// Validation error codes
const (
	CodeInvalidTitle       = "INVALID_TITLE"
	CodeInvalidDescription = "INVALID_DESCRIPTION"
	CodeInvalidCondition   = "INVALID_CONDITION"
)

// NodeValidator validates node-related domain rules
type NodeValidator struct {
	titleMinLength int
}

// NewNodeValidator creates a new node validator with default rules
func NewNodeValidator() *NodeValidator {
	return NewNodeValidatorWithConfig(config.DefaultDomainConfig())
}

// NewNodeValidatorWithConfig creates a node validator from the domain configuration
func NewNodeValidatorWithConfig(cfg *config.DomainConfig) *NodeValidator {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &NodeValidator{titleMinLength: cfg.MinTitleLength}
}

// ValidateNode checks every field of a new node, stopping at the first failure
func (v *NodeValidator) ValidateNode(title, description, condition string) error {
	if err := v.ValidateTitle(title); err != nil {
		return err
	}
	if err := v.ValidateDescription(description); err != nil {
		return err
	}
	return v.ValidateCondition(condition)
}

// ValidateTitle enforces the minimum title length, counted in characters
func (v *NodeValidator) ValidateTitle(title string) error {
	if utf8.RuneCountInString(title) < v.titleMinLength {
		return errors.NewValidationError(
			fmt.Sprintf("title must be at least %d characters", v.titleMinLength),
		).WithCode(CodeInvalidTitle).WithDetails(map[string]interface{}{"field": "titre"})
	}
	return nil
}

// ValidateDescription rejects an empty description
func (v *NodeValidator) ValidateDescription(description string) error {
	if description == "" {
		return errors.NewValidationError("description cannot be empty").
			WithCode(CodeInvalidDescription).
			WithDetails(map[string]interface{}{"field": "description"})
	}
	return nil
}

// ValidateCondition checks the condition grammar
func (v *NodeValidator) ValidateCondition(condition string) error {
	if !IsValidCondition(condition) {
		return errors.NewValidationError("invalid condition").
			WithCode(CodeInvalidCondition).
			WithDetails(map[string]interface{}{"field": "condition"})
	}
	return nil
}
