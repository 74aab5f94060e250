package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"graphd/domain/config"
	"graphd/pkg/errors"
)

func TestIsValidCondition(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		valid      bool
	}{
		{"single variable", "$var", true},
		{"and", "$var AND $var2", true},
		{"or chain", "$a OR $b AND $c", true},
		{"empty expression", "", true},
		{"bare dollar", "$", true},
		{"even token count", "$var $var2", false},
		{"trailing operator", "$var OR", false},
		{"missing prefix", "var AND $x", false},
		{"lowercase operator", "$a and $b", false},
		{"unknown operator", "$a XOR $b", false},
		{"operator in variable slot", "AND AND $b", false},
		{"double space", "$a  AND $b", false},
		{"leading space", " $a", false},
		{"trailing space", "$a ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidCondition(tt.expression))
		})
	}
}

func TestNodeValidator_ValidateNode(t *testing.T) {
	v := NewNodeValidator()

	tests := []struct {
		name        string
		title       string
		description string
		condition   string
		wantCode    string
	}{
		{name: "valid", title: "abc", description: "d", condition: "$x"},
		{name: "short title", title: "ab", description: "d", condition: "$x", wantCode: CodeInvalidTitle},
		{name: "multibyte title counts characters", title: "été", description: "d", condition: "$x"},
		{name: "empty description", title: "abc", description: "", condition: "$x", wantCode: CodeInvalidDescription},
		{name: "bad condition", title: "abc", description: "d", condition: "$x $y", wantCode: CodeInvalidCondition},
		{name: "title checked first", title: "", description: "", condition: "bad", wantCode: CodeInvalidTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateNode(tt.title, tt.description, tt.condition)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsValidation(err))
			assert.Equal(t, tt.wantCode, errors.GetAppError(err).Code)
		})
	}
}

func TestNodeValidator_ConfiguredMinimum(t *testing.T) {
	v := NewNodeValidatorWithConfig(&config.DomainConfig{MinTitleLength: 5})

	assert.Error(t, v.ValidateTitle("abcd"))
	assert.NoError(t, v.ValidateTitle("abcde"))
}
