package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Titre       string `json:"titre" validate:"required,min=3"`
	Description string `json:"description" validate:"required"`
	Mode        string `json:"mode,omitempty" validate:"omitempty,oneof=dfs all"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		input   sampleRequest
		wantErr string
	}{
		{
			name:  "valid",
			input: sampleRequest{Titre: "abc", Description: "d"},
		},
		{
			name:    "missing title uses json name",
			input:   sampleRequest{Description: "d"},
			wantErr: "titre is required",
		},
		{
			name:    "short title",
			input:   sampleRequest{Titre: "ab", Description: "d"},
			wantErr: "titre must be at least 3 characters",
		},
		{
			name:    "several failures are joined",
			input:   sampleRequest{Titre: "ab", Mode: "bfs"},
			wantErr: "titre must be at least 3 characters; description is required; mode must be one of: dfs all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
