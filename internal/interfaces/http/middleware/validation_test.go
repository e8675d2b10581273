package middleware

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name   string   `json:"name" binding:"required,max=5"`
	Email  string   `json:"email" binding:"omitempty,email"`
	Color  string   `json:"color" binding:"omitempty,hexcolor"`
	Stages []string `json:"stages" binding:"omitempty,max=1"`
}

func TestValidationDetails(t *testing.T) {
	SetupValidator()

	err := binding.Validator.ValidateStruct(sampleRequest{Email: "nope", Color: "red", Stages: []string{"a", "b"}})
	require.Error(t, err)

	details := ValidationDetails(err)
	byField := make(map[string]string, len(details))
	for _, d := range details {
		byField[d.Field] = d.Message
	}
	assert.Equal(t, "This field is required", byField["name"])
	assert.Equal(t, "Invalid email format", byField["email"])
	assert.Equal(t, "Must be a hex color like #1a2b3c", byField["color"])
	assert.Equal(t, "Must contain at most 1 items", byField["stages"])
}

func TestValidationDetails_NotValidatorError(t *testing.T) {
	assert.Nil(t, ValidationDetails(errors.New("boom")))
}
