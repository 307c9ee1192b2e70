package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestStruct struct {
	Name string `validate:"required"`
	Mode string `validate:"omitempty,oneof=live simulation"`
	Age  int    `validate:"gte=0,lte=150"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct", func(t *testing.T) {
		s := TestStruct{Name: "Hunter", Mode: "live", Age: 30}

		err := ValidateStruct(&s)
		assert.NoError(t, err)
	})

	t.Run("missing required field", func(t *testing.T) {
		s := TestStruct{Age: 30}

		err := ValidateStruct(&s)
		assert.Error(t, err)
		assert.True(t, IsValidationError(err))

		fields := GetValidationFields(err)
		assert.Contains(t, fields, "Name")
	})

	t.Run("value not in set", func(t *testing.T) {
		s := TestStruct{Name: "Hunter", Mode: "turbo"}

		err := ValidateStruct(&s)
		require.Error(t, err)
		assert.Contains(t, GetValidationFields(err)["Mode"], "must be one of")
	})

	t.Run("age out of range", func(t *testing.T) {
		s := TestStruct{Name: "Hunter", Age: 200}

		err := ValidateStruct(&s)
		assert.Error(t, err)
		assert.Contains(t, GetValidationFields(err), "Age")
	})
}

func TestDecodeJSON(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		var s TestStruct
		err := DecodeJSON(strings.NewReader(`{"Name":"Guardian","Age":3}`), &s)
		require.NoError(t, err)
		assert.Equal(t, "Guardian", s.Name)
	})

	t.Run("malformed body", func(t *testing.T) {
		var s TestStruct
		err := DecodeJSON(strings.NewReader(`{"Name":`), &s)
		require.Error(t, err)
		assert.False(t, IsValidationError(err))
	})

	t.Run("empty body is validated as zero value", func(t *testing.T) {
		var s TestStruct
		err := DecodeJSON(strings.NewReader(""), &s)
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})
}

func TestNewValidationError(t *testing.T) {
	s := TestStruct{Mode: "turbo", Age: 200}

	err := ValidateStruct(&s)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)

	assert.Equal(t, "Validation failed", validationErr.Message)
	assert.Contains(t, validationErr.Fields, "Name")
	assert.Contains(t, validationErr.Fields, "Mode")
	assert.Contains(t, validationErr.Fields, "Age")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Message: "Test validation error",
		Fields:  map[string]string{"field1": "error1"},
	}

	assert.Equal(t, "Test validation error", err.Error())
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(&ValidationError{Message: "test"}))
	assert.False(t, IsValidationError(assert.AnError))
}

func TestGetValidationFields(t *testing.T) {
	fields := map[string]string{"field1": "error1", "field2": "error2"}
	err := &ValidationError{Message: "test", Fields: fields}

	assert.Equal(t, fields, GetValidationFields(err))
	assert.Nil(t, GetValidationFields(assert.AnError))
}
