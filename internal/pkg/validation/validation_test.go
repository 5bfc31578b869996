package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Decision string `validate:"omitempty,oneof=approved rejected"`
}

func TestStruct_Valid(t *testing.T) {
	t.Parallel()

	err := Struct(&signupForm{Email: "a@b.io", Password: "longenough"})
	assert.NoError(t, err)
}

func TestStruct_MessagesAreUserFacing(t *testing.T) {
	t.Parallel()

	err := Struct(&signupForm{Email: "not-an-email", Password: "short"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email must be a valid email address")
	assert.Contains(t, err.Error(), "password must be at least 8 characters")
}

func TestStruct_OneOf(t *testing.T) {
	t.Parallel()

	err := Struct(&signupForm{Email: "a@b.io", Password: "longenough", Decision: "maybe"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decision must be one of: approved rejected")
}
