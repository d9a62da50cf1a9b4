package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	To          string `validate:"required,addresslist"`
	ContentType string `validate:"omitempty,contenttype"`
	SubjectLine string `validate:"max=5"`
}

func TestV10Validator_Validate(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		err := v.Validate(sample{To: "a@x.com, b@x.com", ContentType: "text/plain; charset=utf-8"})
		assert.NoError(t, err)
	})

	t.Run("invalid", func(t *testing.T) {
		err := v.Validate(sample{To: " , ", ContentType: "///", SubjectLine: "too long"})
		require.Error(t, err)

		var verr V10ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "To must contain at least one address", verr.Values()["to"])
		assert.Equal(t, "ContentType must be a valid MIME content type", verr.Values()["content_type"])
		assert.Contains(t, verr.Values(), "subject_line")
	})
}

func TestV10ValidationError_Error(t *testing.T) {
	assert.Equal(t, "validation error", V10ValidationError{}.Error())
	assert.JSONEq(t, `{"to":"bad"}`, V10ValidationError{"to": "bad"}.Error())
}
