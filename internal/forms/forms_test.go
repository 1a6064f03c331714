package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Contact(t *testing.T) {
	v := New()

	tests := []struct {
		name   string
		form   Contact
		fields map[string]string
	}{
		{
			name: "valid without subject",
			form: Contact{Name: "Ada", Email: "ada@example.com", Message: "Do you ship abroad?"},
		},
		{
			name:   "missing required fields",
			form:   Contact{Subject: "hi"},
			fields: map[string]string{"name": "is required", "email": "is required", "message": "is required"},
		},
		{
			name:   "blank counts as missing",
			form:   Contact{Name: "   ", Email: "ada@example.com", Message: "hello"},
			fields: map[string]string{"name": "is required"},
		},
		{
			name:   "bad email",
			form:   Contact{Name: "Ada", Email: "not-an-email", Message: "hello"},
			fields: map[string]string{"email": "must be a valid email address"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.form)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			var ve *Error
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.fields, ve.Fields)
		})
	}
}

func TestValidate_Newsletter(t *testing.T) {
	v := New()

	form := Newsletter{Email: "  reader@example.com "}
	require.NoError(t, v.Validate(&form))
	assert.Equal(t, "reader@example.com", form.Email)

	var ve *Error
	require.ErrorAs(t, v.Validate(&Newsletter{Email: " "}), &ve)
	assert.Equal(t, "is required", ve.Fields["email"])
}

func TestValidate_Quantities(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&AddToCart{Quantity: 1}))
	zero, negative := 0, -1
	assert.NoError(t, v.Validate(&SetQuantity{Quantity: &zero}))

	var ve *Error
	require.ErrorAs(t, v.Validate(&AddToCart{Quantity: 0}), &ve)
	assert.Equal(t, "must be at least 1", ve.Fields["quantity"])

	require.ErrorAs(t, v.Validate(&SetQuantity{Quantity: &negative}), &ve)
	assert.Equal(t, "must be at least 0", ve.Fields["quantity"])

	require.ErrorAs(t, v.Validate(&SetQuantity{}), &ve)
	assert.Equal(t, "is required", ve.Fields["quantity"])
}

func TestError_Message(t *testing.T) {
	err := &Error{Fields: map[string]string{
		"name":    "is required",
		"email":   "must be a valid email address",
		"message": "is required",
	}}

	for i := 0; i < 10; i++ {
		assert.Equal(t, "validation failed: email must be a valid email address, message is required, name is required", err.Error())
	}
}
