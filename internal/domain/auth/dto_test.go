package auth

import (
	"testing"

	"github.com/rovicpogi/Stoninonew/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRequest_Validate(t *testing.T) {
	ok := LoginRequest{Email: "admin@stonino.edu.ph", Password: "secret"}
	assert.NoError(t, ok.Validate())

	bad := LoginRequest{Email: "not-an-email"}
	err := bad.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}
