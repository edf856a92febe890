package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssuer(t *testing.T) {
	issuer := NewIssuer("secret")

	tokenString, err := issuer.Build("code42")
	require.NoError(t, err)

	code, err := issuer.DeviceCode(tokenString)
	require.NoError(t, err)
	require.Equal(t, "code42", code)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "other secret", token: mustBuild(t, NewIssuer("other"), "code42")},
		{name: "empty code", token: mustBuild(t, issuer, "")},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := issuer.DeviceCode(test.token)
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func mustBuild(t *testing.T, issuer *Issuer, code string) string {
	t.Helper()
	s, err := issuer.Build(code)
	require.NoError(t, err)
	return s
}
