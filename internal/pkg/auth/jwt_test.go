// internal/pkg/auth/jwt_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-cart/internal/config"
)

func testManager(secret string) *JWTManager {
	return NewJWTManager(&config.Config{
		JWT: config.JWTConfig{
			Secret: secret,
			Issuer: "storefront",
		},
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := testManager("0123456789abcdef0123456789abcdef")

	token, err := manager.GenerateToken("cust-1", "visitor@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cust-1", claims.CustomerID)
	assert.Equal(t, "visitor@example.com", claims.Email)
	assert.Equal(t, "storefront", claims.Issuer)
	assert.Equal(t, "customer:cust-1", claims.Subject)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := testManager("0123456789abcdef0123456789abcdef")
	verifier := testManager("another-secret-another-secret-32")

	token, err := issuer.GenerateToken("cust-1", "visitor@example.com", time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	manager := testManager("0123456789abcdef0123456789abcdef")

	token, err := manager.GenerateToken("cust-1", "visitor@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_EmptyCustomerID(t *testing.T) {
	manager := testManager("0123456789abcdef0123456789abcdef")

	token, err := manager.GenerateToken("", "visitor@example.com", time.Hour)
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no customer identity")
}

func TestValidateToken_Garbage(t *testing.T) {
	manager := testManager("0123456789abcdef0123456789abcdef")

	_, err := manager.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing scheme", header: "abc.def.ghi", want: ""},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", want: ""},
		{name: "empty header", header: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTokenFromHeader(tt.header))
		})
	}
}
