package jwt

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTAuth_VerifiesTokensSignedWithTheSecret(t *testing.T) {
	svc := NewJWTService("test-secret")

	_, tokenString, err := svc.JWTAuth().Encode(map[string]interface{}{
		"organization_id": "org-1",
		"type":            "access",
	})
	require.NoError(t, err)

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "org-1", claims["organization_id"])
	assert.Equal(t, "access", claims["type"])
}

func TestJWTAuth_RejectsForeignSecret(t *testing.T) {
	signer := NewJWTService("other-secret")
	_, tokenString, err := signer.JWTAuth().Encode(map[string]interface{}{"type": "access"})
	require.NoError(t, err)

	verifier := NewJWTService("test-secret")
	_, err = jwtauth.VerifyToken(verifier.JWTAuth(), tokenString)
	assert.Error(t, err)
}
