package token_test

import (
	"testing"
	"time"

	"go-rrhh/internal/shared/token"

	"github.com/stretchr/testify/assert"
)

func TestIssueAndParse(t *testing.T) {
	const secret = "test-secret"

	t.Run("success", func(t *testing.T) {
		raw, err := token.Issue(secret, token.Claims{UserID: "u-1", Username: "jdoe", Role: "employee", Type: token.TypeAccess}, time.Minute)
		assert.NoError(t, err)

		claims, err := token.Parse(secret, raw, token.TypeAccess)
		assert.NoError(t, err)
		assert.Equal(t, "u-1", claims.UserID)
		assert.Equal(t, "jdoe", claims.Username)
		assert.Equal(t, "jdoe", claims.Subject)
	})

	t.Run("negative wrong type", func(t *testing.T) {
		raw, _ := token.Issue(secret, token.Claims{Username: "jdoe", Type: token.TypeRefresh}, time.Minute)
		_, err := token.Parse(secret, raw, token.TypeAccess)
		assert.ErrorIs(t, err, token.ErrInvalid)
	})

	t.Run("negative expired", func(t *testing.T) {
		raw, _ := token.Issue(secret, token.Claims{Username: "jdoe", Type: token.TypeAccess}, -time.Minute)
		_, err := token.Parse(secret, raw, token.TypeAccess)
		assert.ErrorIs(t, err, token.ErrExpired)
	})

	t.Run("negative wrong secret", func(t *testing.T) {
		raw, _ := token.Issue(secret, token.Claims{Username: "jdoe", Type: token.TypeAccess}, time.Minute)
		_, err := token.Parse("other", raw, token.TypeAccess)
		assert.ErrorIs(t, err, token.ErrInvalid)
	})

	t.Run("negative missing username", func(t *testing.T) {
		raw, _ := token.Issue(secret, token.Claims{UserID: "u-1", Type: token.TypeAccess}, time.Minute)
		_, err := token.Parse(secret, raw, token.TypeAccess)
		assert.ErrorIs(t, err, token.ErrInvalid)
	})
}
