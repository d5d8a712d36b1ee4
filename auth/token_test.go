package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTProvider_Round_Trip(t *testing.T) {
	req := require.New(t)
	provider := NewJWTProvider([]byte("test-secret"), time.Hour)

	token, err := provider.Generate("user_123", "test@example.com", []string{"user"})
	req.NoError(err)
	req.NotEmpty(token)

	identity, err := provider.Verify(context.Background(), token)
	req.NoError(err)
	req.Equal("user_123", identity.ID)
	req.Equal("test@example.com", identity.Email)
}

func TestJWTProvider_Rejects_Foreign_Signature(t *testing.T) {
	req := require.New(t)
	provider := NewJWTProvider([]byte("test-secret"), time.Hour)
	other := NewJWTProvider([]byte("another-secret"), time.Hour)

	token, err := other.Generate("user_123", "test@example.com", nil)
	req.NoError(err)

	_, err = provider.Verify(context.Background(), token)
	req.Error(err)
}

func TestJWTProvider_Rejects_Expired_Token(t *testing.T) {
	req := require.New(t)
	provider := NewJWTProvider([]byte("test-secret"), -time.Minute)

	token, err := provider.Generate("user_123", "test@example.com", nil)
	req.NoError(err)

	_, err = provider.Verify(context.Background(), token)
	req.Error(err)
}

func TestJWTProvider_Rejects_Garbage(t *testing.T) {
	req := require.New(t)
	provider := NewJWTProvider([]byte("test-secret"), time.Hour)

	_, err := provider.Verify(context.Background(), "not.a.jwt")
	req.Error(err)
}

func TestHashPassword_Verifies_And_Rejects(t *testing.T) {
	req := require.New(t)

	hash, err := HashPassword("Sup3r-Secret-Pass!")
	req.NoError(err)
	req.Contains(hash, "$argon2id$")

	match, err := ComparePassword("Sup3r-Secret-Pass!", hash)
	req.NoError(err)
	req.True(match)

	match, err = ComparePassword("wrong-password", hash)
	req.NoError(err)
	req.False(match)
}

func TestHashPassword_Salts_Are_Unique(t *testing.T) {
	req := require.New(t)

	first, err := HashPassword("Sup3r-Secret-Pass!")
	req.NoError(err)
	second, err := HashPassword("Sup3r-Secret-Pass!")
	req.NoError(err)

	req.NotEqual(first, second)
}

func TestComparePassword_Rejects_Malformed_Hash(t *testing.T) {
	req := require.New(t)

	_, err := ComparePassword("anything", "not-an-encoded-hash")
	req.Error(err)
}

func TestValidateRegister(t *testing.T) {
	req := require.New(t)

	req.NoError(ValidateRegister(RegisterRequest{
		Email:       "alice@example.com",
		Password:    "Sup3r-Secret-Pass!",
		DisplayName: "Alice",
	}))

	// Too short
	req.Error(ValidateRegister(RegisterRequest{
		Email:       "alice@example.com",
		Password:    "Ab1!",
		DisplayName: "Alice",
	}))

	// Long enough but all lowercase
	req.Error(ValidateRegister(RegisterRequest{
		Email:       "alice@example.com",
		Password:    "onlylowercaseletters",
		DisplayName: "Alice",
	}))

	// Not an email
	req.Error(ValidateRegister(RegisterRequest{
		Email:       "not-an-email",
		Password:    "Sup3r-Secret-Pass!",
		DisplayName: "Alice",
	}))
}
