package password_test

import (
	"strings"
	"testing"
	"todoapp/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	password.Cost = bcrypt.MinCost
}

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "valid password", password: "validPassword123"},
		{name: "longest accepted", password: strings.Repeat("a", password.MaxLength)},
		{name: "unicode", password: "pässwörd-ünïcode"},
		{name: "empty", password: "", wantErr: password.ErrEmptyPassword},
		{name: "too long", password: strings.Repeat("a", password.MaxLength+1), wantErr: password.ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)
			assert.NoError(t, password.Verify(tt.password, hash))
		})
	}
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("s3cret-pass")
	require.NoError(t, err)

	second, err := password.Hash("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashOptional(t *testing.T) {
	hash, err := password.HashOptional(nil)
	require.NoError(t, err)
	assert.Nil(t, hash)

	secret := "s3cret-pass"
	hash, err = password.HashOptional(&secret)
	require.NoError(t, err)
	require.NotNil(t, hash)
	assert.NoError(t, password.Verify(secret, *hash))

	empty := ""
	_, err = password.HashOptional(&empty)
	assert.ErrorIs(t, err, password.ErrEmptyPassword)
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("s3cret-pass")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
	}{
		{name: "match", password: "s3cret-pass", hash: hash},
		{name: "mismatch", password: "wrong-pass", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "case sensitive", password: "S3CRET-PASS", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", password: "s3cret-pass", hash: "", wantErr: password.ErrInvalidPassword},
		{name: "malformed hash", password: "s3cret-pass", hash: "not-a-bcrypt-hash", wantErr: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
