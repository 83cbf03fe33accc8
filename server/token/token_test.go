package token

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracon/scopecmd/server/dao"
	"github.com/tracon/scopecmd/server/dao/inmem"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func Test_Get(t *testing.T) {
	testCases := []struct {
		name      string
		header    string
		expect    string
		expectErr bool
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", expect: "abc.def.ghi"},
		{name: "scheme is case-insensitive", header: "bearer   abc", expect: "abc"},
		{name: "no header", expectErr: true},
		{name: "no scheme", header: "abc.def.ghi", expectErr: true},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			actual, err := Get(req)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func Test_GenerateValidate(t *testing.T) {
	ctx := context.Background()
	repo := inmem.NewSessionsRepository()

	sesh, err := repo.Create(ctx, dao.Session{Scenario: "Empty"})
	require.NoError(t, err)
	other, err := repo.Create(ctx, dao.Session{Scenario: "Empty"})
	require.NoError(t, err)

	tok, err := Generate(testSecret, sesh)
	require.NoError(t, err)

	t.Run("valid token gives its session", func(t *testing.T) {
		actual, err := Validate(ctx, tok, testSecret, repo)
		require.NoError(t, err)
		assert.Equal(t, sesh.ID, actual.ID)
		assert.NotEqual(t, other.ID, actual.ID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := Validate(ctx, tok, []byte("ffffffffffffffffffffffffffffffff"), repo)
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := Validate(ctx, "not-a-jwt", testSecret, repo)
		assert.Error(t, err)
	})

	t.Run("session no longer exists", func(t *testing.T) {
		gone, err := repo.Create(ctx, dao.Session{Scenario: "Empty"})
		require.NoError(t, err)
		goneTok, err := Generate(testSecret, gone)
		require.NoError(t, err)
		_, err = repo.Delete(ctx, gone.ID)
		require.NoError(t, err)

		_, err = Validate(ctx, goneTok, testSecret, repo)
		assert.Error(t, err)
	})

	t.Run("token for unknown subject", func(t *testing.T) {
		stranger := dao.Session{ID: uuid.New(), Created: sesh.Created}
		strangerTok, err := Generate(testSecret, stranger)
		require.NoError(t, err)

		_, err = Validate(ctx, strangerTok, testSecret, repo)
		assert.Error(t, err)
	})
}
