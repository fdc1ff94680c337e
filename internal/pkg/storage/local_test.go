package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveOpenExists(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	ok, err := s.Exists(ctx, "registers/2024-06/register.xlsx")
	require.NoError(t, err)
	assert.False(t, ok)

	key, err := s.Save(ctx, strings.NewReader("first"), "registers/2024-06/register.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "registers/2024-06/register.xlsx", key)

	_, err = s.Save(ctx, strings.NewReader("second"), "registers/2024-06/register.xlsx")
	require.NoError(t, err)

	ok, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.Open(ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "second", string(b))
}

func TestLocalStorage_RejectsEscapingPaths(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	cases := []string{"../outside.xlsx", "a/../../outside.xlsx", ".", ""}
	for _, path := range cases {
		_, err := s.Save(ctx, strings.NewReader("x"), path)
		assert.ErrorIs(t, err, ErrInvalidPath, path)
	}
}

func TestLocalStorage_OpenMissing(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Open(context.Background(), "missing.xlsx")
	assert.ErrorIs(t, err, ErrNotFound)
}
