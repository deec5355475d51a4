package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleMenuLifecycle(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	options := []RoleOption{
		{RoleID: "r1", Description: "Reader"},
		{RoleID: "r2", Description: "Writer"},
	}
	require.NoError(t, d.InsertMenu(ctx, "m1", "g1", "c1", "author1", options))

	author, err := d.MenuAuthor(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "author1", author)

	ok, err := d.IsMenu(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := d.MenuOptions(ctx, "m1")
	require.NoError(t, err)
	assert.ElementsMatch(t, options, got)

	require.NoError(t, d.DeleteMenu(ctx, "m1"))

	author, err = d.MenuAuthor(ctx, "m1")
	require.NoError(t, err)
	assert.Empty(t, author)

	got, err = d.MenuOptions(ctx, "m1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMenuAuthorUnknownMessage(t *testing.T) {
	d := newTestDB(t)

	author, err := d.MenuAuthor(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, author)

	ok, err := d.IsMenu(context.Background(), "unknown")
	require.NoError(t, err)
	assert.False(t, ok)
}
