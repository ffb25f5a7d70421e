package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "selections.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestAppendAndRecent(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, Selection{TsUnix: 100, Text: "GitHub", Type: "bookmark", Plugin: "bookmarks", Query: "gith"}))
	require.NoError(t, l.Append(ctx, Selection{TsUnix: 200, Text: "htop", Type: "app", Plugin: "apps", Query: "ht"}))

	got, err := l.Recent(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "htop", got[0].Text, "newest first")
	assert.Equal(t, "GitHub", got[1].Text)
	assert.Equal(t, "gith", got[1].Query)
}

func TestRecentFilterIsLiteral(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, Selection{TsUnix: 1, Text: "100% done"}))
	require.NoError(t, l.Append(ctx, Selection{TsUnix: 2, Text: "1000 things"}))

	got, err := l.Recent(ctx, "100%", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "100% done", got[0].Text)
}

func TestRecentLimit(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()
	for i := int64(0); i < 5; i++ {
		require.NoError(t, l.Append(ctx, Selection{TsUnix: i, Text: "x"}))
	}

	got, err := l.Recent(ctx, "", 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestClear(t *testing.T) {
	l := openTestLog(t)
	ctx := context.Background()
	require.NoError(t, l.Append(ctx, Selection{TsUnix: 1, Text: "x"}))
	require.NoError(t, l.Clear(ctx))

	got, err := l.Recent(ctx, "", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCloseIsIdempotent(t *testing.T) {
	l := openTestLog(t)
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
}
