package bookmarks

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/beacon/internal/logging"
)

// indexOf builds an index whose snapshot holds the given entries directly.
func indexOf(maxResults int, entries ...Entry) *Index {
	idx := NewIndex(nil, maxResults, logging.Discard())
	idx.snapshot.Store(&entries)
	return idx
}

func TestSearchBothGitHostsMatch(t *testing.T) {
	idx := indexOf(0,
		Entry{Title: "GitHub", URL: "https://github.com/", Host: "github.com"},
		Entry{Title: "Gitlab", URL: "https://gitlab.com/", Host: "gitlab.com"},
		Entry{Title: "Weather", URL: "https://wttr.in/", Host: "wttr.in"},
	)

	got := idx.Search("git")
	require.Len(t, got, 2)
	// Both score identically (title + host + URL); the tiebreak is the
	// case-folded title.
	assert.Equal(t, "GitHub", got[0].Title)
	assert.Equal(t, "Gitlab", got[1].Title)
}

func TestSearchTitleOutweighsHost(t *testing.T) {
	idx := indexOf(0,
		Entry{Title: "release notes", URL: "https://example.org/a", Host: "example.org"},
		Entry{Title: "dashboard", URL: "https://notes.example.org/", Host: "notes.example.org"},
	)

	got := idx.Search("notes")
	require.Len(t, got, 2)
	assert.Equal(t, "release notes", got[0].Title)
}

func TestSearchExactHostBonus(t *testing.T) {
	// "news.io" as an exact host beats a title-only match of the same token.
	idx := indexOf(0,
		Entry{Title: "reading news.io later", URL: "https://pocket.example.com/", Host: "pocket.example.com"},
		Entry{Title: "frontpage", URL: "https://news.io/", Host: "news.io"},
	)

	got := idx.Search("news.io")
	require.Len(t, got, 2)
	assert.Equal(t, "frontpage", got[0].Title)
}

func TestSearchZeroScoreExcluded(t *testing.T) {
	idx := indexOf(0,
		Entry{Title: "alpha", URL: "https://a.example.com/", Host: "a.example.com"},
	)
	assert.Empty(t, idx.Search("zzz"))
	assert.Empty(t, idx.Search("   "))
}

func TestSearchMultiTokenAccumulates(t *testing.T) {
	idx := indexOf(0,
		Entry{Title: "Go blog", URL: "https://go.dev/blog", Host: "go.dev"},
		Entry{Title: "Go playground", URL: "https://go.dev/play", Host: "go.dev"},
	)

	got := idx.Search("go blog")
	require.NotEmpty(t, got)
	assert.Equal(t, "Go blog", got[0].Title)
}

func TestSearchFolderPathMatches(t *testing.T) {
	idx := indexOf(0,
		Entry{Title: "intranet", URL: "https://intra.corp/", Host: "intra.corp", Folder: "Work/Tools"},
	)
	got := idx.Search("tools")
	require.Len(t, got, 1)
	assert.Equal(t, "intranet", got[0].Title)
}

func TestSearchTruncatesToMax(t *testing.T) {
	entries := make([]Entry, 0, 30)
	for i := 0; i < 30; i++ {
		entries = append(entries, Entry{
			Title: fmt.Sprintf("doc %02d", i),
			URL:   fmt.Sprintf("https://docs.example.com/%d", i),
			Host:  "docs.example.com",
		})
	}
	idx := indexOf(10, entries...)

	got := idx.Search("doc")
	assert.Len(t, got, 10)
}
