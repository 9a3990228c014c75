package view

import (
	"strings"
	"testing"

	"github.com/arthur-debert/punkt/pkg/commands/activate"
	"github.com/arthur-debert/punkt/pkg/commands/initialize"
	"github.com/arthur-debert/punkt/pkg/commands/list"
	"github.com/arthur-debert/punkt/pkg/commands/sync"
	"github.com/arthur-debert/punkt/pkg/commands/unsync"
	"github.com/arthur-debert/punkt/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAppliesPathFunc(t *testing.T) {
	upper := func(p string) string { return strings.ToUpper(p) }

	doc, ok := Build(&sync.Result{Copied: []string{"/a"}, CreatedDirs: []string{"/d"}}, upper)
	require.True(t, ok)
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "Copied", doc.Sections[0].Heading)
	assert.Equal(t, []Item{{Path: "/A"}}, doc.Sections[0].Items)
	assert.Equal(t, ToneInfo, doc.Sections[1].Tone)
}

func TestBuildDropsEmptySections(t *testing.T) {
	tests := []struct {
		name   string
		result interface{}
		empty  string
	}{
		{"sync", &sync.Result{}, "Nothing to sync"},
		{"activate", &activate.Result{}, "Nothing to activate"},
		{"unsync", &unsync.Result{}, "Nothing removed"},
		{"list", &list.Result{}, "Local tree is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, ok := Build(tt.result, nil)
			require.True(t, ok)
			assert.Empty(t, doc.Sections)
			assert.Equal(t, tt.empty, doc.Empty)
		})
	}
}

func TestBuildSpecialCases(t *testing.T) {
	doc, ok := Build(&list.Result{Entries: []tree.Entry{{Path: "/l/d", IsDir: true}}}, nil)
	require.True(t, ok)
	assert.Equal(t, "/l/d/", doc.Sections[0].Items[0].Path)

	doc, ok = Build(&unsync.Result{Removed: []string{"/l/x"}, Untracked: 3}, nil)
	require.True(t, ok)
	assert.Equal(t, "Removed (3 tracked entries dropped)", doc.Sections[0].Heading)

	doc, ok = Build(&initialize.Result{LocalRoot: "/l", CreatedRoot: true}, nil)
	require.True(t, ok)
	assert.Equal(t, []Item{{Label: "local tree", Path: "/l"}}, doc.Sections[0].Items)

	_, ok = Build(42, nil)
	assert.False(t, ok)
}
