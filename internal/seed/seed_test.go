package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHashStable(t *testing.T) {
	first, err := ContentHash()
	require.NoError(t, err)
	second, err := ContentHash()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // hex-encoded sha256
}

func TestContentHashTracksDefinition(t *testing.T) {
	before, err := ContentHash()
	require.NoError(t, err)

	original := DefaultMenus
	defer func() { DefaultMenus = original }()

	DefaultMenus = append([]MenuSeed{{Name: "Extra", Path: "/extra"}}, original...)
	after, err := ContentHash()
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestDefaultMenuPathsUnique(t *testing.T) {
	seen := map[string]bool{}
	var walk func(items []MenuSeed)
	walk = func(items []MenuSeed) {
		for _, item := range items {
			assert.NotEmpty(t, item.Path, "menu %q has no path", item.Name)
			assert.False(t, seen[item.Path], "duplicate menu path %q", item.Path)
			seen[item.Path] = true
			walk(item.Children)
		}
	}
	walk(DefaultMenus)
}

func TestDefaultMenusHaveSuperOnlySection(t *testing.T) {
	var superOnly int
	for _, item := range DefaultMenus {
		if item.SuperOnly {
			superOnly++
		}
	}
	assert.Equal(t, 1, superOnly, "exactly one super-only root expected")
}
