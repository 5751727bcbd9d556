package prefabs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanScriptPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"game_over.tengo", "scripts/game_over.tengo"},
		{"scripts/game_over.tengo", "scripts/game_over.tengo"},
		{"prefabs/scripts/game_over.tengo", "scripts/game_over.tengo"},
		{"prefabs/game_over.tengo", "scripts/game_over.tengo"},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, cleanScriptPath(tc.in))
		})
	}
}

func TestLoadScript(t *testing.T) {
	withDir(t)

	embedded, err := LoadScript("game_over.tengo")
	require.NoError(t, err)
	assert.Contains(t, string(embedded), "game_over")

	dir := withDir(t)
	writeFile(t, dir, "scripts/game_over.tengo", "game_over := func(world) { return true }\n")

	override, err := LoadScript("prefabs/scripts/game_over.tengo")
	require.NoError(t, err)
	assert.Equal(t, "game_over := func(world) { return true }\n", string(override))
}
