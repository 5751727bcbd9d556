package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedGameOverRules(t *testing.T) {
	rules, err := LoadRules("game_over.tengo")
	require.NoError(t, err)
	assert.Equal(t, "game_over.tengo", rules.Name())

	tests := []struct {
		name string
		snap Snapshot
		want bool
	}{
		{"standing", Snapshot{PlayerY: 1, KillY: -10, Grounded: true, GroundTag: "Platform", GroundSeconds: 30}, false},
		{"fell_out", Snapshot{PlayerY: -10.5, KillY: -10}, true},
		{"just_above_kill_plane", Snapshot{PlayerY: -9.9, KillY: -10}, false},
		{"wading", Snapshot{PlayerY: 1, KillY: -10, Grounded: true, GroundTag: "Water", GroundSeconds: 1}, false},
		{"drowned", Snapshot{PlayerY: 1, KillY: -10, Grounded: true, GroundTag: "Water", GroundSeconds: 1.5}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := rules.GameOver(tc.snap)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCompileRulesErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", "game_over := func(world) {"},
		{"missing_game_over", "x := 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CompileRules(tc.name, []byte(tc.src))
			assert.Error(t, err)
		})
	}
}

func TestRulesMustReturnBool(t *testing.T) {
	rules, err := CompileRules("int", []byte(`game_over := func(world) { return 1 }`))
	require.NoError(t, err)

	_, err = rules.GameOver(Snapshot{})
	assert.Error(t, err)
}

func TestRulesSeeSnapshotAndStdlib(t *testing.T) {
	src := `
text := import("text")
game_over := func(world) {
	log("state", world.player_state)
	return text.has_prefix(world.player_state, "Dea") && world.broken >= 2 && world.elapsed > 1.0
}
`
	rules, err := CompileRules("stdlib", []byte(src))
	require.NoError(t, err)

	over, err := rules.GameOver(Snapshot{PlayerState: "Dead", Broken: 2, Elapsed: 1.5})
	require.NoError(t, err)
	assert.True(t, over)

	over, err = rules.GameOver(Snapshot{PlayerState: "Idle", Broken: 2, Elapsed: 1.5})
	require.NoError(t, err)
	assert.False(t, over)
}

func TestNilRules(t *testing.T) {
	var rules *Rules
	over, err := rules.GameOver(Snapshot{PlayerY: -100})
	assert.NoError(t, err)
	assert.False(t, over)
}
