package system

import (
	"testing"

	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPlayer struct {
	played []string
}

func (p *recordingPlayer) PlayOneShot(clip string) {
	p.played = append(p.played, clip)
}

func TestRandomSoundPlaysOnce(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.RandomSoundComponent.Kind(), &component.RandomSound{Clips: []string{"a", "b", "c"}}))

	player := &recordingPlayer{}
	s := NewRandomSoundSystem(player)
	s.Pick = func(n int) int { return n - 1 }

	s.Update(w, 0.016)
	s.Update(w, 0.016)

	assert.Equal(t, []string{"c"}, player.played)
	sound, ok := ecs.Get(w, e, component.RandomSoundComponent.Kind())
	require.True(t, ok)
	assert.True(t, sound.Played)
}

func TestRandomSoundPicksFromClips(t *testing.T) {
	clips := []string{"a", "b", "c"}
	player := &recordingPlayer{}
	s := NewRandomSoundSystem(player)

	w := ecs.NewWorld()
	for i := 0; i < 50; i++ {
		e := ecs.CreateEntity(w)
		require.NoError(t, ecs.Add(w, e, component.RandomSoundComponent.Kind(), &component.RandomSound{Clips: clips}))
	}
	s.Update(w, 0)

	require.Len(t, player.played, 50)
	for _, clip := range player.played {
		assert.Contains(t, clips, clip)
	}
}

func TestRandomSoundWithoutClipsOrPlayer(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.RandomSoundComponent.Kind(), &component.RandomSound{}))

	player := &recordingPlayer{}
	NewRandomSoundSystem(player).Update(w, 0)
	assert.Empty(t, player.played)

	e2 := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e2, component.RandomSoundComponent.Kind(), &component.RandomSound{Clips: []string{"a"}}))
	assert.NotPanics(t, func() { NewRandomSoundSystem(nil).Update(w, 0) })
}
