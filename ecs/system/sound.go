package system

import (
	"log"
	"math/rand/v2"

	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// AudioPlayer plays a named clip once.
type AudioPlayer interface {
	PlayOneShot(clip string)
}

// RandomSoundSystem plays one random clip for each RandomSound the first time
// it sees it.
type RandomSoundSystem struct {
	player AudioPlayer
	// Pick returns an index in [0, n).
	Pick func(n int) int
}

func NewRandomSoundSystem(player AudioPlayer) *RandomSoundSystem {
	return &RandomSoundSystem{player: player, Pick: rand.IntN}
}

func (s *RandomSoundSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.RandomSoundComponent.Kind(), func(e ecs.Entity, sound *component.RandomSound) {
		if sound.Played {
			return
		}
		sound.Played = true
		if len(sound.Clips) == 0 {
			log.Printf("audio: %s has no clips", e)
			return
		}
		if s.player == nil {
			return
		}
		s.player.PlayOneShot(sound.Clips[s.Pick(len(sound.Clips))])
	})
}
