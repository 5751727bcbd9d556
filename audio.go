package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/brawler/assets"
	"github.com/milk9111/brawler/ecs/system"
	"github.com/milk9111/brawler/prefabs"
)

// soundBank plays embedded clips by name.
type soundBank struct {
	players map[string]*audio.Player
}

var _ system.AudioPlayer = (*soundBank)(nil)

func newSoundBank() *soundBank {
	return &soundBank{players: make(map[string]*audio.Player)}
}

// Load replaces the bank's clips, decoding each one up front. A clip that
// fails to load is logged and stays silent.
func (b *soundBank) Load(clips []prefabs.AudioSpec) {
	b.Close()
	b.players = make(map[string]*audio.Player, len(clips))
	for _, clip := range clips {
		if _, ok := b.players[clip.Name]; ok {
			continue
		}
		p, err := assets.LoadAudioPlayer(clip.File)
		if err != nil {
			log.Printf("audio: %s: %v", clip.Name, err)
			continue
		}
		if clip.Volume > 0 {
			p.SetVolume(clip.Volume)
		}
		b.players[clip.Name] = p
	}
}

func (b *soundBank) PlayOneShot(clip string) {
	p, ok := b.players[clip]
	if !ok {
		log.Printf("audio: unknown clip %q", clip)
		return
	}
	if err := p.Rewind(); err != nil {
		log.Printf("audio: rewind %q: %v", clip, err)
		return
	}
	p.Play()
}

func (b *soundBank) Close() {
	for name, p := range b.players {
		if err := p.Close(); err != nil {
			log.Printf("audio: close %q: %v", name, err)
		}
	}
}
