// Package gamestate holds the game-wide flags gameplay code reads: whether
// the game is over and which collider tags count as walkable ground. A
// State is owned by the session and handed to each controller.
package gamestate

import "github.com/milk9111/brawler/physics"

type State struct {
	gameOver   bool
	groundTags map[physics.Tag]struct{}
}

// New returns a running game state. With no tags, Platform and Water are ground.
func New(groundTags ...physics.Tag) *State {
	if len(groundTags) == 0 {
		groundTags = []physics.Tag{physics.TagPlatform, physics.TagWater}
	}
	s := &State{groundTags: make(map[physics.Tag]struct{}, len(groundTags))}
	for _, tag := range groundTags {
		s.groundTags[tag] = struct{}{}
	}
	return s
}

func (s *State) IsGameOver() bool {
	if s == nil {
		return false
	}
	return s.gameOver
}

func (s *State) SetGameOver(over bool) {
	if s == nil {
		return
	}
	s.gameOver = over
}

// IsGround reports whether colliders tagged tag are walkable.
func (s *State) IsGround(tag physics.Tag) bool {
	if s == nil {
		return false
	}
	_, ok := s.groundTags[tag]
	return ok
}
