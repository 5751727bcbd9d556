package component

import "github.com/milk9111/brawler/physics"

// Tag classifies an entity the same way its collider is classified.
type Tag struct {
	Name physics.Tag
}

var TagComponent = NewComponent[Tag]()

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()
