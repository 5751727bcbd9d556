package component

// RandomSound plays one clip picked at random from Clips the first time the
// audio system sees the entity.
type RandomSound struct {
	Clips  []string
	Played bool
}

var RandomSoundComponent = NewComponent[RandomSound]()
