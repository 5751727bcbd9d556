package game

const (
	DefaultFixedStep = 0.02
	DefaultMaxSteps  = 5
)

// Ticker receives the two cadences the loop drives.
type Ticker interface {
	FixedTick(dt float64)
	VariableTick(dt float64)
}

// Loop turns variable frame times into zero or more fixed ticks followed by
// one variable tick. Backlog beyond MaxSteps fixed ticks is dropped so a
// long stall does not snowball.
type Loop struct {
	FixedStep float64
	MaxSteps  int

	ticker      Ticker
	accumulator float64
}

func NewLoop(ticker Ticker) *Loop {
	return &Loop{
		FixedStep: DefaultFixedStep,
		MaxSteps:  DefaultMaxSteps,
		ticker:    ticker,
	}
}

// Advance runs one frame and returns the number of fixed ticks it ran.
func (l *Loop) Advance(frameDt float64) int {
	if frameDt < 0 {
		frameDt = 0
	}
	l.accumulator += frameDt

	steps := 0
	for l.accumulator >= l.FixedStep && steps < l.MaxSteps {
		l.ticker.FixedTick(l.FixedStep)
		l.accumulator -= l.FixedStep
		steps++
	}
	if l.accumulator >= l.FixedStep {
		l.accumulator = 0
	}

	l.ticker.VariableTick(frameDt)
	return steps
}

// Alpha is how far the simulation is into the next fixed tick, in [0, 1).
func (l *Loop) Alpha() float64 {
	if l.FixedStep <= 0 {
		return 0
	}
	return l.accumulator / l.FixedStep
}
