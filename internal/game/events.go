package game

import "strings"

// Events is the set of things that happened during one tick
type Events uint16

const (
	EventCeiling Events = 1 << iota
	EventWall
	EventNet
	EventNetTop
	EventPlayerHit
	EventAIHit
	EventFloor
	EventPoint
	EventServe
	EventWon
	EventLost
)

var eventNames = []string{
	"ceiling", "wall", "net", "net-top", "player-hit", "ai-hit",
	"floor", "point", "serve", "won", "lost",
}

// Has reports whether all flags in f are set
func (e Events) Has(f Events) bool {
	return e&f == f
}

// Bounced reports a rebound off the court or the net
func (e Events) Bounced() bool {
	return e&(EventCeiling|EventWall|EventNet|EventNetTop) != 0
}

// Hit reports a paddle hit by either side
func (e Events) Hit() bool {
	return e&(EventPlayerHit|EventAIHit) != 0
}

func (e Events) String() string {
	if e == 0 {
		return "none"
	}
	var names []string
	for i, name := range eventNames {
		if e&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}
