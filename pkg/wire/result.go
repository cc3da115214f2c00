package wire

// Result is the round-result code carried in every server card event.
// Win and Loss are always from the player's perspective.
type Result uint8

// result codes
const (
	ResultNotOver Result = iota
	ResultTie
	ResultLoss
	ResultWin
)

func (r Result) String() string {
	switch r {
	case ResultNotOver:
		return "not-over"
	case ResultTie:
		return "tie"
	case ResultLoss:
		return "loss"
	case ResultWin:
		return "win"
	}

	return "unknown"
}

// Terminal returns true if the result ends the round
func (r Result) Terminal() bool {
	return r != ResultNotOver
}

// Action is a player decision sent during the player's turn. The values are
// the exact 5-byte strings used on the wire.
type Action string

// player actions
const (
	ActionHit   Action = "Hittt"
	ActionStand Action = "Stand"
)

// Valid returns true for the two actions the protocol defines
func (a Action) Valid() bool {
	return a == ActionHit || a == ActionStand
}
