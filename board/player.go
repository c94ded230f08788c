package board

// Player identifies one of the four seats. In a normalized state the
// active player is always seat 0 at the top left corner.
type Player uint8

// PlayerCount is the number of seats in a game.
const PlayerCount = 4

// AllPlayers lists the seats in turn order.
var AllPlayers = [PlayerCount]Player{0, 1, 2, 3}

// Next returns the following seat in turn order.
func (p Player) Next() Player {
	return (p + 1) % PlayerCount
}

// Previous returns the preceding seat in turn order.
func (p Player) Previous() Player {
	return (p + PlayerCount - 1) % PlayerCount
}

// OffsetWith resolves a seat relative to this one. On a state normalized
// to active player 0, the winner seat is relative; offsetting it with the
// absolute active player yields the absolute winner.
func (p Player) OffsetWith(other Player) Player {
	return (p + other) % PlayerCount
}

func (p Player) String() string {
	return string('0' + byte(p))
}
