package game

import (
	"fmt"

	"github.com/kalevala9/linea/tiles"
)

// PlayerType says who drives a seat: a human through a front end, or the
// search.
type PlayerType uint8

const (
	Human PlayerType = iota
	Automated
)

func (pt PlayerType) String() string {
	if pt == Automated {
		return "bot"
	}
	return "human"
}

// PlayerInfo is the static description of a seat.
type PlayerInfo struct {
	Nickname string
	Type     PlayerType
}

type playerState struct {
	PlayerInfo

	hand   *tiles.Rack
	points int
	passed bool
	turns  int
}

func newPlayerState(info PlayerInfo) *playerState {
	return &playerState{PlayerInfo: info, hand: tiles.NewRack()}
}

func (p *playerState) resetScore() {
	p.points = 0
	p.turns = 0
	p.passed = false
}

func (p *playerState) throwHandIn(bag *tiles.Bag) {
	bag.PutBack(p.hand.TilesOn())
	p.hand.Clear()
}

func (p *playerState) stateString(myturn bool) string {
	onturn := ""
	if myturn {
		onturn = "-> "
	}
	return fmt.Sprintf("%4v%12v (%v)%28v %4v", onturn, p.Nickname, p.Type, p.hand, p.points)
}

type playerStates []*playerState

func (ps playerStates) resetScore() {
	for idx := range ps {
		ps[idx].resetScore()
	}
}

func (ps playerStates) resetHands() {
	for idx := range ps {
		ps[idx].hand.Clear()
	}
}

func copyPlayers(ps playerStates) playerStates {
	p := make(playerStates, len(ps))
	for idx, porig := range ps {
		p[idx] = &playerState{
			PlayerInfo: porig.PlayerInfo,
			hand:       porig.hand.Copy(),
			points:     porig.points,
			passed:     porig.passed,
			turns:      porig.turns,
		}
	}
	return p
}

func (ps *playerStates) copyFrom(other playerStates) {
	for idx := range other {
		(*ps)[idx].PlayerInfo = other[idx].PlayerInfo
		(*ps)[idx].hand.CopyFrom(other[idx].hand)
		(*ps)[idx].points = other[idx].points
		(*ps)[idx].passed = other[idx].passed
		(*ps)[idx].turns = other[idx].turns
	}
}
