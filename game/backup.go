package game

import (
	"github.com/kalevala9/linea/board"
	"github.com/kalevala9/linea/tiles"
)

// BackupMode controls whether PlayMove snapshots state first.
type BackupMode int

const (
	// NoBackup never performs game backups. This is the authoritative
	// gameplay mode.
	NoBackup BackupMode = iota
	// SimulationMode keeps a stack of state copies so the search can play
	// and unplay moves without ever corrupting the real game.
	SimulationMode
)

// stateBackup is the subset of Game that a move can change.
type stateBackup struct {
	board             *board.Board
	bag               *tiles.Bag
	playing           PlayState
	consecutivePasses int
	onturn            int
	turnnum           int
	players           playerStates
}

func (g *Game) SetBackupMode(m BackupMode) {
	g.backupMode = m
}

// SetStateStackLength preallocates the backup stack. The search sets this to
// its ply depth before exploring; preallocating avoids per-node allocations
// and GC churn.
func (g *Game) SetStateStackLength(length int) {
	g.stateStack = make([]*stateBackup, length)
	for idx := range g.stateStack {
		g.stateStack[idx] = &stateBackup{
			board:             g.board.Copy(),
			bag:               g.bag.Copy(),
			playing:           g.playing,
			consecutivePasses: g.consecutivePasses,
			onturn:            g.onturn,
			turnnum:           g.turnnum,
			players:           copyPlayers(g.players),
		}
	}
	g.stackPtr = 0
}

func (g *Game) backupState() {
	st := g.stateStack[g.stackPtr]
	st.board.CopyFrom(g.board)
	st.bag.CopyFrom(g.bag)
	st.playing = g.playing
	st.consecutivePasses = g.consecutivePasses
	st.onturn = g.onturn
	st.turnnum = g.turnnum
	st.players.copyFrom(g.players)
	g.stackPtr++
}

// UnplayLastMove restores the state from before the last simulated move.
// It is the other half of the search's play/unplay contract: exploring a
// branch must never leak into the authoritative state.
func (g *Game) UnplayLastMove() {
	b := g.stateStack[g.stackPtr-1]
	g.stackPtr--

	g.board.CopyFrom(b.board)
	g.bag.CopyFrom(b.bag)
	g.playing = b.playing
	g.consecutivePasses = b.consecutivePasses
	g.onturn = b.onturn
	g.turnnum = b.turnnum
	g.players.copyFrom(b.players)
}

// ResetToFirstState unplays all moves on the stack.
func (g *Game) ResetToFirstState() {
	b := g.stateStack[0]
	g.stackPtr = 0

	g.board.CopyFrom(b.board)
	g.bag.CopyFrom(b.bag)
	g.playing = b.playing
	g.consecutivePasses = b.consecutivePasses
	g.onturn = b.onturn
	g.turnnum = b.turnnum
	g.players.copyFrom(b.players)
}
