// Package game encapsulates the authoritative state machine: whose turn it
// is, the canonical board, bag and hands, and the three committed actions
// (place, pass, exchange). Everything else only reads this state or works on
// snapshots of it.
package game

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/kalevala9/linea/board"
	"github.com/kalevala9/linea/move"
	"github.com/kalevala9/linea/rules"
	"github.com/kalevala9/linea/tiles"
)

const (
	// DefaultDealSize is how many tiles a hand is refilled toward.
	DefaultDealSize = 6
	// DefaultCopiesPerCombo is how many copies of each (shape, color)
	// combination the bag starts with.
	DefaultCopiesPerCombo = 3
)

// PlayState is whether the game is still going.
type PlayState uint8

const (
	Playing PlayState = iota
	GameOver
)

var (
	// ErrGameOver is returned for any action on a finished game. The
	// terminal state is absorbing.
	ErrGameOver = errors.New("the game is over")
	// ErrInsufficientInventory is returned when an exchange asks for more
	// tiles than the bag holds.
	ErrInsufficientInventory = errors.New("not enough tiles left in the bag to exchange")
)

// Options configures a new game. Zero fields take the documented defaults.
type Options struct {
	Players []PlayerInfo
	// Rules is the validation/scoring variant; nil means rules.Standard().
	Rules *rules.Rules
	// CopiesPerCombo and DealSize default to 3 and 6.
	CopiesPerCombo int
	DealSize       int
	// PassThreshold is how many consecutive passes end the game; 0 means
	// one per player.
	PassThreshold int
	// EndOnHandEmpty ends the game the moment a placement empties the
	// hand, without drawing replacements. The default (false) ends only
	// when the hand and the bag are both empty.
	EndOnHandEmpty bool
	// Seed seeds the bag shuffle; 0 draws a seed from crypto/rand.
	Seed int64
}

func (o *Options) normalize() error {
	if len(o.Players) < 2 {
		return errors.New("a game needs at least two players")
	}
	if o.Rules == nil {
		o.Rules = rules.Standard()
	}
	if o.Rules.Cardinality <= 0 || o.Rules.Cardinality > tiles.MaxCardinality {
		o.Rules.Cardinality = tiles.MaxCardinality
	}
	if o.CopiesPerCombo == 0 {
		o.CopiesPerCombo = DefaultCopiesPerCombo
	}
	if o.DealSize == 0 {
		o.DealSize = DefaultDealSize
	}
	if o.PassThreshold == 0 {
		o.PassThreshold = len(o.Players)
	}
	return nil
}

func seededRandSource(seed int64) (int64, *rand.Rand) {
	if seed == 0 {
		var b [8]byte
		if _, err := crypto_rand.Read(b[:]); err != nil {
			panic("cannot seed math/rand package with cryptographically secure random number generator")
		}
		seed = int64(binary.LittleEndian.Uint64(b[:]))
	}
	return seed, rand.New(rand.NewSource(seed))
}

// Game is the internal game structure that controls the entire business
// logic of the game; drawing, making moves, etc. A Game doesn't care how it
// is played: human front ends and the search both act on it through the same
// three actions.
type Game struct {
	opts  Options
	rules *rules.Rules

	board *board.Board
	bag   *tiles.Bag

	players           playerStates
	onturn            int
	turnnum           int
	consecutivePasses int
	playing           PlayState

	randSeed   int64
	randSource *rand.Rand

	backupMode BackupMode
	stateStack []*stateBackup
	stackPtr   int
}

// NewGame is how one instantiates a brand new game. Call StartGame to
// shuffle, deal, and place the origin tile.
func NewGame(opts Options) (*Game, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	g := &Game{
		opts:       opts,
		rules:      opts.Rules,
		board:      board.New(),
		backupMode: NoBackup,
	}
	g.players = make(playerStates, len(opts.Players))
	for idx, info := range opts.Players {
		g.players[idx] = newPlayerState(info)
	}
	return g, nil
}

// StartGame creates the shuffled bag from the configured seed, deals out
// hands, and places one bag tile at the origin. The first placement of the
// game therefore always has a neighbor to connect to.
func (g *Game) StartGame() {
	g.randSeed, g.randSource = seededRandSource(g.opts.Seed)
	log.Debug().Int64("seed", g.randSeed).Msg("random seed for this game")
	g.bag = tiles.NewBag(g.rules.Cardinality, g.opts.CopiesPerCombo, g.randSource)

	g.board = board.New()
	g.players.resetScore()
	for i := range g.players {
		g.players[i].hand.Set(g.bag.DrawAtMost(g.opts.DealSize))
	}
	first, err := g.bag.Draw(1)
	if err != nil {
		panic(err)
	}
	if err := g.board.Place(0, 0, first[0]); err != nil {
		panic(err)
	}

	g.playing = Playing
	g.onturn = 0
	g.turnnum = 0
	g.consecutivePasses = 0
}

// ValidateMove validates the given move for the player on turn, without
// committing anything.
func (g *Game) ValidateMove(m *move.Move) error {
	if g.playing == GameOver {
		return ErrGameOver
	}
	switch m.Action() {
	case move.MoveTypePlace:
		return g.rules.ValidateMove(g.board, g.players[g.onturn].hand, m)
	case move.MoveTypeExchange:
		if g.bag.TilesRemaining() < len(m.Tiles()) {
			return ErrInsufficientInventory
		}
		if !g.players[g.onturn].hand.Has(m.Tiles()) {
			return rules.ErrTileNotInHand
		}
		return nil
	case move.MoveTypePass:
		return nil
	}
	return fmt.Errorf("move type %v is not playable", m.Action())
}

// PlayMove commits a move for the player on turn and returns the score it
// earned (zero for passes and exchanges). On a validation error the state is
// completely unchanged.
//
// In SimulationMode validation is skipped — the search only feeds in moves
// it pre-validated during generation — and the pre-move state is pushed onto
// the backup stack so UnplayLastMove can restore it.
func (g *Game) PlayMove(m *move.Move) (int, error) {
	if g.backupMode == NoBackup {
		if err := g.ValidateMove(m); err != nil {
			return 0, err
		}
	} else {
		if g.playing == GameOver {
			return 0, ErrGameOver
		}
		g.backupState()
	}

	onturn := g.players[g.onturn]
	score := 0
	advance := true

	switch m.Action() {
	case move.MoveTypePlace:
		handBefore := onturn.hand.NumTiles()
		score = g.rules.ScoreMove(g.board, m, handBefore)
		onturn.hand.TakeAll(m.Tiles())
		for _, p := range m.Placements() {
			if err := g.board.Place(p.Row, p.Col, p.Tile); err != nil {
				// Validation guarantees empty targets; this is a
				// programmer error, not a game state.
				panic(err)
			}
		}
		onturn.points += score
		onturn.passed = false
		g.consecutivePasses = 0

		if g.opts.EndOnHandEmpty && onturn.hand.NumTiles() == 0 {
			g.playing = GameOver
			advance = false
			break
		}
		onturn.hand.Add(g.bag.DrawAtMost(m.TilesPlaced())...)
		if onturn.hand.NumTiles() == 0 && g.bag.TilesRemaining() == 0 {
			g.playing = GameOver
			advance = false
		}

	case move.MoveTypePass:
		onturn.passed = true
		g.consecutivePasses++
		if g.consecutivePasses >= g.opts.PassThreshold {
			log.Debug().Int("passes", g.consecutivePasses).Msg("pass threshold reached, game over")
			g.playing = GameOver
			advance = false
		}

	case move.MoveTypeExchange:
		drew, err := g.bag.Exchange(m.Tiles())
		if err != nil {
			// ValidateMove checked the bag; SimulationMode never
			// exchanges.
			panic(err)
		}
		onturn.hand.TakeAll(m.Tiles())
		onturn.hand.Add(drew...)
		onturn.passed = false
		g.consecutivePasses = 0
	}

	onturn.turns++
	g.turnnum++
	if advance {
		g.onturn = (g.onturn + 1) % len(g.players)
	}
	return score, nil
}

// Winner returns the index of the player with the strictly greatest score.
// The second return is false while the game is still going, or when the top
// score is shared (a draw: nobody is designated winner).
func (g *Game) Winner() (int, bool) {
	if g.playing != GameOver {
		return -1, false
	}
	best, bestCount := 0, 0
	for _, p := range g.players {
		switch {
		case p.points > best || bestCount == 0:
			best, bestCount = p.points, 1
		case p.points == best:
			bestCount++
		}
	}
	if bestCount != 1 {
		return -1, false
	}
	for idx, p := range g.players {
		if p.points == best {
			return idx, true
		}
	}
	return -1, false
}

// ValidPositions returns the coordinates a tile could go: every empty
// square next to an occupied one, or the origin on an empty board.
func (g *Game) ValidPositions() []board.Pos {
	return g.board.Frontier()
}

// SetHandFor sets the player's hand to the given tiles, returning their
// old hand to the bag first so the tile population stays intact.
func (g *Game) SetHandFor(playerIdx int, ts []tiles.Tile) error {
	g.players[playerIdx].throwHandIn(g.bag)
	if err := g.bag.RemoveTiles(ts); err != nil {
		return err
	}
	g.players[playerIdx].hand.Set(ts)
	return nil
}

// SetPlayerOnTurn sets the player on turn directly. Front ends should not
// call this mid-game.
func (g *Game) SetPlayerOnTurn(playerIdx int) {
	g.onturn = playerIdx
}

// Accessors. The search and front ends read game state only through these.

func (g *Game) NumPlayers() int {
	return len(g.players)
}

func (g *Game) PlayerOnTurn() int {
	return g.onturn
}

func (g *Game) NickOnTurn() string {
	return g.players[g.onturn].Nickname
}

func (g *Game) NickFor(playerIdx int) string {
	return g.players[playerIdx].Nickname
}

// IsAutomated reports whether the seat is driven by the search.
func (g *Game) IsAutomated(playerIdx int) bool {
	return g.players[playerIdx].Type == Automated
}

// HandFor returns the hand for the player with the passed-in index.
func (g *Game) HandFor(playerIdx int) *tiles.Rack {
	return g.players[playerIdx].hand
}

// PointsFor returns the number of points for the given player.
func (g *Game) PointsFor(playerIdx int) int {
	return g.players[playerIdx].points
}

// PassedFor reports whether the player's last action was a pass.
func (g *Game) PassedFor(playerIdx int) bool {
	return g.players[playerIdx].passed
}

// SpreadFor is the difference between the player's score and the best
// opposing score.
func (g *Game) SpreadFor(playerIdx int) int {
	bestOther := 0
	for idx, p := range g.players {
		if idx != playerIdx && p.points > bestOther {
			bestOther = p.points
		}
	}
	return g.players[playerIdx].points - bestOther
}

// CurrentSpread is the spread for the player on turn.
func (g *Game) CurrentSpread() int {
	return g.SpreadFor(g.onturn)
}

func (g *Game) Bag() *tiles.Bag {
	return g.bag
}

func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) Rules() *rules.Rules {
	return g.rules
}

func (g *Game) Playing() PlayState {
	return g.playing
}

func (g *Game) Turn() int {
	return g.turnnum
}

func (g *Game) ConsecutivePasses() int {
	return g.consecutivePasses
}

func (g *Game) Seed() int64 {
	return g.randSeed
}

func (g *Game) DealSize() int {
	return g.opts.DealSize
}

// ToDisplayText returns the board plus a scoreline for each player.
func (g *Game) ToDisplayText() string {
	out := g.board.ToDisplayText()
	for idx, p := range g.players {
		out += p.stateString(idx == g.onturn && g.playing == Playing) + "\n"
	}
	out += fmt.Sprintf("Bag: %d tiles\n", g.bag.TilesRemaining())
	return out
}
