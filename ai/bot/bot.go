// Package bot implements the computer player: depth-limited minimax with
// alpha-beta pruning over single-tile candidate moves.
package bot

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/kalevala9/linea/game"
	"github.com/kalevala9/linea/move"
	"github.com/kalevala9/linea/movegen"
	"github.com/kalevala9/linea/zobrist"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
		for each child of node do
			play(child)
			value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
			unplayLastMove()
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
		for each child of node do
			play(child)
			value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
			unplayLastMove()
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
(* Initial call *)
alphabeta(origin, depth, −∞, +∞, TRUE)
**/

const (
	// Infinity is 10 million.
	Infinity = 10000000
	// DefaultPlies keeps the search shallow on purpose; this player is
	// built for responsiveness, not tournament strength.
	DefaultPlies = 2

	// MobilityWeight and HandWeight are secondary tie-breakers around the
	// dominant score differential: open squares keep options alive, and a
	// shorter hand than the opponent's matters as the bag runs dry.
	MobilityWeight = float32(0.1)
	HandWeight     = float32(-0.5)
)

// ErrNotAutomated is returned when a move is requested for a seat the
// search doesn't drive.
var ErrNotAutomated = errors.New("the player on turn is not automated")

type cachedValue struct {
	value float32
	depth uint8
}

// Solver implements the minimax + alphabeta algorithm.
type Solver struct {
	zobrist          zobrist.Zobrist
	gen              *movegen.Generator
	game             *game.Game
	nodeCache        map[uint64]cachedValue
	totalNodes       int
	maximizingPlayer int
	plies            int
}

// Init initializes the solver. plies <= 0 means DefaultPlies.
func (s *Solver) Init(gen *movegen.Generator, g *game.Game, plies int) error {
	if plies <= 0 {
		plies = DefaultPlies
	}
	s.gen = gen
	s.game = g
	s.plies = plies
	s.zobrist.Initialize()
	return nil
}

func maxf(x, y float32) float32 {
	if x < y {
		return y
	}
	return x
}

func minf(x, y float32) float32 {
	if x < y {
		return x
	}
	return y
}

// evaluate is the static heuristic, always from the maximizing player's
// perspective.
func (s *Solver) evaluate() float32 {
	spread := float32(s.game.SpreadFor(s.maximizingPlayer))
	mobility := float32(len(s.game.ValidPositions()))

	myHand := s.game.HandFor(s.maximizingPlayer).NumTiles()
	oppHand := -1
	for idx := 0; idx < s.game.NumPlayers(); idx++ {
		if idx == s.maximizingPlayer {
			continue
		}
		n := s.game.HandFor(idx).NumTiles()
		if oppHand == -1 || n < oppHand {
			oppHand = n
		}
	}

	return spread + MobilityWeight*mobility + HandWeight*float32(myHand-oppHand)
}

// BestMove runs the search for the player on turn, who must be automated,
// and returns the chosen move without applying it. Candidate ties break by
// earliest generation order, so the choice is deterministic. The game state
// is exactly as it was when BestMove returns.
func (s *Solver) BestMove(ctx context.Context) (*move.Move, error) {
	onturn := s.game.PlayerOnTurn()
	if !s.game.IsAutomated(onturn) {
		return nil, ErrNotAutomated
	}
	s.maximizingPlayer = onturn
	s.nodeCache = make(map[uint64]cachedValue)
	s.totalNodes = 0

	candidates := s.gen.GenAll(s.game)
	if len(candidates) == 0 {
		log.Debug().Int("player", onturn).Msg("no candidates, passing")
		return move.NewPassMove(), nil
	}

	s.game.SetBackupMode(game.SimulationMode)
	defer s.game.SetBackupMode(game.NoBackup)
	s.game.SetStateStackLength(s.plies + 1)

	α := float32(-Infinity)
	best := candidates[0]
	for _, play := range candidates {
		if _, err := s.game.PlayMove(play); err != nil {
			return nil, err
		}
		key := s.zobrist.AddMove(0, play)
		value, err := s.alphabeta(ctx, key, s.plies-1, α, float32(Infinity), false)
		s.game.UnplayLastMove()
		if err != nil {
			return nil, err
		}
		play.SetValuation(value)
		if value > α {
			α = value
			best = play
		}
	}
	log.Debug().Int("nodes", s.totalNodes).Float32("value", best.Valuation()).
		Str("move", best.ShortDescription()).Msg("search-done")
	return best, nil
}

func (s *Solver) alphabeta(ctx context.Context, key uint64, depth int,
	α float32, β float32, maximizing bool) (float32, error) {

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}
	s.totalNodes++

	if depth == 0 || s.game.Playing() != game.Playing {
		return s.evaluate(), nil
	}
	if cached, ok := s.nodeCache[key]; ok && cached.depth >= uint8(depth) {
		return cached.value, nil
	}

	plays := s.gen.GenAll(s.game)
	if len(plays) == 0 {
		// No placement available: this side passes instead.
		plays = []*move.Move{move.NewPassMove()}
	}

	var value float32
	if maximizing {
		value = float32(-Infinity)
		for _, play := range plays {
			if _, err := s.game.PlayMove(play); err != nil {
				return 0, err
			}
			childValue, err := s.alphabeta(ctx, s.zobrist.AddMove(key, play), depth-1, α, β, false)
			s.game.UnplayLastMove()
			if err != nil {
				return 0, err
			}
			value = maxf(value, childValue)
			α = maxf(α, value)
			if α >= β {
				break // β cut-off
			}
		}
	} else {
		value = float32(Infinity)
		for _, play := range plays {
			if _, err := s.game.PlayMove(play); err != nil {
				return 0, err
			}
			childValue, err := s.alphabeta(ctx, s.zobrist.AddMove(key, play), depth-1, α, β, true)
			s.game.UnplayLastMove()
			if err != nil {
				return 0, err
			}
			value = minf(value, childValue)
			β = minf(β, value)
			if β <= α {
				break // α cut-off
			}
		}
	}
	s.nodeCache[key] = cachedValue{value: value, depth: uint8(depth)}
	return value, nil
}

// ChooseAndPlay runs the search and commits the chosen move to the game. If
// the chosen move somehow fails to apply — it was pre-validated, so this is
// a defensive fallback — the first candidate that does apply is committed
// instead, and failing everything, a pass. It returns the committed move and
// the score it earned.
func (s *Solver) ChooseAndPlay(ctx context.Context) (*move.Move, int, error) {
	best, err := s.BestMove(ctx)
	if err != nil {
		return nil, 0, err
	}
	score, err := s.game.PlayMove(best)
	if err == nil {
		return best, score, nil
	}
	log.Error().Err(err).Str("move", best.ShortDescription()).
		Msg("searched move failed to apply, falling back")
	for _, c := range s.gen.GenAll(s.game) {
		if score, err := s.game.PlayMove(c); err == nil {
			return c, score, nil
		}
	}
	pass := move.NewPassMove()
	score, err = s.game.PlayMove(pass)
	return pass, score, err
}
