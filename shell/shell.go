// Package shell is an interactive readline front end for playing against
// the bot.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/kalevala9/linea/ai/bot"
	"github.com/kalevala9/linea/automatic"
	"github.com/kalevala9/linea/config"
	"github.com/kalevala9/linea/game"
	"github.com/kalevala9/linea/move"
	"github.com/kalevala9/linea/movegen"
	"github.com/kalevala9/linea/stats"
	"github.com/kalevala9/linea/tiles"
)

// ShellController owns the REPL and the current game.
type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	game   *game.Game
	gen    *movegen.Generator
	solver *bot.Solver
	store  *stats.Store
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController creates the controller and its readline instance.
func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mlinea>\033[0m ",
		HistoryFile:     "/tmp/linea_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc := &ShellController{l: l, cfg: cfg}
	if path := cfg.GetString(config.ResultsDBKey); path != "" {
		store, err := stats.Open(path)
		if err != nil {
			log.Error().Err(err).Msg("could not open results db; continuing without it")
		} else {
			sc.store = store
		}
	}
	return sc
}

func (sc *ShellController) newGame(players, bots int) error {
	if players < 2 {
		players = 2
	}
	if bots > players {
		bots = players
	}
	infos := make([]game.PlayerInfo, players)
	for i := range infos {
		// The human seats come first.
		if i >= players-bots {
			infos[i] = game.PlayerInfo{Nickname: fmt.Sprintf("Bot %d", i+1), Type: game.Automated}
		} else {
			infos[i] = game.PlayerInfo{Nickname: fmt.Sprintf("Player %d", i+1), Type: game.Human}
		}
	}
	g, err := game.NewGame(game.Options{
		Players:        infos,
		CopiesPerCombo: sc.cfg.GetInt(config.CopiesKey),
		DealSize:       sc.cfg.GetInt(config.DealSizeKey),
		Seed:           sc.cfg.GetInt64(config.SeedKey),
	})
	if err != nil {
		return err
	}
	g.StartGame()
	sc.game = g
	sc.gen = movegen.NewGenerator(sc.cfg.GetInt(config.MaxCandidatesKey))
	sc.solver = &bot.Solver{}
	if err := sc.solver.Init(sc.gen, g, sc.cfg.GetInt(config.PliesKey)); err != nil {
		return err
	}
	sc.showState()
	return sc.runBotTurns()
}

func (sc *ShellController) showState() {
	showMessage(sc.game.ToDisplayText(), sc.l.Stderr())
}

// runBotTurns lets the solver play until it is a human's turn or the game
// ends.
func (sc *ShellController) runBotTurns() error {
	for sc.game.Playing() == game.Playing && sc.game.IsAutomated(sc.game.PlayerOnTurn()) {
		nick := sc.game.NickOnTurn()
		m, score, err := sc.solver.ChooseAndPlay(context.Background())
		if err != nil {
			return err
		}
		switch m.Action() {
		case move.MoveTypePlace:
			showMessage(fmt.Sprintf("%s played %s and scored %d points", nick, m.ShortDescription(), score), sc.l.Stderr())
		case move.MoveTypePass:
			showMessage(fmt.Sprintf("%s passed", nick), sc.l.Stderr())
		}
	}
	sc.showState()
	sc.maybeShowGameOver()
	return nil
}

func (sc *ShellController) maybeShowGameOver() {
	if sc.game.Playing() != game.GameOver {
		return
	}
	if winner, ok := sc.game.Winner(); ok {
		showMessage(fmt.Sprintf("Game over! %s wins with %d points.",
			sc.game.NickFor(winner), sc.game.PointsFor(winner)), sc.l.Stderr())
	} else {
		showMessage("Game over! It's a draw.", sc.l.Stderr())
	}
	if sc.store != nil {
		sc.recordResult()
	}
}

func (sc *ShellController) recordResult() {
	winner, ok := sc.game.Winner()
	if !ok {
		winner = -1
	}
	scores := make([]int, sc.game.NumPlayers())
	for i := range scores {
		scores[i] = sc.game.PointsFor(i)
	}
	_, err := sc.store.AddResult(context.Background(), stats.GameResult{
		Seed:    sc.game.Seed(),
		Players: sc.game.NumPlayers(),
		Winner:  winner,
		Scores:  scores,
		Turns:   sc.game.Turn(),
	})
	if err != nil {
		log.Error().Err(err).Msg("could not store game result")
	}
}

func (sc *ShellController) requireGame() error {
	if sc.game == nil {
		return fmt.Errorf("no game in progress; start one with `new`")
	}
	return nil
}

// place parses `play <row> <col> <TILE> [<row> <col> <TILE> ...]`.
func (sc *ShellController) place(args []string) error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	if len(args) == 0 || len(args)%3 != 0 {
		return fmt.Errorf("usage: play <row> <col> <TILE> [<row> <col> <TILE> ...]")
	}
	placements := make([]move.Placement, 0, len(args)/3)
	for i := 0; i < len(args); i += 3 {
		row, err := strconv.Atoi(args[i])
		if err != nil {
			return fmt.Errorf("bad row %q", args[i])
		}
		col, err := strconv.Atoi(args[i+1])
		if err != nil {
			return fmt.Errorf("bad col %q", args[i+1])
		}
		t, err := tiles.ParseTile(args[i+2])
		if err != nil {
			return err
		}
		placements = append(placements, move.Placement{Row: row, Col: col, Tile: t})
	}
	score, err := sc.game.PlayMove(move.NewPlacementMove(placements))
	if err != nil {
		return err
	}
	showMessage(fmt.Sprintf("You scored %d points!", score), sc.l.Stderr())
	return sc.runBotTurns()
}

func (sc *ShellController) pass() error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	if _, err := sc.game.PlayMove(move.NewPassMove()); err != nil {
		return err
	}
	return sc.runBotTurns()
}

// exchange parses `exch all` or `exch <TILE> [<TILE> ...]`.
func (sc *ShellController) exchange(args []string) error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	var ts []tiles.Tile
	if len(args) == 1 && strings.EqualFold(args[0], "all") {
		ts = sc.game.HandFor(sc.game.PlayerOnTurn()).TilesOn()
	} else {
		var err error
		ts, err = tiles.ParseTiles(strings.Join(args, " "))
		if err != nil {
			return err
		}
		if len(ts) == 0 {
			return fmt.Errorf("usage: exch all | exch <TILE> [<TILE> ...]")
		}
	}
	if _, err := sc.game.PlayMove(move.NewExchangeMove(ts)); err != nil {
		return err
	}
	showMessage("Tiles exchanged.", sc.l.Stderr())
	return sc.runBotTurns()
}

// hint runs the search for the current (human) seat and shows what it would
// do, without committing anything.
func (sc *ShellController) hint() error {
	if err := sc.requireGame(); err != nil {
		return err
	}
	candidates := sc.gen.GenAll(sc.game)
	if len(candidates) == 0 {
		showMessage("No single-tile play available; consider exchanging or passing.", sc.l.Stderr())
		return nil
	}
	showMessage(fmt.Sprintf("Try: play %s", strings.ReplaceAll(candidates[0].ShortDescription(), ",", " ")), sc.l.Stderr())
	return nil
}

func (sc *ShellController) autoplay(args []string) error {
	numGames, threads := 10, 1
	var err error
	if len(args) > 0 {
		if numGames, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("bad game count %q", args[0])
		}
	}
	if len(args) > 1 {
		if threads, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("bad thread count %q", args[1])
		}
	}
	return automatic.StartCompVCompGames(context.Background(), sc.cfg, numGames, threads, sc.store)
}

func (sc *ShellController) showStats() error {
	if sc.store == nil {
		return fmt.Errorf("no results db configured (set -%s)", config.ResultsDBKey)
	}
	counts, err := sc.store.WinCounts(context.Background())
	if err != nil {
		return err
	}
	for winner, ct := range counts {
		if winner == -1 {
			showMessage(fmt.Sprintf("draws: %d", ct), sc.l.Stderr())
		} else {
			showMessage(fmt.Sprintf("player %d wins: %d", winner, ct), sc.l.Stderr())
		}
	}
	return nil
}

const helpText = `Commands:
  new [players] [bots]     start a new game (defaults from config)
  show                     redraw the board and scores
  play <row> <col> <TILE> ...   place tiles; a TILE is color+shape letters, e.g. RC
  pass                     pass the turn
  exch all | exch <TILE> ...    exchange tiles with the bag
  hint                     show a playable move for your hand
  valid                    list the open positions
  autoplay [n] [threads]   run bot-vs-bot games
  stats                    show stored self-play results
  exit                     quit

Tile letters: colors R G B Y O P; shapes S(star) E(8star) Q(square) C(circle) L(clover) D(diamond)`

// Loop runs the REPL until exit or EOF.
func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	if sc.store != nil {
		defer sc.store.Close()
	}

readlineLoop:
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		fields, err := shellquote.Split(line)
		if err != nil {
			showMessage("error: "+err.Error(), sc.l.Stderr())
			continue
		}
		if len(fields) == 0 {
			continue
		}
		cmd, args := strings.ToLower(fields[0]), fields[1:]

		switch cmd {
		case "new":
			players := sc.cfg.GetInt(config.PlayersKey)
			bots := sc.cfg.GetInt(config.BotsKey)
			if len(args) > 0 {
				players, _ = strconv.Atoi(args[0])
			}
			if len(args) > 1 {
				bots, _ = strconv.Atoi(args[1])
			}
			err = sc.newGame(players, bots)
		case "show":
			if err = sc.requireGame(); err == nil {
				sc.showState()
			}
		case "play":
			err = sc.place(args)
		case "pass":
			err = sc.pass()
		case "exch", "exchange":
			err = sc.exchange(args)
		case "hint":
			err = sc.hint()
		case "valid":
			if err = sc.requireGame(); err == nil {
				for _, p := range sc.game.ValidPositions() {
					showMessage(p.String(), sc.l.Stderr())
				}
			}
		case "autoplay":
			err = sc.autoplay(args)
		case "stats":
			err = sc.showStats()
		case "help":
			showMessage(helpText, sc.l.Stderr())
		case "exit", "quit":
			sig <- syscall.SIGINT
			break readlineLoop
		default:
			showMessage("unknown command; try `help`", sc.l.Stderr())
		}
		if err != nil {
			showMessage("error: "+err.Error(), sc.l.Stderr())
		}
	}
	log.Debug().Msg("exiting shell loop")
}
