package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/enescakir/emoji"

	"impostor/internal/app"
	"impostor/internal/domain"
)

var errQuit = errors.New("quit")

// prompter reads one answer per line
type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{scanner: bufio.NewScanner(in), out: out}
}

// ask prints the prompt and returns the trimmed answer, or io.EOF
func (p *prompter) ask(format string, args ...interface{}) (string, error) {
	fmt.Fprintf(p.out, format+"\n> ", args...)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// game drives one table from the terminal
type game struct {
	table *app.Table
	in    *prompter
	out   io.Writer
	opts  options
}

// Play runs until the players quit or input ends
func (g *game) Play() error {
	defer g.table.Close()

	fmt.Fprintf(g.out, "%s Impostor %s\n", emoji.GameDie, emoji.GameDie)
	g.dispatch(domain.OpenSetup{})
	g.dispatch(domain.SetImpostorCount{Count: g.opts.impostors})
	for _, name := range g.opts.players {
		g.dispatch(domain.AddPlayer{Name: name})
	}

	for {
		s := g.table.Snapshot()

		var err error
		switch s.Phase {
		case domain.PhaseWelcome:
			g.dispatch(domain.OpenSetup{})
		case domain.PhaseSetup:
			err = g.setup(s)
		case domain.PhaseRoleReveal:
			err = g.reveal(s)
		case domain.PhaseRoundInProgress:
			err = g.round(s)
		case domain.PhaseVoting:
			err = g.vote(s)
		case domain.PhaseDigitalVoting:
			err = g.digitalVote(s)
		case domain.PhaseLastBreath:
			err = g.lastBreath(s)
		case domain.PhaseRoundResults:
			err = g.roundResults(s)
		case domain.PhaseResults:
			err = g.results(s)
		}

		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// dispatch applies an action and reports a refusal to the players
func (g *game) dispatch(a domain.Action) {
	if _, err := g.table.Dispatch(a); err != nil {
		fmt.Fprintf(g.out, "%s %v\n", emoji.CrossMark, err)
	}
}

// common handles the commands available in every in-game prompt
func (g *game) common(line string) (bool, error) {
	cmd, arg, _ := strings.Cut(line, " ")
	switch strings.ToLower(cmd) {
	case "quit":
		return true, errQuit
	case "cancel":
		g.dispatch(domain.CancelGame{})
		return true, nil
	case "spy":
		g.dispatch(domain.SpyGuess{Guess: arg})
		return true, nil
	}
	return false, nil
}

func (g *game) setup(s domain.State) error {
	fmt.Fprintf(g.out, "\nPlayers (%d), impostors: %d\n", len(s.Players), s.ImpostorCount)
	for i, p := range s.Players {
		fmt.Fprintf(g.out, "  %d. %s\n", i+1, p.Name)
	}

	line, err := g.in.ask("add NAME | rm NUMBER | impostors N | start | quit")
	if err != nil {
		return err
	}

	cmd, arg, _ := strings.Cut(line, " ")
	switch strings.ToLower(cmd) {
	case "add":
		g.dispatch(domain.AddPlayer{Name: arg})
	case "rm":
		if p, ok := pick(s.Players, arg); ok {
			g.dispatch(domain.RemovePlayer{PlayerID: p.ID})
		}
	case "impostors":
		n, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(g.out, "%s not a number: %q\n", emoji.CrossMark, arg)
			return nil
		}
		g.dispatch(domain.SetImpostorCount{Count: n})
	case "start":
		g.dispatch(g.opts.startAction())
	case "quit":
		return errQuit
	}
	return nil
}

func (g *game) reveal(s domain.State) error {
	card, ok := s.RoleCard(s.RevealIndex)
	if !ok {
		g.dispatch(domain.AdvanceReveal{})
		return nil
	}

	if _, err := g.in.ask("\nPass the device to %s and press enter.", card.PlayerName); err != nil {
		return err
	}

	fmt.Fprintf(g.out, "%s You are %s\n", card.Badge, strings.ToUpper(string(card.Role)))
	if card.SecretWord != "" {
		fmt.Fprintf(g.out, "%s Word: %s\n", emoji.CardIndex, card.SecretWord)
	}
	if card.Category != "" {
		fmt.Fprintf(g.out, "%s Category: %s\n", emoji.Bookmark, card.Category)
	}
	if card.FirstLetter != "" {
		fmt.Fprintf(g.out, "%s Starts with: %s\n", emoji.Pen, card.FirstLetter)
	}

	if _, err := g.in.ask("Remember it, press enter and pass the device on."); err != nil {
		return err
	}
	fmt.Fprint(g.out, strings.Repeat("\n", 30))
	g.dispatch(domain.AdvanceReveal{})
	return nil
}

func (g *game) round(s domain.State) error {
	var line string
	var err error
	if s.Mode == domain.ModeSilent {
		drawer, _ := s.CurrentDrawer()
		line, err = g.in.ask("\n%s %s draws. Press enter when done (vote | spy WORD | cancel | quit)", emoji.Pen, drawer.Name)
	} else {
		line, err = g.in.ask("\n%s Category: %s. Discuss, then press enter to vote (spy WORD | cancel | quit)", emoji.Stopwatch, s.CategoryName)
	}
	if err != nil {
		return err
	}

	if handled, err := g.common(line); handled || err != nil {
		return err
	}

	switch {
	case line == "vote":
		g.dispatch(domain.EndRound{})
	case s.Mode == domain.ModeSilent:
		g.dispatch(domain.SubmitDrawing{})
	default:
		g.dispatch(domain.EndRound{})
	}
	return nil
}

func (g *game) vote(s domain.State) error {
	alive := s.AlivePlayers()
	fmt.Fprintln(g.out)
	listPlayers(g.out, alive)

	line, err := g.in.ask("Who does the group vote out? (NUMBER | spy WORD | cancel | quit)")
	if err != nil {
		return err
	}
	if handled, err := g.common(line); handled || err != nil {
		return err
	}

	if p, ok := pick(alive, line); ok {
		g.dispatch(domain.CastVote{TargetID: p.ID})
	}
	return nil
}

func (g *game) digitalVote(s domain.State) error {
	voter, ok := s.CurrentVoter()
	if !ok {
		return fmt.Errorf("no voter at index %d", s.VotingIndex)
	}

	if _, err := g.in.ask("\nPass the device to %s and press enter.", voter.Name); err != nil {
		return err
	}

	alive := s.AlivePlayers()
	listPlayers(g.out, alive)
	line, err := g.in.ask("%s, your secret vote (NUMBER | cancel | quit)", voter.Name)
	if err != nil {
		return err
	}
	if handled, err := g.common(line); handled || err != nil {
		return err
	}

	if p, ok := pick(alive, line); ok {
		g.dispatch(domain.CastDigitalVote{VoterID: voter.ID, TargetID: p.ID})
		fmt.Fprint(g.out, strings.Repeat("\n", 30))
	}
	return nil
}

func (g *game) lastBreath(s domain.State) error {
	name := "The impostor"
	if s.LastEliminated != nil {
		name = s.LastEliminated.Name
	}

	line, err := g.in.ask("\n%s %s was the last impostor. Guess the word to steal the win:", emoji.Bomb, name)
	if err != nil {
		return err
	}
	if line == "quit" {
		return errQuit
	}
	g.dispatch(domain.GuessWord{Guess: line})
	return nil
}

func (g *game) roundResults(s domain.State) error {
	if s.LastEliminated != nil {
		fmt.Fprintf(g.out, "\n%s %s was voted out.\n", emoji.ThumbsDown, s.LastEliminated.Name)
	}
	for _, r := range s.Tally() {
		status := ""
		if !r.IsAlive {
			status = " (out)"
		}
		fmt.Fprintf(g.out, "  %s: %d%s\n", r.Name, r.VoteCount, status)
	}

	line, err := g.in.ask("The game goes on. Press enter for the next round (spy WORD | cancel | quit)")
	if err != nil {
		return err
	}
	if handled, err := g.common(line); handled || err != nil {
		return err
	}
	g.dispatch(domain.NextRound{})
	return nil
}

func (g *game) results(s domain.State) error {
	fmt.Fprintf(g.out, "\n%s %s %s wins!\n", emoji.ChequeredFlag, s.Winner.Badge(), strings.ToUpper(string(s.Winner)))
	fmt.Fprintf(g.out, "%s The word was %s (%s)\n", emoji.CardIndex, s.SecretWord, s.RealCategoryName)
	for _, p := range s.Players {
		fmt.Fprintf(g.out, "  %s %s: %s\n", p.Role.Badge(), p.Name, p.Role)
	}

	line, err := g.in.ask("again | quit")
	if err != nil {
		return err
	}
	if line == "quit" {
		return errQuit
	}
	g.dispatch(domain.ResetGame{})
	return nil
}

func listPlayers(out io.Writer, players []domain.Player) {
	for i, p := range players {
		fmt.Fprintf(out, "  %d. %s\n", i+1, p.Name)
	}
}

// pick resolves a 1-based number typed by the players
func pick(players []domain.Player, arg string) (domain.Player, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(players) {
		return domain.Player{}, false
	}
	return players[n-1], true
}
