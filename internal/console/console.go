package console

import (
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/playable/blackjack"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Prompt is written before every decision
const Prompt = "1 - stay, 2 - hit: "

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2E7D32")).
			Padding(0, 1).
			Bold(true)
	cardStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	logStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	winStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	loseStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	pushStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// Tally counts the results of a session
type Tally struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Pushes int `json:"pushes"`
}

// Rounds returns the number of rounds recorded
func (t Tally) Rounds() int {
	return t.Wins + t.Losses + t.Pushes
}

func (t Tally) String() string {
	return fmt.Sprintf("%d won, %d lost, %d pushed", t.Wins, t.Losses, t.Pushes)
}

// Console plays rounds on a terminal
// It is the decision source for the player and the sink for round messages.
type Console struct {
	name   string
	in     *bufio.Reader
	out    io.Writer
	styled bool
	tally  Tally
}

var _ blackjack.DecisionSource = (*Console)(nil)
var _ blackjack.Sink = (*Console)(nil)

// New returns a console reading decisions from in
// Output is styled only when out is a terminal.
func New(in io.Reader, out io.Writer, name string) *Console {
	return &Console{
		name:   name,
		in:     bufio.NewReader(in),
		out:    out,
		styled: isTerminal(out),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

// Name returns the player name used in messages
func (c *Console) Name() string {
	return c.name
}

// Tally returns the results recorded so far
func (c *Console) Tally() Tally {
	return c.tally
}

// Title writes a banner
func (c *Console) Title(title string) {
	c.println(c.render(titleStyle, " "+title+" "))
}

// Decide shows the player's view of the round and reads a decision
// Input that is not a decision is reported and the prompt repeats.
func (c *Console) Decide(ctx context.Context, state *blackjack.State) (blackjack.Decision, error) {
	c.println(c.describe(state))

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		c.print(c.render(promptStyle, Prompt))
		line, err := c.in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			if errors.Is(err, io.EOF) {
				c.println("")
			}

			return 0, err
		}

		decision, parseErr := blackjack.DecisionFromString(strings.TrimSpace(line))
		if parseErr == nil {
			return decision, nil
		}

		c.println(c.render(errorStyle, fmt.Sprintf("%q is not a decision, please enter 1 or 2", strings.TrimSpace(line))))
		if err != nil {
			return 0, err
		}
	}
}

// Send writes progress messages, naming the player in place of {}
func (c *Console) Send(messages ...*playable.LogMessage) {
	for _, msg := range messages {
		c.println(c.render(logStyle, strings.ReplaceAll(msg.Message, "{}", c.name)))
	}
}

// Record adds the outcome to the tally and writes it
func (c *Console) Record(outcome blackjack.Outcome) {
	style := pushStyle
	switch outcome.Winner() {
	case blackjack.WinnerPlayer:
		c.tally.Wins++
		style = winStyle
	case blackjack.WinnerDealer:
		c.tally.Losses++
		style = loseStyle
	default:
		c.tally.Pushes++
	}

	c.println(c.render(style, outcome.Description()))
}

// Summary writes the tally
func (c *Console) Summary() {
	if c.tally.Rounds() == 0 {
		return
	}

	c.println(fmt.Sprintf("%s: %s over %d rounds", c.name, c.tally, c.tally.Rounds()))
}

func (c *Console) describe(state *blackjack.State) string {
	dealer := c.cards(state.DealerHand)
	if state.HiddenCards > 0 {
		dealer += strings.Repeat(" ?", state.HiddenCards)
	}

	return fmt.Sprintf("Dealer: %s (%d)\n%s: %s (%d)",
		dealer, state.DealerValue,
		c.name, c.cards(state.PlayerHand), state.PlayerValue)
}

func (c *Console) cards(h deck.Hand) string {
	s := make([]string, len(h))
	for i, rank := range h {
		s[i] = c.render(cardStyle, string(rank))
	}

	return strings.Join(s, " ")
}

func (c *Console) render(style lipgloss.Style, s string) string {
	if !c.styled {
		return s
	}

	return style.Render(s)
}

func (c *Console) print(s string) {
	_, _ = fmt.Fprint(c.out, s)
}

func (c *Console) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}
