package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/enescakir/emoji"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impostor/internal/domain"
	"impostor/internal/words"
)

// firstPick always draws the head of the pool, so the first player is the
// impostor
type firstPick struct{}

func (firstPick) Intn(int) int { return 0 }

func runScript(t *testing.T, opts options, lines ...string) string {
	t.Helper()

	provider, err := words.NewProvider(words.Builtin())
	require.NoError(t, err)

	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")

	g := newGame(provider, []domain.Option{domain.WithRand(firstPick{})}, logger, in, &out, opts)
	require.NoError(t, g.Play())
	return out.String()
}

func baseOptions() options {
	return options{
		players:    []string{"Ana", "Beto", "Caro"},
		category:   words.AllCategoryID,
		customWord: "mesa",
		impostors:  1,
	}
}

func TestPlay_CitizensVoteOutImpostor(t *testing.T) {
	out := runScript(t, baseOptions(),
		"start",
		"", "", "", "", "", "", // three reveals
		"",  // end discussion
		"1", // vote out Ana
		"quit",
	)

	assert.Contains(t, out, "You are IMPOSTOR")
	assert.Contains(t, out, "Word: mesa")
	assert.Contains(t, out, "CITIZEN wins!")
	assert.Contains(t, out, "The word was mesa (Custom)")
}

func TestPlay_DigitalVoteAndLastBreath(t *testing.T) {
	opts := baseOptions()
	opts.digital = true
	opts.lastBreath = true

	out := runScript(t, opts,
		"start",
		"", "", "", "", "", "",
		"",
		"", "1", // Ana votes
		"", "1", // Beto votes
		"", "1", // Caro votes
		"MESA",
		"quit",
	)

	assert.Contains(t, out, "your secret vote")
	assert.Contains(t, out, "Ana was the last impostor")
	assert.Contains(t, out, "IMPOSTOR wins!")
}

func TestPlay_SpyGuessEndsGame(t *testing.T) {
	opts := baseOptions()
	opts.players = append(opts.players, "Dani")
	opts.spy = true

	out := runScript(t, opts,
		"start",
		"", "", "", "", "", "", "", "",
		"spy mesa",
		"quit",
	)

	assert.Contains(t, out, "Starts with: M")
	assert.Contains(t, out, "IMPOSTOR wins!")
}

func TestPlay_RefusalsAreReported(t *testing.T) {
	opts := baseOptions()
	opts.players = []string{"Ana", "Beto"}

	out := runScript(t, opts, "start", "add Caro", "rm 9", "impostors x")

	assert.Contains(t, out, emoji.CrossMark.String())
	assert.Contains(t, out, "not a number")
	assert.Contains(t, out, "3. Caro")
}

func TestPlay_CancelAndAgain(t *testing.T) {
	out := runScript(t, baseOptions(),
		"start",
		"", "", "", "", "", "",
		"cancel",
		"start",
		"", "", "", "", "", "",
		"", "2", // Beto out, impostor and citizen at parity
		"again",
		"quit",
	)

	assert.Contains(t, out, "IMPOSTOR wins!")
	assert.Equal(t, 3, strings.Count(out, "Players (3)"), "setup shown at start, after cancel and after reset")
}

func TestOptions_StartAction(t *testing.T) {
	a := options{category: "food", silent: true, spy: true, jester: true, impostorKnows: true}.startAction()
	assert.Equal(t, "food", a.CategoryID)
	assert.Equal(t, domain.ModeSilent, a.Mode)
	assert.Equal(t, []domain.Role{domain.RoleSpy, domain.RoleJester}, a.Roles)
	assert.True(t, a.ImpostorKnowsCategory)

	custom := options{category: "food", customWord: "pizza"}.startAction()
	assert.Equal(t, words.CustomCategoryID, custom.CategoryID)
	assert.Equal(t, domain.ModeStandard, custom.Mode)
}
