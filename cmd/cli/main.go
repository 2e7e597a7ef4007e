package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"impostor/internal/app"
	"impostor/internal/domain"
	"impostor/internal/words"
)

var version = "dev"

func main() {
	cobra.CheckErr(newCmd().Execute())
}

func newCmd() *cobra.Command {
	var (
		opts      options
		wordsFile string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:           "impostor [player...]",
		Short:         "Play impostor on one terminal, passing the keyboard around.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			categories, err := words.Load(wordsFile)
			if err != nil {
				return fmt.Errorf("loading words: %w", err)
			}
			provider, err := words.NewProvider(categories)
			if err != nil {
				return fmt.Errorf("building word provider: %w", err)
			}

			opts.players = args
			return newGame(provider, nil, logger, cmd.InOrStdin(), cmd.OutOrStdout(), opts).Play()
		},
	}

	flags := cmd.Flags()

	flags.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	flags.StringVarP(&opts.category, "category", "c", words.AllCategoryID, "word category id")
	flags.StringVar(&opts.customWord, "word", "", "play with this word instead of a category")
	flags.IntVarP(&opts.impostors, "impostors", "i", 1, "number of impostors")
	flags.BoolVar(&opts.digital, "digital", false, "vote secretly one player at a time")
	flags.BoolVar(&opts.lastBreath, "last-breath", false, "an eliminated last impostor may guess the word")
	flags.BoolVar(&opts.impostorKnows, "impostor-knows-category", false, "show the category to impostors")
	flags.BoolVar(&opts.silent, "silent", false, "silent drawing mode")
	flags.BoolVar(&opts.spy, "spy", false, "deal a spy (4+ players)")
	flags.BoolVar(&opts.jester, "jester", false, "deal a jester (4+ players)")
	flags.StringVarP(&wordsFile, "words", "w", "", "extra word pack file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log every action to stderr")

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}

// options are the table settings chosen on the command line
type options struct {
	players       []string
	category      string
	customWord    string
	impostors     int
	digital       bool
	lastBreath    bool
	impostorKnows bool
	silent        bool
	spy           bool
	jester        bool
}

func (o options) startAction() domain.StartGame {
	a := domain.StartGame{
		CategoryID:            o.category,
		CustomWord:            o.customWord,
		ImpostorKnowsCategory: o.impostorKnows,
		UseDigitalVoting:      o.digital,
		UseLastBreath:         o.lastBreath,
		Mode:                  domain.ModeStandard,
	}
	if o.customWord != "" {
		a.CategoryID = words.CustomCategoryID
	}
	if o.silent {
		a.Mode = domain.ModeSilent
	}
	if o.spy {
		a.Roles = append(a.Roles, domain.RoleSpy)
	}
	if o.jester {
		a.Roles = append(a.Roles, domain.RoleJester)
	}
	return a
}

func newGame(provider domain.WordProvider, engineOpts []domain.Option, logger *slog.Logger, in io.Reader, out io.Writer, opts options) *game {
	engine := domain.NewEngine(provider, append([]domain.Option{domain.WithStrictRules()}, engineOpts...)...)
	return &game{
		table: app.NewTable("LOCAL", engine, logger),
		in:    newPrompter(in, out),
		out:   out,
		opts:  opts,
	}
}
