// Command validate checks Pacman level files and game folders.
//
//	validate level levels/1_classic.xml levels/2_portals.xml
//	validate game levels
//
// A level passes when it has exactly one PacMan start, every portal colour in
// use has exactly two tiles, it holds at least two pills or gold pieces, and
// every pill and gold piece is reachable from the start. A game folder passes
// when its level files are numbered without duplicates and every level passes.
// The command exits non-zero when any check fails.
package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
	"github.com/urfave/cli/v3"

	"github.com/theduyngx/pacman-torusverse/game/grid"
	"github.com/theduyngx/pacman-torusverse/game/levelcheck"
)

//go:embed messages.po
var messagesPo []byte

var messages = loadMessages()

func loadMessages() *gotext.Po {
	po := gotext.NewPo()
	po.Parse(messagesPo)
	return po
}

var (
	colorValid   = color.Style{color.FgGreen, color.OpBold}
	colorInvalid = color.Style{color.FgRed, color.OpBold}
	colorDiag    = color.Style{color.FgRed}
	colorSubtle  = color.Style{color.FgGray}
	colorHeader  = color.Style{color.FgCyan, color.OpBold}
)

// validator prints check results and remembers whether anything failed.
type validator struct {
	out    io.Writer
	failed bool
}

func (v *validator) reporter() levelcheck.Reporter {
	return levelcheck.ReporterFunc(func(d string) {
		fmt.Fprintln(v.out, "  "+colorDiag.Sprint(d))
	})
}

// checkLevelFile validates one level file. It reports whether the level passed.
func (v *validator) checkLevelFile(path string) bool {
	lv, err := levelcheck.LoadLevelFile(path)
	if err != nil {
		v.failed = true
		fmt.Fprintln(v.out, colorInvalid.Sprint(messages.Get("LEVEL_UNREADABLE", filepath.Base(path), err)))
		return false
	}

	var diagnostics strings.Builder
	checker := levelcheck.NewChecker(levelcheck.ReporterFunc(func(d string) {
		diagnostics.WriteString("  " + colorDiag.Sprint(d) + "\n")
	}))
	report := checker.CheckLevel(lv)

	if report.Valid {
		fmt.Fprintln(v.out, colorValid.Sprint(messages.Get("LEVEL_VALID", lv.Name)))
	} else {
		v.failed = true
		fmt.Fprintln(v.out, colorInvalid.Sprint(messages.Get("LEVEL_INVALID", lv.Name, len(report.Diagnostics))))
		fmt.Fprint(v.out, diagnostics.String())
	}
	fmt.Fprintln(v.out, "  "+colorSubtle.Sprint(levelSummary(lv)))
	return report.Valid
}

func levelSummary(lv *grid.Level) string {
	counts := map[grid.ItemKind]int{}
	lv.Items.Each(func(_ grid.Location, item grid.Item) {
		counts[item.Kind]++
	})
	return messages.Get("LEVEL_SUMMARY",
		lv.Size.Width, lv.Size.Height, counts[grid.Pill], counts[grid.Gold], counts[grid.Ice],
		len(lv.Monsters), len(lv.Portals))
}

// checkGameDir validates a game folder and every level inside it.
func (v *validator) checkGameDir(dir string) error {
	fmt.Fprintln(v.out, colorHeader.Sprint(messages.Get("GAME_HEADER", dir)))

	checker := levelcheck.NewChecker(v.reporter())
	report, err := checker.CheckGame(dir)
	if report == nil {
		return err
	}

	for _, lr := range report.Levels {
		if lr.Valid {
			fmt.Fprintln(v.out, "  "+colorValid.Sprint(messages.Get("LEVEL_VALID", lr.Level)))
		} else {
			fmt.Fprintln(v.out, "  "+colorInvalid.Sprint(messages.Get("LEVEL_INVALID", lr.Level, len(lr.Diagnostics))))
		}
	}
	if err != nil {
		fmt.Fprintln(v.out, "  "+colorDiag.Sprint(err.Error()))
	}

	if report.Valid {
		fmt.Fprintln(v.out, colorValid.Sprint(messages.Get("GAME_VALID", report.Game, strings.Join(report.Files, ", "))))
	} else {
		v.failed = true
		fmt.Fprintln(v.out, colorInvalid.Sprint(messages.Get("GAME_INVALID", report.Game)))
	}
	return nil
}

func (v *validator) finish() error {
	fmt.Fprintln(v.out)
	if v.failed {
		fmt.Fprintln(v.out, colorInvalid.Sprint(messages.Get("SOME_INVALID")))
		return cli.Exit("", 1)
	}
	fmt.Fprintln(v.out, colorValid.Sprint(messages.Get("ALL_VALID")))
	return nil
}

func noColor(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("no-color") {
		color.Disable()
	}
	return ctx, nil
}

// newApp builds the command tree writing to out.
func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "validate",
		Usage:  "check Pacman levels and game folders",
		Writer: out,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-color", Usage: "disable coloured output"},
		},
		Before: noColor,
		// main decides the exit status
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Commands: []*cli.Command{
			{
				Name:      "level",
				Usage:     "validate level XML files",
				ArgsUsage: "<file.xml>...",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					files := cmd.Args().Slice()
					if len(files) == 0 {
						return cli.Exit(messages.Get("NO_INPUT", "level file"), 2)
					}
					v := &validator{out: out}
					for _, f := range files {
						v.checkLevelFile(f)
					}
					return v.finish()
				},
			},
			{
				Name:      "game",
				Usage:     "validate game folders (defaults to ./levels)",
				ArgsUsage: "[dir]...",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					dirs := cmd.Args().Slice()
					if len(dirs) == 0 {
						dirs = []string{"levels"}
					}
					v := &validator{out: out}
					for _, d := range dirs {
						if err := v.checkGameDir(d); err != nil {
							return cli.Exit(err.Error(), 1)
						}
					}
					return v.finish()
				},
			},
		},
	}
}

func main() {
	err := newApp(os.Stdout).Run(context.Background(), os.Args)
	if err == nil {
		return
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}
	if ec, ok := err.(cli.ExitCoder); ok {
		os.Exit(ec.ExitCode())
	}
	os.Exit(1)
}
