package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/promptcritic/internal/render"
	"github.com/dshills/promptcritic/internal/score"
)

type scoreFlags struct {
	format    string
	file      string
	failUnder int
	report    bool
	color     bool
}

func newScoreCmd() *cobra.Command {
	f := &scoreFlags{}

	cmd := &cobra.Command{
		Use:   "score [prompt...]",
		Short: "Score a prompt from 0 to 100",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(args, f, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "text", "Output format: text, json, or md")
	flags.StringVar(&f.file, "file", "", "Read the prompt from a file")
	flags.IntVar(&f.failUnder, "fail-under", 0, "Exit 2 when the score is below this value")
	flags.BoolVar(&f.report, "report", false, "Include every dimension in JSON output")
	flags.BoolVar(&f.color, "color", true, "Colour text output")

	return cmd
}

func runScore(args []string, f *scoreFlags, stdin io.Reader, stdout io.Writer) error {
	if f.failUnder < 0 || f.failUnder > 100 {
		return exitError(3, "--fail-under must be between 0 and 100, got %d", f.failUnder)
	}
	text, err := readInput(args, f.file, stdin)
	if err != nil {
		return exitError(3, "failed to read prompt: %v", err)
	}

	rep := score.NewReport(text)

	var output string
	switch f.format {
	case "json":
		var v any = rep
		if !f.report {
			v = struct {
				score.Result
				Grade score.Grade `json:"grade"`
				Solid bool        `json:"solid"`
			}{rep.Result, rep.Grade, rep.Solid}
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		output = string(data) + "\n"
	case "md":
		output = render.Markdown(rep)
	case "text":
		output = render.Text(rep, f.color && isTerminal(stdout))
	default:
		return exitError(3, "unknown format: %s", f.format)
	}
	fmt.Fprint(stdout, output)

	if f.failUnder > 0 && rep.Score < f.failUnder {
		return exitError(2, "score %d is below %d", rep.Score, f.failUnder)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
