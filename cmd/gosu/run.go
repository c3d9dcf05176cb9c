package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gorlowski/gosuscript/engine"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Evaluate a script and print its value",
	Long: `Evaluate a Gosu script and print the value of its last expression.

Code can be provided via:
  - File argument: gosu run script.gsp
  - Inline flag: gosu run -c '[1, 2, 3].sum()'
  - Stdin: echo '2 + 2' | gosu run

With --watch, the file is evaluated again every time it changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "c", "", "Code to evaluate")
	cmd.Flags().BoolP("watch", "w", false, "Re-evaluate the file when it changes")
	cmd.Flags().Bool("quiet", false, "Do not print the script's value")
}

func runRun(cmd *cobra.Command, args []string) error {
	code, _ := cmd.Flags().GetString("code")
	watch, _ := cmd.Flags().GetBool("watch")
	quiet, _ := cmd.Flags().GetBool("quiet")

	a, err := newApp(cmd, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case code != "":
		if watch {
			return errors.New("--watch needs a file argument")
		}
		value, err := a.factory.NewEngine().Eval(ctx, code, nil)
		return report(cmd, value, withSnippet(err, "", code), quiet)

	case len(args) > 0:
		filename := args[0]
		eng, err := a.fileEngine(cmd, filename)
		if err != nil {
			return err
		}
		if watch {
			return watchFile(ctx, a, filename, func() {
				value, err := evalFile(ctx, eng, filename)
				if err := report(cmd, value, err, quiet); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				}
			})
		}
		value, err := evalFile(ctx, eng, filename)
		return report(cmd, value, err, quiet)

	default:
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok {
			stat, err := f.Stat()
			if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
				// No piped input, show help
				return cmd.Help()
			}
		}
		value, err := a.factory.NewEngine().EvalReader(ctx, in, nil)
		return report(cmd, value, err, quiet)
	}
}

// fileEngine resolves the engine for filename by extension. Files with an
// unregistered extension are only accepted when --lang is given.
func (a *app) fileEngine(cmd *cobra.Command, filename string) (*engine.Engine, error) {
	eng, err := a.engineForFile(filename)
	if errors.Is(err, engine.ErrEngineNotFound) && cmd.Flags().Changed("lang") {
		a.logger.Debug("no engine registered for extension, using --lang",
			"file", filename,
			"language", a.cfg.Engine.Language,
		)
		return a.factory.NewEngine(), nil
	}
	return eng, err
}

func evalFile(ctx context.Context, eng *engine.Engine, filename string) (any, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	value, err := eng.EvalReader(ctx, f, nil)
	if errors.Is(err, engine.ErrCompilation) {
		if src, readErr := os.ReadFile(filename); readErr == nil {
			err = withSnippet(err, filename, string(src))
		}
	}
	return value, err
}

func report(cmd *cobra.Command, value any, err error, quiet bool) error {
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), formatValue(value))
	}
	return nil
}

// formatValue renders a script value for display: strings as-is,
// nil as null, everything else as JSON.
func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
