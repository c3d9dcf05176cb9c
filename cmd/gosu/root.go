package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorlowski/gosuscript/engine"
	"github.com/gorlowski/gosuscript/internal/config"
	"github.com/gorlowski/gosuscript/internal/logging"
	"github.com/gorlowski/gosuscript/internal/metrics"
	"github.com/gorlowski/gosuscript/language/gosu"
	"github.com/gorlowski/gosuscript/language/quickjs"
)

var rootCmd = &cobra.Command{
	Use:   "gosu [file]",
	Short: "Gosu scripting engine",
	Long: `gosu - Evaluate Gosu scripts with an embeddable engine.

Run scripts from .gsp files, inline strings, or stdin, start an interactive
prompt, or serve evaluations over HTTP. Every evaluation runs in a fresh
environment: nothing carries over between scripts.

Runtimes: gosu (default, goja) or quickjs (WebAssembly, needs --quickjs-module).`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runRun, // Default to run command behavior
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML configuration file")
	rootCmd.PersistentFlags().StringP("lang", "l", "", "Runtime: gosu, quickjs (default: gosu)")
	rootCmd.PersistentFlags().String("quickjs-module", "", "Path to the QuickJS WASI module")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text, json")

	addRunFlags(rootCmd)
}

// app is the wiring shared by every subcommand.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Collector
	factory *engine.Factory
	manager *engine.Manager
}

// newApp loads configuration, applies flag overrides and builds the
// engine factory. Script output goes to out.
func newApp(cmd *cobra.Command, out io.Writer) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfigWithEnvOverrides(path)
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("lang"); v != "" {
		cfg.Engine.Language = normalizeLanguage(v)
	}
	if v, _ := cmd.Flags().GetString("quickjs-module"); v != "" {
		cfg.Engine.QuickJSModule = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.Log.Format = v
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}

	collector := metrics.NewCollector()
	factory := engine.NewFactory(newLanguage(cfg.Engine, out),
		engine.WithLogger(logger),
		engine.WithObserver(collector),
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: collector,
		factory: factory,
		manager: engine.NewManager(factory),
	}, nil
}

func normalizeLanguage(lang string) string {
	switch strings.ToLower(lang) {
	case "quickjs", "qjs", "js":
		return "quickjs"
	case "gosu", "gs":
		return "gosu"
	default:
		return lang
	}
}

func newLanguage(cfg config.EngineConfig, out io.Writer) engine.Language {
	if cfg.Language == "quickjs" {
		return quickjs.New(
			quickjs.WithModulePath(cfg.QuickJSModule),
			quickjs.WithCacheDir(cfg.CacheDir),
			quickjs.WithMemoryLimit(cfg.MemoryLimitPages),
			quickjs.WithOutput(out),
		)
	}
	return gosu.New(gosu.WithOutput(out))
}

// engineForFile picks the engine registered for filename's extension.
func (a *app) engineForFile(filename string) (*engine.Engine, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return a.manager.EngineByExtension(ext)
}
