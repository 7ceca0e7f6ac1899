package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/nlogbridge/config"
	"github.com/philipp01105/nlogbridge/core"
	"github.com/philipp01105/nlogbridge/severity"
)

var version = "dev"

type rootOptions struct {
	configPath string
	envFiles   []string
	debug      bool

	level zap.AtomicLevel
	log   *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{level: zap.NewAtomicLevelAt(zap.InfoLevel)}

	cmd := &cobra.Command{
		Use:           "nlogbridge",
		Short:         "Resolve severity thresholds and run the bridge admin server",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.debug {
				opts.level.SetLevel(zap.DebugLevel)
			}
			opts.log = newLogger(cmd.ErrOrStderr(), opts.level)
			return config.LoadDotEnv(opts.envFiles...)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.log.Sync()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv files to load (default .env)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug log, including routine threshold diagnostics")

	cmd.AddCommand(
		newThresholdsCmd(opts),
		newClassifyCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

func newLogger(w interface{ Write([]byte) (int, error) }, level zap.AtomicLevel) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	))
}

// loadConfig reads the configuration the way every subcommand does
func (o *rootOptions) loadConfig() (config.Config, error) {
	return config.Load(o.configPath)
}

// newCache returns a threshold cache for cfg reporting to the process log
func (o *rootOptions) newCache(cfg config.Config) (*severity.Cache, *core.LevelMap) {
	levels := core.DefaultLevelMap()
	cache := severity.NewCache(levels, severity.ZapDiagnostics(o.log))
	cache.SetConfig(cfg.Severity.Settings().Config())
	return cache, levels
}

// Execute runs the root command and exits non-zero on error
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		cmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
