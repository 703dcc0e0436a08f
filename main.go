package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"assetkit/config"
	"assetkit/internal/logger"
	"assetkit/manifest"
)

const (
	exitOK          = 0
	exitError       = 1
	exitNoValue     = 2
	exitInterrupted = 130 // Standard exit code for SIGINT
)

// app carries what every subcommand shares once flags are parsed.
type app struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
}

// codedError ends the process with a specific exit code.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

// noValue reports an answer that is legitimately absent, e.g. an asset
// without adjustments.
func noValue(format string, args ...any) error {
	return &codedError{code: exitNoValue, err: fmt.Errorf(format, args...)}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "assetkit",
		Short:         "Answer questions about photo library assets described by a manifest",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// CLI flags > config file > defaults
			cfg, err := config.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg

			logger.Init(cfg.Log.Level, cfg.Log.Format, a.stderr)
			cmd.SetContext(logger.WithContext(cmd.Context(), logger.L))
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newInspectCmd(a),
		newAdjustedCmd(a),
		newLivePhotoCmd(a),
		newConfigCmd(a),
	)
	return root
}

func newConfigCmd(a *app) *cobra.Command {
	var savePath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.PrintConfig(a.stdout); err != nil {
				return err
			}
			if savePath == "" {
				return nil
			}
			if err := config.SaveConfigFile(a.cfg, savePath); err != nil {
				return err
			}
			logger.FromContext(cmd.Context()).Info("configuration saved", "path", savePath)
			return nil
		},
	}
	cmd.Flags().StringVar(&savePath, "save", "", "Also write the configuration to this file")
	cmd.Flags().Lookup("save").NoOptDefVal = config.UserConfigPath()
	return cmd
}

func (a *app) loadManifest(ctx context.Context) (*manifest.Manifest, error) {
	path, err := a.cfg.RequireManifest()
	if err != nil {
		return nil, err
	}

	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Debug("manifest loaded", "path", path, "assets", len(m.Assets()))
	return m, nil
}

// exitCode reports err on w and maps it to a process exit code.
func exitCode(ctx context.Context, err error, w io.Writer) int {
	if err == nil {
		return exitOK
	}

	var coded *codedError
	if errors.As(err, &coded) {
		fmt.Fprintln(w, coded.err)
		return coded.code
	}
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, "Interrupted")
		return exitInterrupted
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	return exitError
}

func main() {
	// Ctrl+C and SIGTERM cancel the root context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	code := exitCode(ctx, err, os.Stderr)

	stop()
	os.Exit(code)
}
