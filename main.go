package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/k0kubun/pp/v3"
	"github.com/kapitanov/chip8emu/internal/disasm"
	"github.com/kapitanov/chip8emu/internal/hal"
	"github.com/kapitanov/chip8emu/internal/machine"
	"github.com/kapitanov/chip8emu/internal/term"
	"github.com/spf13/cobra"
)

const (
	frontendSDL  = "sdl"
	frontendTerm = "term"
)

type runOptions struct {
	cfg        machine.Config
	frontend   string
	scale      int
	holdFrames int
	dumpState  bool
}

func main() {
	cmd := newRootCommand()
	cmd.SetArgs(os.Args[1:])
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("fatal error", "err", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           fmt.Sprintf("%s PATH_TO_ROM_FILE", filepath.Base(os.Args[0])),
		Short:         "Run CHIP-8 emulator",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	verbose := cmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")
	cmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		loggerOpts := &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
		if *verbose {
			loggerOpts.Level = slog.LevelDebug
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, loggerOpts)))
	}

	bindRunFlags(cmd, newRunOptions())

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newDisasmCommand())

	return cmd
}

func newRunOptions() *runOptions {
	return &runOptions{cfg: machine.DefaultConfig()}
}

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run PATH_TO_ROM_FILE",
		Short: "Run CHIP-8 program",
		Args:  cobra.ExactArgs(1),
	}

	bindRunFlags(cmd, newRunOptions())
	return cmd
}

// bindRunFlags registers the emulator flags on cmd and makes it run the ROM
// given as its only argument.
func bindRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().IntVar(&opts.cfg.Speed, "speed", opts.cfg.Speed, "instructions executed per frame")
	cmd.Flags().IntVar(&opts.cfg.TimerHz, "timer-hz", opts.cfg.TimerHz, "frame and delay timer rate")
	cmd.Flags().StringVar(&opts.frontend, "frontend", frontendSDL, "display frontend: sdl or term")
	cmd.Flags().IntVar(&opts.scale, "scale", hal.DefaultScale, "sdl window pixels per CHIP-8 pixel")
	cmd.Flags().IntVar(&opts.holdFrames, "hold-frames", term.DefaultHoldFrames, "term frames a key stays pressed")
	cmd.Flags().BoolVar(&opts.dumpState, "dump-state", false, "print machine state on exit")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		path := args[0]
		bs, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("unable to load file %q: %w", path, err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return run(ctx, bs, *opts)
	}
}

func run(ctx context.Context, program []byte, opts runOptions) error {
	var (
		frontend machine.Frontend
		shutdown func()
	)

	switch opts.frontend {
	case frontendSDL:
		h, err := hal.New(opts.scale)
		if err != nil {
			return fmt.Errorf("unable to initialize hal: %w", err)
		}
		frontend, shutdown = h, h.Shutdown

	case frontendTerm:
		t, err := term.New(opts.holdFrames)
		if err != nil {
			return fmt.Errorf("unable to initialize terminal: %w", err)
		}
		frontend, shutdown = t, t.Shutdown

	default:
		return fmt.Errorf("unknown frontend %q", opts.frontend)
	}

	m, err := machine.New(program, frontend, opts.cfg)
	if err != nil {
		shutdown()
		return err
	}

	err = m.Run(ctx)
	shutdown()

	if opts.dumpState {
		pp.Fprintln(os.Stderr, m.VM().Snapshot())
	}

	return err
}

func newDisasmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm PATH_TO_ROM_FILE",
		Short: "Print program listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			bs, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("unable to load file %q: %w", path, err)
			}

			return disasm.Write(cmd.OutOrStdout(), bs)
		},
	}
}
