package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/racecast/capture"
	"github.com/lixenwraith/racecast/core"
	"github.com/lixenwraith/racecast/logging"
	"github.com/lixenwraith/racecast/terminal"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Watch and control the race in the terminal",
		Long: `Keys: s start, x stop, r reset, c record, v stop recording,
d download the last recording, q quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// The view owns the terminal; logs go to a file only in debug mode
			log, closer, err := logging.NewFile(cfg.Debug, logging.LogDir, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer closer.Close()

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("init terminal: %w", err)
			}
			defer screen.Fini()
			core.SetCrashCleanup(screen.Fini)

			a, err := newApp(cfg, log, true)
			if err != nil {
				return err
			}
			if err := a.start(); err != nil {
				return err
			}
			defer a.stop()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			saver := capture.DirSaver{Fs: afero.NewOsFs(), Dir: cfg.OutputDir}
			view := terminal.NewView(screen, a.race, a.capture, a.surface, a.reg, saver, log)
			if err := view.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("view stopped", zap.Error(err))
				return err
			}
			return nil
		},
	}
}
