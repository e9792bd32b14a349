package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/racecast/logging"
	"github.com/lixenwraith/racecast/network"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Expose the race and recorder over HTTP",
		Long: `Routes:
  GET    /status            status snapshot (JSON)
  GET    /frame.png         last presented frame
  POST   /race/{reset,start,stop}
  POST   /capture/{start,stop}
  GET    /capture/artifact  download the last recording
  DELETE /capture/artifact  discard it`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.LogLevel, cfg.Debug)
			if err != nil {
				return err
			}

			a, err := newApp(cfg, log, true)
			if err != nil {
				return err
			}

			router := network.NewRouter(&network.Handlers{
				Race:    a.race,
				Capture: a.capture,
				Frames:  a.surface,
				Status:  a.reg,
				Log:     log.Named("http"),
			})
			if err := a.hub.Register(network.NewService(cfg.Network(), router, log)); err != nil {
				return err
			}

			if err := a.start(); err != nil {
				return err
			}
			defer a.stop()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			<-ctx.Done()
			return nil
		},
	}
}
