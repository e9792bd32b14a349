package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/racecast/capture"
	"github.com/lixenwraith/racecast/engine"
	"github.com/lixenwraith/racecast/event"
	"github.com/lixenwraith/racecast/logging"
	"github.com/lixenwraith/racecast/status"
)

func newRecordCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Run one race headless and save the recording",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.LogLevel, cfg.Debug)
			if err != nil {
				return err
			}

			a, err := newApp(cfg, log, false)
			if err != nil {
				return err
			}

			finished := make(chan engine.RaceState, 1)
			a.race.AddListener(func(et event.EventType, st engine.RaceState) {
				if et == event.EventRaceFinish {
					select {
					case finished <- st:
					default:
					}
				}
			})

			if err := a.start(); err != nil {
				return err
			}
			defer a.stop()

			if err := a.capture.StartRecording(); err != nil {
				return fmt.Errorf("start recording: %w", err)
			}
			a.race.Start()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			var result error
			select {
			case st := <-finished:
				log.Info("race finished",
					zap.Int("winner", st.WinnerID),
					zap.String("elapsed", status.FormatElapsed(st.ElapsedMs)))
			case <-time.After(timeout):
				a.race.Stop()
				result = errors.New("race did not finish before timeout")
			case <-ctx.Done():
				a.race.Stop()
				result = ctx.Err()
			}

			a.capture.StopRecording()
			a.capture.Wait()

			path, err := a.capture.DownloadArtifact(capture.DirSaver{Fs: afero.NewOsFs(), Dir: cfg.OutputDir})
			if err != nil {
				return err
			}
			if path == "" {
				return errors.Join(result, errors.New("no recording produced"))
			}

			counters := a.reg.Counters("race")
			fields := make([]zap.Field, 0, len(counters))
			for _, c := range counters {
				fields = append(fields, zap.Int64(string(c.Key), c.Value))
			}
			log.Info("race counters", fields...)

			snap := a.reg.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "%s in %s, %d frames, saved %s\n", snap.Headline(), snap.Elapsed, snap.Segments, path)
			return result
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "give up if no car finishes in time")
	return cmd
}
