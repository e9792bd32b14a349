package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lixenwraith/racecast/config"
)

const envPrefix = "RACECAST"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "racecast",
	Short: "Multi-lane car race simulation with live view and recording",
	Long: `racecast runs a randomized multi-lane car race on an offscreen canvas.
The race can be watched in the terminal, driven over HTTP, or recorded
headless into a Motion-JPEG artifact.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	d := config.Default()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.racecast.yaml)")

	pf.Int("width", d.Width, "surface width in pixels")
	pf.Int("height", d.Height, "surface height in pixels")
	pf.Int("lanes", d.Lanes, "number of lanes, one racer each")
	pf.Int("fps", d.FPS, "frame rate of the race loop")
	pf.Int("capture-fps", d.CaptureFPS, "sampling rate of the recorder")
	pf.Int("capture-quality", d.CaptureQuality, "JPEG quality of recorded frames (1-100)")
	pf.Float64("speed-min", d.SpeedMin, "lower bound of racer base speed in px/s")
	pf.Float64("speed-max", d.SpeedMax, "upper bound of racer base speed in px/s")
	pf.Float64("boost-min", d.BoostMin, "lower bound of racer boost multiplier")
	pf.Float64("boost-max", d.BoostMax, "upper bound of racer boost multiplier")
	pf.Duration("max-frame-delta", d.MaxFrameDelta, "cap on a single simulation step")
	pf.Uint64("seed", d.Seed, "random seed, 0 picks one")
	pf.String("output-dir", d.OutputDir, "directory for downloaded recordings")
	pf.String("spool-dir", d.SpoolDir, "directory for in-flight artifacts (empty keeps them in memory)")
	pf.String("listen", d.Listen, "HTTP listen address")
	pf.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
	pf.Bool("debug", d.Debug, "enable file logging in terminal mode")
	pf.String("fsm-config", d.FSMConfig, "custom race state machine TOML")
	pf.String("capture-fsm-config", d.CaptureFSMConfig, "custom capture state machine TOML")
	pf.Bool("audio", d.Audio, "play start, finish and recording cues")
	pf.Float64("volume", d.Volume, "cue volume, linear")
	pf.Bool("hud", d.HUD, "draw the time and winner overlay")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newRecordCmd())
	rootCmd.AddCommand(newServeCmd())
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	v := viper.GetViper()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".racecast")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	}

	bindFlags(rootCmd.PersistentFlags(), v)
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd.Flags(), v)
	}
}

// bindFlags binds each flag to its viper key; dashes become underscores
func bindFlags(fs *pflag.FlagSet, v *viper.Viper) {
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not bind flag %s: %v\n", f.Name, err)
		}
	})
}

// loadConfig resolves the effective configuration after flags are parsed
func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}
