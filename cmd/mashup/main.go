// Command mashup estimates the musical key and tempo of an audio file.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/callistachang/mashup-tools/analyze"
	"github.com/callistachang/mashup-tools/logging"
)

// The default analysis window keeps the tool fast on long tracks; the intro
// of a song is usually enough to pin down key and tempo.
const defaultWindow = 10 * time.Second

var (
	cfgFile   string
	audioFile string
	wantKey   bool
	wantBPM   bool
	fullSong  bool
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "mashup",
	Short: "Estimate the musical key and tempo of a song",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.mashup-tools.yaml)")

	rootCmd.Flags().StringVarP(&audioFile, "file", "f", "./test_data/sam_smith.mp3", "audio file to analyze")
	rootCmd.Flags().BoolVarP(&wantKey, "key", "k", false, "estimate the musical key")
	rootCmd.Flags().BoolVarP(&wantBPM, "bpm", "b", false, "estimate the tempo in BPM")
	rootCmd.Flags().BoolVar(&fullSong, "full", false, "analyze the whole song instead of the first 10 seconds")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	viper.SetDefault("window_size", 2048)
	viper.SetDefault("hop_size", 512)
	viper.SetDefault("onset_window_size", 1024)
	viper.SetDefault("onset_hop_size", 512)
	viper.SetDefault("tuning", 440.0)
	viper.SetDefault("min_bpm", 60.0)
	viper.SetDefault("max_bpm", 180.0)
}

// initConfig reads the optional config file.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".mashup-tools")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func run() error {
	if verbose {
		logging.SetLevel(logging.DebugLevel)
	}

	if !wantKey && !wantBPM {
		// Nothing requested means everything.
		wantKey = true
		wantBPM = true
	}

	cfg := analyze.DefaultConfig()
	cfg.WindowSize = viper.GetInt("window_size")
	cfg.HopSize = viper.GetInt("hop_size")
	cfg.OnsetWindowSize = viper.GetInt("onset_window_size")
	cfg.OnsetHopSize = viper.GetInt("onset_hop_size")
	cfg.TuningFreq = viper.GetFloat64("tuning")
	cfg.Tempo.MinBPM = viper.GetFloat64("min_bpm")
	cfg.Tempo.MaxBPM = viper.GetFloat64("max_bpm")
	if !fullSong {
		cfg.MaxDuration = defaultWindow
	}

	analyzer := analyze.New(cfg)

	path, err := filepath.Abs(audioFile)
	if err != nil {
		path = audioFile
	}
	fmt.Println(path)

	if wantKey {
		estimate, err := analyzer.Key(audioFile)
		if err != nil {
			return err
		}
		fmt.Printf("estimated key: %s\n", estimate.Label)
	}

	if wantBPM {
		bpm, err := analyzer.Tempo(audioFile)
		if err != nil {
			return err
		}
		fmt.Printf("estimated tempo: %.1f BPM\n", bpm)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
