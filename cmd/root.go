// Package cmd provides the command-line interface for Octopi.
package cmd

import (
	"fmt"

	"github.com/sarchlab/octopi/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

type commonFlags struct {
	configFile string
	envFiles   []string
	logLevel   string
}

// NewRootCommand creates the octopi command and its subcommands.
func NewRootCommand() *cobra.Command {
	flags := &commonFlags{}

	rootCmd := &cobra.Command{
		Use: "octopi",
		Short: "Octopi builds the coherence fabric of a chiplet-style cache " +
			"hierarchy.",
		Long: `Octopi partitions the cores of a board into core complexes, ` +
			`places a directory on every memory port, and joins them with a ` +
			`star network around a cross-complex router.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, err := logrus.ParseLevel(flags.logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q", flags.logLevel)
			}

			logrus.SetLevel(level)

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "",
		"YAML configuration file")
	rootCmd.PersistentFlags().StringSliceVar(&flags.envFiles, "env",
		[]string{".env"}, "files with environment overrides")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newBuildCommand(flags),
		newValidateCommand(flags),
		newDefaultsCommand(),
		newInspectCommand(),
	)

	return rootCmd
}

// Execute runs the octopi command and exits. Recorders registered with
// atexit are flushed before the process ends.
func Execute() {
	err := NewRootCommand().Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func (f *commonFlags) loadConfig() (config.Config, error) {
	if err := config.LoadEnvFiles(f.envFiles...); err != nil {
		return config.Config{}, err
	}

	cfg := config.Default()
	if f.configFile != "" {
		var err error

		cfg, err = config.Load(f.configFile)
		if err != nil {
			return config.Config{}, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}
