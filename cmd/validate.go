package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCommand(flags *commonFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that a configuration describes a valid fabric.",
		Long: "`validate` builds the fabric of a configuration without " +
			"recording or serving it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			f, _, err := buildFabric(cfg, nil)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"OK: %d routers, %d external links, %d internal links, "+
					"%d sequencers\n",
				len(f.Routers()), len(f.ExtLinks()), len(f.IntLinks()),
				f.NumSequencers())

			return nil
		},
	}
}
