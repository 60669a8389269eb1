package cmd

import (
	"github.com/sarchlab/octopi/config"
	"github.com/spf13/cobra"
)

func newDefaultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the default configuration.",
		Long: "`defaults` prints the default configuration as YAML. The " +
			"output can be edited and passed back with --config.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Default().Marshal()
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}
}
