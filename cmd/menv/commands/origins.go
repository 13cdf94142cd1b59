package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOriginsCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "origins",
		Short: "Print the file and line that produced each value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := flags.load(cmd)
			if err != nil {
				return err
			}

			for _, key := range res.Parsed.Keys() {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", key, res.Origins[key])
				if err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
			}

			return nil
		},
	}
}
