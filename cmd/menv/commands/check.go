package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the env files and report whether they are valid",
		Long: `check runs a full load and exits non-zero on the first error. Combine it
with --strict and --schema to reject unknown, duplicate, mistyped or missing keys.`,
		Example: `  menv check --strict --schema menv.schema.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := flags.load(cmd)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d keys from %d files\n", res.Parsed.Len(), len(res.Files))
			if err != nil {
				return fmt.Errorf("writing output: %w", err)
			}

			return nil
		},
	}
}
