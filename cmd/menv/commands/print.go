package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	menv "github.com/0xalexb/hjarta-menv"
	"github.com/0xalexb/hjarta-menv/cast"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

// Print formats.
const (
	formatEnv  = "env"
	formatJSON = "json"
	formatYAML = "yaml"
)

var errUnknownFormat = errors.New("unknown format")

func newPrintCommand(flags *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the merged values",
		Example: `  menv print
  menv print --profile prod --format json
  menv print -f base.env -f override.env --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := flags.load(cmd)
			if err != nil {
				return err
			}

			return printValues(cmd.OutOrStdout(), res, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", formatEnv, "output format: env, json or yaml")

	return cmd
}

func printValues(w io.Writer, res *menv.Result, format string) error {
	switch format {
	case formatEnv:
		for _, key := range res.Parsed.Keys() {
			value, _ := res.Parsed.Get(key)

			_, err := fmt.Fprintf(w, "%s=%s\n", key, quoteEnv(cast.Format(value)))
			if err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}

		return nil
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(res.Parsed.Map())
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}

		return nil
	case formatYAML:
		data, err := yaml.Marshal(res.Parsed.Map())
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}

		_, err = w.Write(data)
		if err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

//nolint:gochecknoglobals // read-only replacer.
var envEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

// quoteEnv quotes value when the parser would otherwise trim, cut or unescape it.
func quoteEnv(value string) string {
	if value == "" || !strings.ContainsAny(value, " \t\r\n#\"'\\") {
		return value
	}

	if !strings.ContainsAny(value, "'\r\n\t\\") {
		return "'" + value + "'"
	}

	return `"` + envEscaper.Replace(value) + `"`
}
