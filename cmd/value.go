package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// registerValueFlags adds the shared flags for commands that take a storage
// value as input.
func registerValueFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("value-file", "f", "", "Read the value from a file (use '-' for stdin)")
	cmd.Flags().StringP("output", "o", "", "Output format (json)")
}

// readValue resolves the value operand: a positional argument or
// --value-file, where '-' means stdin. Trailing newlines from shell
// redirection are stripped; interior whitespace is preserved.
func readValue(cmd *cobra.Command, args []string) (string, error) {
	file, _ := cmd.Flags().GetString("value-file")

	if file != "" && len(args) > 0 {
		return "", fmt.Errorf("provide either a value argument or --value-file, not both")
	}

	switch {
	case file == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read value from stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read value file: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	case len(args) == 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("provide a value argument or --value-file")
	}
}

// validateOutputFlag rejects anything but the supported formats.
func validateOutputFlag(output string) error {
	if output != "" && output != "json" {
		return fmt.Errorf("unsupported --output value: use 'json'")
	}
	return nil
}
