package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stashlens/cli/pkg/codec"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [value]",
	Short: "Encode an edited value back into stored form",
	Long: `Encode an edited value back into stored form with the named codec.

Unlike decode, encode fails loudly: writing a silently wrong value back into
storage is worse than a visible error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncode,
}

func init() {
	registerValueFlags(encodeCmd)
	encodeCmd.Flags().StringP("codec", "c", "", "Codec to encode with (required)")
	_ = encodeCmd.MarkFlagRequired("codec")
	rootCmd.AddCommand(encodeCmd)
}

// EncodeCmd carries the encode command's dependencies.
type EncodeCmd struct {
	registry *codec.Registry
	out      io.Writer
}

// EncodeInput is the resolved flag/argument set for one invocation.
type EncodeInput struct {
	Value     string
	CodecName string
	Output    string
}

func runEncode(cmd *cobra.Command, args []string) error {
	value, err := readValue(cmd, args)
	if err != nil {
		return err
	}
	codecName, _ := cmd.Flags().GetString("codec")
	output, _ := cmd.Flags().GetString("output")

	e := EncodeCmd{registry: newRegistry(), out: os.Stdout}
	return e.Run(EncodeInput{Value: value, CodecName: codecName, Output: output})
}

func (e EncodeCmd) Run(in EncodeInput) error {
	if err := validateOutputFlag(in.Output); err != nil {
		return err
	}

	c, ok := e.registry.Get(in.CodecName)
	if !ok {
		return fmt.Errorf("unknown codec %q (known: %s)", in.CodecName, strings.Join(e.registry.Names(), ", "))
	}

	encoded, err := c.Encode(in.Value)
	if err != nil {
		return fmt.Errorf("encode failed: %w", err)
	}

	if in.Output == "json" {
		enc := json.NewEncoder(e.out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Codec   string `json:"codec"`
			Encoded string `json:"encoded"`
		}{Codec: c.Name(), Encoded: encoded})
	}

	fmt.Fprintln(e.out, encoded)
	return nil
}
