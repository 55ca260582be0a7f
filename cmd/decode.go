package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/stashlens/cli/pkg/codec"
	"github.com/stashlens/cli/pkg/offload"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [value]",
	Short: "Decode a stored value into its human-readable form",
	Long: `Decode a stored value into its human-readable form.

The encoding is auto-detected unless --codec names one explicitly. Payloads
larger than the offload threshold are decoded on a worker pool instead of
the calling goroutine.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

func init() {
	registerValueFlags(decodeCmd)
	decodeCmd.Flags().StringP("codec", "c", "", "Codec to decode with (default: auto-detect)")
	rootCmd.AddCommand(decodeCmd)
}

// DecodeCmd carries the decode command's dependencies.
type DecodeCmd struct {
	registry *codec.Registry
	pool     *offload.Pool
	out      io.Writer
}

// DecodeInput is the resolved flag/argument set for one invocation.
type DecodeInput struct {
	Value     string
	CodecName string
	Output    string
}

func runDecode(cmd *cobra.Command, args []string) error {
	value, err := readValue(cmd, args)
	if err != nil {
		return err
	}
	codecName, _ := cmd.Flags().GetString("codec")
	output, _ := cmd.Flags().GetString("output")

	reg := newRegistry()
	pool := offload.NewPool(reg, offload.Config{Threshold: offloadThreshold()})
	defer pool.Close()

	d := DecodeCmd{registry: reg, pool: pool, out: os.Stdout}
	return d.Run(cmd.Context(), DecodeInput{Value: value, CodecName: codecName, Output: output})
}

func (d DecodeCmd) Run(ctx context.Context, in DecodeInput) error {
	if err := validateOutputFlag(in.Output); err != nil {
		return err
	}

	c, err := d.resolveCodec(in)
	if err != nil {
		return err
	}

	decoded, err := d.pool.DecodeValue(ctx, c, in.Value)
	if err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	if in.Output == "json" {
		enc := json.NewEncoder(d.out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Codec   string `json:"codec"`
			Decoded string `json:"decoded"`
		}{Codec: c.Name(), Decoded: decoded})
	}

	if c.Name() != "raw" {
		pterm.Info.Printf("Decoded with %s\n", c.DisplayName())
	} else {
		pterm.Info.Println("No encoding detected; value passed through unchanged")
	}
	fmt.Fprintln(d.out, decoded)
	return nil
}

func (d DecodeCmd) resolveCodec(in DecodeInput) (codec.Codec, error) {
	if in.CodecName == "" {
		return d.registry.DetectOrRaw(in.Value), nil
	}
	c, ok := d.registry.Get(in.CodecName)
	if !ok {
		return nil, fmt.Errorf("unknown codec %q (known: %s)", in.CodecName, strings.Join(d.registry.Names(), ", "))
	}
	return c, nil
}
