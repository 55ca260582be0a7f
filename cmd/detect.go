package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/stashlens/cli/pkg/codec"
	"github.com/stashlens/cli/pkg/table"
)

var detectCmd = &cobra.Command{
	Use:   "detect [value]",
	Short: "Detect the encoding of a stored value",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDetect,
}

func init() {
	registerValueFlags(detectCmd)
	detectCmd.Flags().BoolP("all", "a", false, "Show every codec's confidence score")
	rootCmd.AddCommand(detectCmd)
}

// DetectCmd carries the detect command's dependencies so the behavior is
// testable without a terminal.
type DetectCmd struct {
	registry *codec.Registry
	out      io.Writer
}

// DetectInput is the resolved flag/argument set for one invocation.
type DetectInput struct {
	Value  string
	All    bool
	Output string
}

func runDetect(cmd *cobra.Command, args []string) error {
	value, err := readValue(cmd, args)
	if err != nil {
		return err
	}
	all, _ := cmd.Flags().GetBool("all")
	output, _ := cmd.Flags().GetString("output")

	d := DetectCmd{registry: newRegistry(), out: os.Stdout}
	return d.Run(DetectInput{Value: value, All: all, Output: output})
}

func (d DetectCmd) Run(in DetectInput) error {
	if err := validateOutputFlag(in.Output); err != nil {
		return err
	}

	detected := d.registry.Detect(in.Value)

	if in.Output == "json" {
		return d.printJSON(in, detected)
	}

	if in.All {
		rows := pterm.TableData{{"Codec", "Display name", "Confidence"}}
		for _, s := range d.registry.Scores(in.Value) {
			rows = append(rows, []string{s.Codec.Name(), s.Codec.DisplayName(), fmt.Sprintf("%d", s.Confidence)})
		}
		table.PrintTableNoPad(rows, true)
	}

	if detected == nil {
		pterm.Warning.Println("No encoding detected; treating value as plain text")
		return nil
	}
	pterm.Success.Printf("Detected encoding: %s (%s)\n", detected.DisplayName(), detected.Name())
	return nil
}

func (d DetectCmd) printJSON(in DetectInput, detected codec.Codec) error {
	result := struct {
		Codec  *string        `json:"codec"`
		Scores map[string]int `json:"scores,omitempty"`
	}{}
	if detected != nil {
		result.Codec = lo.ToPtr(detected.Name())
	}
	if in.All {
		result.Scores = lo.SliceToMap(d.registry.Scores(in.Value), func(s codec.Score) (string, int) {
			return s.Codec.Name(), s.Confidence
		})
	}
	enc := json.NewEncoder(d.out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
