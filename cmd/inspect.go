package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/stashlens/cli/internal/dump"
	"github.com/stashlens/cli/pkg/codec"
	"github.com/stashlens/cli/pkg/table"
	"github.com/stashlens/cli/pkg/util"
)

// previewLen bounds the decoded-value column so the table stays readable.
const previewLen = 48

var inspectCmd = &cobra.Command{
	Use:   "inspect <dump.json>",
	Short: "Browse a storage dump with detected encodings",
	Long: `Browse a storage dump file: every entry is shown with its store, key,
detected encoding and a decoded preview. Dumps are JSON files holding
entries of the form {"origin","store","key","value"}.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringP("store", "s", "", "Only show entries from this store (e.g. cookies, localStorage)")
	inspectCmd.Flags().StringP("output", "o", "", "Output format (json)")
	rootCmd.AddCommand(inspectCmd)
}

// InspectCmd carries the inspect command's dependencies.
type InspectCmd struct {
	registry *codec.Registry
	out      io.Writer
}

// InspectInput is the resolved flag/argument set for one invocation.
type InspectInput struct {
	Path   string
	Store  string
	Output string
}

func runInspect(cmd *cobra.Command, args []string) error {
	store, _ := cmd.Flags().GetString("store")
	output, _ := cmd.Flags().GetString("output")

	i := InspectCmd{registry: newRegistry(), out: os.Stdout}
	return i.Run(InspectInput{Path: args[0], Store: store, Output: output})
}

func (i InspectCmd) Run(in InspectInput) error {
	if err := validateOutputFlag(in.Output); err != nil {
		return err
	}
	if in.Store != "" && !lo.Contains(dump.KnownStores, in.Store) {
		return fmt.Errorf("unknown store %q (known: %s)", in.Store, strings.Join(dump.KnownStores, ", "))
	}

	d, err := dump.Load(in.Path)
	if err != nil {
		return err
	}

	entries := dump.Annotate(i.registry, d)
	if in.Store != "" {
		entries = dump.FilterStore(entries, in.Store)
	}

	if in.Output == "json" {
		return i.printJSON(entries)
	}

	if len(entries) == 0 {
		pterm.Warning.Println("Dump contains no matching entries")
		return nil
	}

	rows := pterm.TableData{{"Store", "Origin", "Key", "Encoding", "Preview"}}
	for _, e := range entries {
		rows = append(rows, []string{
			e.Store,
			util.OrDash(e.Origin),
			util.OrDash(e.Key),
			e.EncodingName(),
			util.OrDash(util.Truncate(e.Decoded, previewLen)),
		})
	}
	table.PrintTableNoPad(rows, true)

	decoded := lo.CountBy(entries, func(e dump.Annotated) bool { return e.Codec != nil })
	pterm.Success.Printf("%d entries, %d with a detected encoding\n", len(entries), decoded)
	return nil
}

func (i InspectCmd) printJSON(entries []dump.Annotated) error {
	type entryJSON struct {
		Origin   string `json:"origin"`
		Store    string `json:"store"`
		Key      string `json:"key"`
		Value    string `json:"value"`
		Encoding string `json:"encoding"`
		Decoded  string `json:"decoded"`
	}
	out := lo.Map(entries, func(e dump.Annotated, _ int) entryJSON {
		return entryJSON{
			Origin:   e.Origin,
			Store:    e.Store,
			Key:      e.Key,
			Value:    e.Value,
			Encoding: e.EncodingName(),
			Decoded:  e.Decoded,
		}
	})
	enc := json.NewEncoder(i.out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
