package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/boyter/gocodewalker"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/stashlens/cli/internal/dump"
	"github.com/stashlens/cli/pkg/codec"
	"github.com/stashlens/cli/pkg/table"
	"github.com/stashlens/cli/pkg/util"
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Scan a directory tree for storage dumps and summarize encodings",
	Long: `Scan a directory tree for storage dump files (*.json) and summarize the
encodings detected in each. Ignore files (.gitignore, .ignore) are honored
during the walk; files that are not storage dumps are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringP("output", "o", "", "Output format (json)")
	rootCmd.AddCommand(scanCmd)
}

// ScanCmd carries the scan command's dependencies.
type ScanCmd struct {
	registry *codec.Registry
	out      io.Writer
}

// ScanInput is the resolved flag/argument set for one invocation.
type ScanInput struct {
	Dir    string
	Output string
}

// scanResult summarizes one dump file.
type scanResult struct {
	Path     string         `json:"path"`
	Size     int64          `json:"size"`
	Entries  int            `json:"entries"`
	Detected map[string]int `json:"detected"`
}

func runScan(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	s := ScanCmd{registry: newRegistry(), out: os.Stdout}
	return s.Run(ScanInput{Dir: args[0], Output: output})
}

func (s ScanCmd) Run(in ScanInput) error {
	if err := validateOutputFlag(in.Output); err != nil {
		return err
	}
	if info, err := os.Stat(in.Dir); err != nil || !info.IsDir() {
		return fmt.Errorf("not a directory: %s", in.Dir)
	}

	results, skipped, walkErr := s.walk(in.Dir)
	if walkErr != nil {
		if len(results) == 0 {
			return fmt.Errorf("walk failed: %w", walkErr)
		}
		if in.Output != "json" {
			pterm.Warning.Printf("Walk finished with errors: %v\n", walkErr)
		}
	}

	if in.Output == "json" {
		enc := json.NewEncoder(s.out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		pterm.Warning.Printf("No storage dumps found under %s (%d JSON files skipped)\n", in.Dir, skipped)
		return nil
	}

	rows := pterm.TableData{{"File", "Size", "Entries", "Detected encodings"}}
	for _, r := range results {
		rows = append(rows, []string{
			r.Path,
			util.FormatBytes(r.Size),
			fmt.Sprintf("%d", r.Entries),
			formatDetected(r.Detected),
		})
	}
	table.PrintTableNoPad(rows, true)
	pterm.Success.Printf("Scanned %d dumps (%d JSON files skipped)\n", len(results), skipped)
	return nil
}

// walk collects scan results for every parseable dump under dir. Files with
// a .json extension that fail to parse as dumps are counted, not fatal.
func (s ScanCmd) walk(dir string) (results []scanResult, skipped int, err error) {
	queue := make(chan *gocodewalker.File, 100)
	walker := gocodewalker.NewFileWalker(dir, queue)
	walker.AllowListExtensions = append(walker.AllowListExtensions, "json")

	var walkErr error
	walker.SetErrorHandler(func(e error) bool {
		walkErr = e
		return true // keep walking; surface the last error at the end
	})

	go func() {
		_ = walker.Start()
	}()

	for f := range queue {
		d, err := dump.Load(f.Location)
		if err != nil {
			skipped++
			continue
		}
		info, err := os.Stat(f.Location)
		if err != nil {
			skipped++
			continue
		}

		detected := map[string]int{}
		for _, a := range dump.Annotate(s.registry, d) {
			if a.Codec != nil {
				detected[a.Codec.Name()]++
			}
		}
		results = append(results, scanResult{
			Path:     f.Location,
			Size:     info.Size(),
			Entries:  len(d.Entries),
			Detected: detected,
		})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, skipped, walkErr
}

func formatDetected(detected map[string]int) string {
	if len(detected) == 0 {
		return "-"
	}
	names := make([]string, 0, len(detected))
	for name := range detected {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s ×%d", name, detected[name])
	}
	return util.JoinOrDash(parts...)
}
