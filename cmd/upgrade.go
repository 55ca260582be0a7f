package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/browser"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/stashlens/cli/pkg/update"
)

var (
	upgradeDryRun bool
	upgradeOpen   bool
)

var upgradeCmd = &cobra.Command{
	Use:     "upgrade",
	Aliases: []string{"update"},
	Short:   "Upgrade stashlens to the latest version",
	Long: `Upgrade stashlens to the latest version.

Supported installation methods:
  - Homebrew (brew)
  - go install

If your installation method cannot be detected, manual upgrade instructions
will be provided.`,
	RunE: runUpgrade,
}

func init() {
	upgradeCmd.Flags().BoolVar(&upgradeDryRun, "dry-run", false, "Show what would be executed without running")
	upgradeCmd.Flags().BoolVar(&upgradeOpen, "open", false, "Open the release notes in a browser")
	rootCmd.AddCommand(upgradeCmd)
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	currentVersion := metadata.Version

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	pterm.Info.Println("Checking for updates...")

	latestTag, releaseURL, err := update.FetchLatest(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	isNewer, err := update.IsNewerVersion(currentVersion, latestTag)
	if err != nil {
		// Version comparison fails on dev builds; still allow the upgrade
		pterm.Warning.Printf("Could not compare versions (%s vs %s): %v\n", currentVersion, latestTag, err)
		pterm.Info.Println("Proceeding with upgrade...")
	} else if !isNewer {
		pterm.Success.Printf("You are already on the latest version (%s)\n", strings.TrimPrefix(currentVersion, "v"))
		return nil
	} else {
		pterm.Info.Printf("New version available: %s → %s\n", strings.TrimPrefix(currentVersion, "v"), strings.TrimPrefix(latestTag, "v"))
		if releaseURL != "" {
			pterm.Info.Printf("Release notes: %s\n", releaseURL)
		}
	}

	if upgradeOpen && releaseURL != "" {
		if err := browser.OpenURL(releaseURL); err != nil {
			pterm.Warning.Printf("Could not open browser: %v\n", err)
		}
	}

	method, binaryPath := update.DetectInstallMethod()

	if method == update.InstallMethodUnknown {
		printManualUpgradeInstructions(latestTag, binaryPath)
		return fmt.Errorf("could not detect installation method")
	}

	if upgradeDryRun {
		pterm.Info.Printf("Would run: %s\n", update.SuggestUpgradeCommand(method))
		return nil
	}

	pterm.Info.Printf("Upgrading via %s...\n", method)
	return executeUpgrade(method)
}

func executeUpgrade(method update.InstallMethod) error {
	parts := strings.Fields(update.SuggestUpgradeCommand(method))
	c := exec.Command(parts[0], parts[1:]...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("upgrade command failed: %w", err)
	}
	pterm.Success.Println("Upgrade complete")
	return nil
}

func printManualUpgradeInstructions(latestTag, binaryPath string) {
	pterm.Warning.Println("Could not detect how stashlens was installed.")
	if binaryPath != "" {
		pterm.Info.Printf("Current binary: %s\n", binaryPath)
	}
	pterm.Info.Printf("To upgrade to %s manually, run one of:\n", latestTag)
	fmt.Printf("  %s\n", update.SuggestUpgradeCommand(update.InstallMethodBrew))
	fmt.Printf("  %s\n", update.SuggestUpgradeCommand(update.InstallMethodGo))
}
