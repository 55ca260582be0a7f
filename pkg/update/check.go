// Package update checks GitHub for newer stashlens releases and figures out
// how the running binary was installed so upgrades use the right channel.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// InstallMethod identifies how the CLI binary got onto this machine.
type InstallMethod string

const (
	InstallMethodBrew    InstallMethod = "brew"
	InstallMethodGo      InstallMethod = "go"
	InstallMethodUnknown InstallMethod = "unknown"
)

const latestReleaseURL = "https://api.github.com/repos/stashlens/cli/releases/latest"

type releaseResponse struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// FetchLatest returns the newest release tag and its release-notes URL.
func FetchLatest(ctx context.Context) (tag string, releaseURL string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, latestReleaseURL, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("release check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("release check failed: %s", resp.Status)
	}

	var release releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", "", fmt.Errorf("invalid release response: %w", err)
	}
	if release.TagName == "" {
		return "", "", fmt.Errorf("release response missing tag name")
	}
	return release.TagName, release.HTMLURL, nil
}

// IsNewerVersion reports whether latest is a strictly newer semver than
// current. Dev builds and unparseable versions return an error so callers
// can decide how to proceed.
func IsNewerVersion(current, latest string) (bool, error) {
	cur, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false, fmt.Errorf("cannot parse current version %q: %w", current, err)
	}
	lat, err := semver.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return false, fmt.Errorf("cannot parse latest version %q: %w", latest, err)
	}
	return lat.GreaterThan(cur), nil
}

type installMethodRule struct {
	method InstallMethod
	check  func(path string) bool
}

// installMethodRules is ordered: the first matching rule wins.
func installMethodRules() []installMethodRule {
	return []installMethodRule{
		{InstallMethodBrew, pathMatchesHomebrew},
		{InstallMethodGo, pathMatchesGoInstall},
	}
}

// DetectInstallMethod inspects the running binary's path. The returned path
// is reported even when the method is unknown, for manual instructions.
func DetectInstallMethod() (InstallMethod, string) {
	binaryPath, err := os.Executable()
	if err != nil {
		return InstallMethodUnknown, ""
	}
	if resolved, err := filepath.EvalSymlinks(binaryPath); err == nil {
		binaryPath = resolved
	}
	for _, rule := range installMethodRules() {
		if rule.check(binaryPath) {
			return rule.method, binaryPath
		}
	}
	return InstallMethodUnknown, binaryPath
}

func pathMatchesHomebrew(path string) bool {
	return strings.Contains(path, "/homebrew/") ||
		strings.Contains(path, "/Cellar/") ||
		strings.Contains(path, "/.linuxbrew/")
}

func pathMatchesGoInstall(path string) bool {
	if gobin := os.Getenv("GOBIN"); gobin != "" && strings.HasPrefix(path, gobin+string(filepath.Separator)) {
		return true
	}
	return strings.Contains(path, "/go/bin/")
}

func suggestUpgradeCommandForMethod(method InstallMethod) string {
	switch method {
	case InstallMethodGo:
		return "go install github.com/stashlens/cli@latest"
	default:
		return "brew upgrade stashlens/tap/stashlens"
	}
}

// SuggestUpgradeCommand returns the shell command a user should run to
// upgrade via the given installation method.
func SuggestUpgradeCommand(method InstallMethod) string {
	return suggestUpgradeCommandForMethod(method)
}
