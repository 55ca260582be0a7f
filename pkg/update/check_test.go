package update

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestUpgradeCommandForMethod(t *testing.T) {
	tests := []struct {
		method   InstallMethod
		expected string
	}{
		{InstallMethodBrew, "brew upgrade stashlens/tap/stashlens"},
		{InstallMethodGo, "go install github.com/stashlens/cli@latest"},
		{InstallMethodUnknown, "brew upgrade stashlens/tap/stashlens"},
	}
	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.Equal(t, tt.expected, suggestUpgradeCommandForMethod(tt.method))
		})
	}
}

func TestPathMatchesHomebrew(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/opt/homebrew/bin/stashlens", true},
		{"/usr/local/Cellar/stashlens/1.0/bin/stashlens", true},
		{"/home/linuxbrew/.linuxbrew/Cellar/stashlens/1.0/bin/stashlens", true},
		{"/home/user/go/bin/stashlens", false},
		{"/usr/local/bin/stashlens", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, pathMatchesHomebrew(tt.path))
		})
	}
}

func TestPathMatchesGoInstall(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/home/user/go/bin/stashlens", true},
		{"/opt/homebrew/bin/stashlens", false},
		{"/usr/local/bin/stashlens", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, pathMatchesGoInstall(tt.path))
		})
	}
}

func TestInstallMethodRulesPathPrecedence(t *testing.T) {
	rules := installMethodRules()

	detect := func(path string) InstallMethod {
		for _, r := range rules {
			if r.check(path) {
				return r.method
			}
		}
		return InstallMethodUnknown
	}

	assert.Equal(t, InstallMethodBrew, detect("/opt/homebrew/bin/stashlens"))
	assert.Equal(t, InstallMethodGo, detect("/home/user/go/bin/stashlens"))
	assert.Equal(t, InstallMethodUnknown, detect("/usr/local/bin/stashlens"))
}

func TestIsNewerVersion(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		latest   string
		expected bool
		wantErr  bool
	}{
		{"newer patch", "v1.0.0", "v1.0.1", true, false},
		{"same version", "v1.2.3", "1.2.3", false, false},
		{"older latest", "v2.0.0", "v1.9.9", false, false},
		{"dev build", "dev", "v1.0.0", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newer, err := IsNewerVersion(tt.current, tt.latest)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, newer)
		})
	}
}
