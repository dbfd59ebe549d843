// Package update compares the running version against the latest release.
package update

import (
	"fmt"
	"runtime"

	"github.com/hashicorp/go-version"
)

// latestKnown is the newest release baked in at build time. A release
// pipeline overrides it with the tag being published.
var latestKnown = "0.1.0"

// Check reports whether a newer version than current is available.
// Pre-release builds like "dev" compare as older than any release and are
// never flagged.
func Check(current string) (bool, string, error) {
	cur, err := version.NewVersion(current)
	if err != nil {
		// Non-semver builds (dev, snapshot) are not update candidates.
		return false, "", nil
	}
	latest, err := version.NewVersion(latestKnown)
	if err != nil {
		return false, "", fmt.Errorf("invalid latest version format: %w", err)
	}
	if cur.LessThan(latest) {
		return true, latestKnown, nil
	}
	return false, "", nil
}

// DownloadURL returns the release asset URL for the current platform.
func DownloadURL(v string) string {
	return fmt.Sprintf("https://github.com/sqlbridge/sqlbridge/releases/download/v%s/sqlbridge-%s-%s",
		v, runtime.GOOS, runtime.GOARCH)
}
