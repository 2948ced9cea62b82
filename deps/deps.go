// Package deps checks for the external programs ytui drives.
package deps

import (
	"fmt"
	"os/exec"
	"path/filepath"
)

const (
	MpvInstallURL    = "https://mpv.io/installation/"
	VlcInstallURL    = "https://www.videolan.org/vlc/"
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
	YtDlpInstallURL  = "https://github.com/yt-dlp/yt-dlp#installation"
)

// installURLs maps known program names to where to get them.
var installURLs = map[string]string{
	"mpv":    MpvInstallURL,
	"vlc":    VlcInstallURL,
	"cvlc":   VlcInstallURL,
	"ffplay": FfmpegInstallURL,
	"ffmpeg": FfmpegInstallURL,
	"yt-dlp": YtDlpInstallURL,
}

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	if e.InstallURL == "" {
		return fmt.Sprintf("%s not found in PATH", e.Name)
	}
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// Check reports whether program is runnable, either as a path or by lookup
// in PATH.
func Check(program string) error {
	if _, err := exec.LookPath(program); err != nil {
		name := filepath.Base(program)
		return &DependencyError{Name: name, InstallURL: installURLs[name]}
	}
	return nil
}

// CheckAll checks each program once and returns an error per missing one.
func CheckAll(programs ...string) []error {
	var errs []error
	seen := make(map[string]bool)
	for _, p := range programs {
		if seen[p] {
			continue
		}
		seen[p] = true
		if err := Check(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
