// Package download saves videos to disk with yt-dlp.
package download

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/user/ytui/deps"
)

// Program is the yt-dlp executable. Tests point it at a stand-in script.
var Program = "yt-dlp"

// unsafeChars matches characters not safe for directory names: / \ : * ? < > | and spaces
var unsafeChars = regexp.MustCompile(`[/\\:*?<>|\s]`)

// progressLine matches yt-dlp's "[download]  42.3% of ..." lines.
var progressLine = regexp.MustCompile(`^\[download\]\s+(\d+(?:\.\d+)?)%`)

// sanitize replaces unsafe filename characters with underscores.
func sanitize(s string) string {
	return unsafeChars.ReplaceAllString(strings.TrimSpace(s), "_")
}

// ChannelDir returns the directory a channel's downloads go into:
// {dir}/{channel}. An empty channel uses dir itself.
func ChannelDir(dir, channel string) string {
	safe := sanitize(channel)
	if safe == "" {
		return dir
	}
	return filepath.Join(dir, safe)
}

// OutputTemplate is the yt-dlp -o template for dir.
// Format: {dir}/{title} [{id}].{ext}
func OutputTemplate(dir string) string {
	return filepath.Join(dir, "%(title)s [%(id)s].%(ext)s")
}

// ParseProgress extracts the percentage from a yt-dlp progress line.
func ParseProgress(line string) (float64, bool) {
	m := progressLine.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return 0, false
	}
	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return pct, true
}

// Error is returned when yt-dlp exits unsuccessfully. Output holds the
// last lines it printed.
type Error struct {
	Err    error
	Output string
}

func (e *Error) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("yt-dlp failed: %v", e.Err)
	}
	return fmt.Sprintf("yt-dlp failed: %v\n%s", e.Err, e.Output)
}

func (e *Error) Unwrap() error { return e.Err }

// Run downloads url into dir and returns the path of the saved file.
// progress, if non-nil, is called with each percentage yt-dlp reports.
func Run(ctx context.Context, url, dir string, progress func(pct float64)) (string, error) {
	if err := deps.Check(Program); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	args := []string{
		"--newline",
		"--progress",
		"--no-playlist",
		"-o", OutputTemplate(dir),
		"--print", "after_move:filepath",
		url,
	}

	pr, pw := io.Pipe()
	cmd := exec.CommandContext(ctx, Program, args...)
	cmd.Stdout = pw
	cmd.Stderr = pw
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start yt-dlp: %w", err)
	}

	waitErr := make(chan error, 1)
	go func() {
		err := cmd.Wait()
		pw.Close()
		waitErr <- err
	}()

	var (
		path string
		tail []string
	)
	sc := bufio.NewScanner(pr)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if pct, ok := ParseProgress(line); ok {
			if progress != nil {
				progress(pct)
			}
			continue
		}
		tail = append(tail, line)
		if len(tail) > 10 {
			tail = tail[1:]
		}
		if filepath.IsAbs(line) {
			path = line
		}
	}
	// Drain anything left after a scanner error so Wait can return.
	io.Copy(io.Discard, pr)

	if err := <-waitErr; err != nil {
		return "", &Error{Err: err, Output: strings.Join(tail, "\n")}
	}
	if path == "" {
		return "", &Error{Err: fmt.Errorf("no output file reported"), Output: strings.Join(tail, "\n")}
	}
	return path, nil
}
