// Package player starts external media players and talks to mpv over its
// JSON IPC socket.
package player

import (
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/user/ytui/content"
	"github.com/user/ytui/deps"
)

// URLPlaceholder is replaced with the media URL in command arguments.
const URLPlaceholder = "{url}"

// DefaultGrace is how long Spawn waits for a player that exits immediately.
const DefaultGrace = 300 * time.Millisecond

// Command is a program and its argument template.
type Command struct {
	Program string
	Args    []string
}

// ParseCommand splits a config array such as ["mpv", "{url}"].
func ParseCommand(argv []string) Command {
	if len(argv) == 0 {
		return Command{}
	}
	return Command{Program: argv[0], Args: append([]string(nil), argv[1:]...)}
}

// Build substitutes url into the arguments. If no argument mentions the
// placeholder, url is appended.
func (c Command) Build(url string) []string {
	args := make([]string, 0, len(c.Args)+1)
	found := false
	for _, a := range c.Args {
		if strings.Contains(a, URLPlaceholder) {
			found = true
			a = strings.ReplaceAll(a, URLPlaceholder, url)
		}
		args = append(args, a)
	}
	if !found {
		args = append(args, url)
	}
	return args
}

// IsMpv reports whether the command runs mpv.
func (c Command) IsMpv() bool {
	return filepath.Base(c.Program) == "mpv"
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Program}, c.Args...), " ")
}

// SpawnError is returned when a player could not be started or exited with
// an error straight away.
type SpawnError struct {
	Program string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("start %s: %v", e.Program, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Process is a running player.
type Process struct {
	Pid  int
	Args []string

	done chan struct{}
	err  error
}

// Done is closed once the process has exited.
func (p *Process) Done() <-chan struct{} { return p.done }

// Err is the exit error. It is only meaningful after Done is closed.
func (p *Process) Err() error { return p.err }

// Spawner starts players from the configured templates. Players are not
// managed after they start; several may run at once.
type Spawner struct {
	Video  Command
	Stream Command
	// SocketPath is given to mpv as --input-ipc-server. Empty disables it.
	SocketPath string
	Grace      time.Duration

	mu   sync.Mutex
	last *Process
}

// NewSpawner creates a spawner from config arrays. An empty stream template
// falls back to the video one.
func NewSpawner(video, stream []string, socketPath string) *Spawner {
	s := &Spawner{
		Video:      ParseCommand(video),
		Stream:     ParseCommand(stream),
		SocketPath: socketPath,
		Grace:      DefaultGrace,
	}
	if s.Stream.Program == "" {
		s.Stream = s.Video
	}
	return s
}

// VideoURL is the URL handed to players for a video, optionally starting
// start seconds in.
func VideoURL(videoID string, start int) string {
	u := content.WatchURL(videoID)
	if start > 0 {
		u += "&t=" + strconv.Itoa(start) + "s"
	}
	return u
}

// PlayVideo starts the video player for videoID.
func (s *Spawner) PlayVideo(videoID string, start int) (*Process, error) {
	var extra []string
	if start > 0 && s.Video.IsMpv() {
		extra = append(extra, "--start="+strconv.Itoa(start))
	}
	return s.spawn(s.Video, VideoURL(videoID, start), extra)
}

// OpenStream starts the stream player on a live URL.
func (s *Spawner) OpenStream(url string) (*Process, error) {
	return s.spawn(s.Stream, url, nil)
}

// Last returns the most recently started process, or nil.
func (s *Spawner) Last() *Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Spawner) spawn(c Command, url string, extra []string) (*Process, error) {
	if c.Program == "" {
		return nil, &SpawnError{Program: "player", Err: fmt.Errorf("no player configured")}
	}
	if err := deps.Check(c.Program); err != nil {
		return nil, err
	}

	var args []string
	if c.IsMpv() && s.SocketPath != "" {
		args = append(args, "--input-ipc-server="+s.SocketPath)
	}
	args = append(args, extra...)
	args = append(args, c.Build(url)...)

	cmd := exec.Command(c.Program, args...)
	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Program: c.Program, Err: err}
	}

	p := &Process{Pid: cmd.Process.Pid, Args: args, done: make(chan struct{})}
	go func() {
		p.err = cmd.Wait()
		if p.err != nil {
			log.Printf("player %s (pid %d) exited: %v", c.Program, p.Pid, p.err)
		}
		close(p.done)
	}()

	grace := s.Grace
	if grace <= 0 {
		grace = DefaultGrace
	}
	select {
	case <-p.done:
		if p.err != nil {
			return nil, &SpawnError{Program: c.Program, Err: p.err}
		}
	case <-time.After(grace):
	}

	s.mu.Lock()
	s.last = p
	s.mu.Unlock()
	return p, nil
}
