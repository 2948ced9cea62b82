package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/ytui/deps"
)

func TestCommandBuild(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		url  string
		want string
	}{
		{"placeholder", []string{"mpv", "--fs", "{url}"}, "U", "--fs U"},
		{"embedded", []string{"vlc", "--input={url}"}, "U", "--input=U"},
		{"appended", []string{"mpv", "--no-video"}, "U", "--no-video U"},
		{"bare", []string{"mpv"}, "U", "U"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(ParseCommand(tt.argv).Build(tt.url), " ")
			if got != tt.want {
				t.Errorf("Build = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVideoURL(t *testing.T) {
	if got := VideoURL("abc123", 0); got != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("got %s", got)
	}
	if got := VideoURL("abc123", 61); got != "https://www.youtube.com/watch?v=abc123&t=61s" {
		t.Errorf("got %s", got)
	}
}

func TestSpawnRunningPlayer(t *testing.T) {
	s := NewSpawner([]string{"sh", "-c", "sleep 1", "{url}"}, nil, "")
	s.Grace = 50 * time.Millisecond

	p, err := s.PlayVideo("abc123", 0)
	if err != nil {
		t.Fatalf("PlayVideo: %v", err)
	}
	if p.Pid == 0 || s.Last() != p {
		t.Fatalf("process = %+v", p)
	}
	if got := p.Args[len(p.Args)-1]; got != VideoURL("abc123", 0) {
		t.Errorf("url arg = %q", got)
	}
	if s.Stream.Program != "sh" {
		t.Errorf("stream template did not fall back to video: %+v", s.Stream)
	}

	select {
	case <-p.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("player was never reaped")
	}
}

func TestSpawnImmediateFailure(t *testing.T) {
	s := NewSpawner([]string{"sh", "-c", "exit 3", "{url}"}, nil, "")
	s.Grace = 2 * time.Second

	_, err := s.OpenStream("https://example.com/live")
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("error = %v, want *SpawnError", err)
	}
	if spawnErr.Program != "sh" {
		t.Errorf("program = %q", spawnErr.Program)
	}
	if s.Last() != nil {
		t.Error("failed spawn recorded as last process")
	}
}

func TestSpawnMissingProgram(t *testing.T) {
	s := NewSpawner([]string{"/nonexistent/mpv", "{url}"}, nil, "/tmp/x.sock")
	_, err := s.PlayVideo("abc123", 0)
	var depErr *deps.DependencyError
	if !errors.As(err, &depErr) || depErr.Name != "mpv" {
		t.Fatalf("error = %v, want mpv DependencyError", err)
	}
}

// fakeMpv answers get_property requests on a unix socket, sending an event
// before every reply.
func fakeMpv(t *testing.T, props map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mpv.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		sc := bufio.NewScanner(conn)
		for sc.Scan() {
			var req ipcRequest
			if err := json.Unmarshal(sc.Bytes(), &req); err != nil {
				return
			}
			fmt.Fprintln(conn, `{"event":"playback-restart"}`)
			name, _ := req.Command[1].(string)
			resp := map[string]any{"request_id": req.RequestID, "error": "success"}
			if v, ok := props[name]; ok {
				resp["data"] = v
			} else {
				resp["error"] = "property unavailable"
			}
			out, _ := json.Marshal(resp)
			conn.Write(append(out, '\n'))
		}
	}()
	return path
}

func TestConnStatus(t *testing.T) {
	path := fakeMpv(t, map[string]any{
		"media-title": "Cats",
		"time-pos":    12.5,
		"pause":       true,
	})

	c, err := Dial(path, time.Second)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	st, err := c.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	want := Status{Title: "Cats", Position: 12.5, Duration: 0, Paused: true}
	if st != want {
		t.Errorf("status = %+v, want %+v", st, want)
	}
}

func TestDialWithoutPlayer(t *testing.T) {
	_, err := Dial(filepath.Join(t.TempDir(), "none.sock"), 100*time.Millisecond)
	if !errors.Is(err, ErrSocketNotFound) {
		t.Fatalf("error = %v, want ErrSocketNotFound", err)
	}
}

func TestClosedConn(t *testing.T) {
	path := fakeMpv(t, nil)
	c, err := Dial(path, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	c.Close()
	if _, err := c.GetProperty("pause"); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("error = %v, want ErrNotConnected", err)
	}
}
