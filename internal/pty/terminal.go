package pty

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"

	"github.com/andyrewlee/glide/internal/logging"
)

// ErrEmptyCommand is returned when no program is given.
var ErrEmptyCommand = errors.New("pty: empty command")

// Terminal wraps a PTY with an associated command
type Terminal struct {
	mu      sync.Mutex
	ptyFile *os.File
	cmd     *exec.Cmd
	closed  bool
	waited  bool
	waitErr error
}

// Start runs argv under a pseudo terminal of the given size. The command is
// killed when ctx is cancelled.
func Start(ctx context.Context, argv []string, dir string, rows, cols uint16) (*Terminal, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, ErrEmptyCommand
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ws := &pty.Winsize{Rows: rows, Cols: cols}
	if rows == 0 || cols == 0 {
		ws = &pty.Winsize{Rows: 24, Cols: 80}
	}
	ptmx, err := pty.StartWithSize(cmd, ws)
	if err != nil {
		return nil, err
	}
	logging.Debug("pty: started %q pid=%d", argv[0], cmd.Process.Pid)

	return &Terminal{
		ptyFile: ptmx,
		cmd:     cmd,
	}, nil
}

// SetSize sets the terminal size
func (t *Terminal) SetSize(rows, cols uint16) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || t.ptyFile == nil {
		return nil
	}

	return pty.Setsize(t.ptyFile, &pty.Winsize{
		Rows: rows,
		Cols: cols,
	})
}

// Read reads output from the terminal. The EIO a Linux pty master reports
// once the child has exited is translated to io.EOF.
// Note: This does NOT hold the mutex during the blocking read to avoid deadlock
func (t *Terminal) Read(p []byte) (int, error) {
	t.mu.Lock()
	closed := t.closed
	ptyFile := t.ptyFile
	t.mu.Unlock()

	if closed || ptyFile == nil {
		return 0, io.EOF
	}

	n, err := ptyFile.Read(p)
	if err != nil && isHangup(err) {
		err = io.EOF
	}
	return n, err
}

func isHangup(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(pathErr.Err, syscall.EIO)
	}
	return errors.Is(err, syscall.EIO) || errors.Is(err, os.ErrClosed)
}

// Wait blocks until the command exits and returns its exit error.
func (t *Terminal) Wait() error {
	t.mu.Lock()
	if t.waited || t.cmd == nil {
		err := t.waitErr
		t.mu.Unlock()
		return err
	}
	cmd := t.cmd
	t.mu.Unlock()

	err := cmd.Wait()

	t.mu.Lock()
	t.waited = true
	t.waitErr = err
	t.mu.Unlock()
	return err
}

// Close closes the terminal
func (t *Terminal) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	if t.ptyFile != nil {
		_ = t.ptyFile.Close()
	}
	waited := t.waited
	cmd := t.cmd
	t.mu.Unlock()

	if !waited && cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
		_ = t.Wait()
	}
	return nil
}

// Running returns whether the terminal is still running
func (t *Terminal) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || t.cmd == nil {
		return false
	}
	return !t.waited
}

// IsClosed reports whether Close has been called.
func (t *Terminal) IsClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
