package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/pty"
	"github.com/andyrewlee/glide/internal/safego"
)

// ErrEmptyCommand is returned by FromCommand when argv is empty.
var ErrEmptyCommand = pty.ErrEmptyCommand

// maxCommandOutput caps how much command output is kept.
const maxCommandOutput = 16 << 20

// Load reads and parses the file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	doc := Parse(filepath.Base(path), string(data))
	doc.Path = path
	logging.Info("content: loaded %s (%d lines, %d anchors)", path, doc.Height(), len(doc.Anchors))
	return doc, nil
}

// Read parses everything from r.
func Read(name string, r io.Reader) (*Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxCommandOutput))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return Parse(name, string(data)), nil
}

// FromCommand runs argv under a pseudo terminal sized cols wide and pages
// its output. A non-zero exit still yields the captured output.
func FromCommand(ctx context.Context, argv []string, cols int) (*Document, error) {
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}
	if cols <= 0 {
		cols = 80
	}
	term, err := pty.Start(ctx, argv, "", 24, uint16(cols))
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", argv[0], err)
	}
	defer term.Close()

	var buf bytes.Buffer
	done := safego.GoErr("content.command", func() error {
		_, err := io.Copy(&buf, io.LimitReader(term, maxCommandOutput))
		return err
	})

	select {
	case err = <-done:
	case <-ctx.Done():
		_ = term.Close()
		<-done
		return nil, ctx.Err()
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read %s: %w", argv[0], err)
	}
	if werr := term.Wait(); werr != nil {
		logging.Warn("content: %s exited: %v", argv[0], werr)
	}

	doc := Parse(strings.Join(argv, " "), buf.String())
	logging.Info("content: captured %q (%d lines)", doc.Name, doc.Height())
	return doc, nil
}
