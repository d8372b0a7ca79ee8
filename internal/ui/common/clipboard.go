package common

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"
)

// clipboardFallback returns a copy command to try when the clipboard
// library fails, or nil.
func clipboardFallback() []string {
	switch {
	case runtime.GOOS == "darwin":
		return []string{"pbcopy"}
	case os.Getenv("WAYLAND_DISPLAY") != "":
		return []string{"wl-copy"}
	}
	return nil
}

// CopyToClipboard copies a pager line without its escape sequences or
// trailing padding.
func CopyToClipboard(text string) error {
	text = strings.TrimRight(ansi.Strip(text), " ")
	err := clipboard.WriteAll(text)
	if err == nil {
		return nil
	}
	argv := clipboardFallback()
	if argv == nil {
		return err
	}
	if _, lookErr := exec.LookPath(argv[0]); lookErr != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
