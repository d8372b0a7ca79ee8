package messages

import "github.com/andyrewlee/glide/internal/content"

// DocumentLoaded carries a freshly loaded or reloaded document.
type DocumentLoaded struct {
	Doc    *content.Document
	Reload bool
}

// DocumentFailed reports a load error.
type DocumentFailed struct {
	Source string
	Err    error
}

// FileChanged is sent by the follow-mode watcher.
type FileChanged struct {
	Path string
}

// ToastLevel identifies the type of toast notification to display.
type ToastLevel string

const (
	ToastInfo    ToastLevel = "info"
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
	ToastWarning ToastLevel = "warning"
)

// Toast requests a toast notification in the UI.
type Toast struct {
	Message string
	Level   ToastLevel
}

// Error represents an application error
type Error struct {
	Err     error
	Context string
	Logged  bool
}

func (e Error) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e Error) Unwrap() error { return e.Err }
