package common

import (
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/glide/internal/logging"
	"github.com/andyrewlee/glide/internal/messages"
)

// ReportError logs err under where and returns commands that surface it as
// an Error message and an error toast. toast overrides the toast text.
func ReportError(where string, err error, toast string) tea.Cmd {
	if err == nil {
		return nil
	}
	logging.Error("%s: %v", where, err)
	if toast == "" {
		toast = err.Error()
	}
	errMsg := messages.Error{Err: err, Context: where, Logged: true}
	toastMsg := messages.Toast{Message: toast, Level: messages.ToastError}
	return SafeBatch(
		func() tea.Msg { return errMsg },
		func() tea.Msg { return toastMsg },
	)
}
