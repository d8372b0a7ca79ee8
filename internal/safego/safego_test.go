package safego

import (
	"errors"
	"testing"
	"time"
)

type panicReport struct {
	name      string
	recovered any
}

// capturePanics installs a handler for the duration of the test.
func capturePanics(t *testing.T) <-chan panicReport {
	t.Helper()
	reports := make(chan panicReport, 4)
	SetPanicHandler(func(name string, recovered any, stack []byte) {
		if len(stack) == 0 {
			t.Errorf("expected a stack for %s", name)
		}
		reports <- panicReport{name: name, recovered: recovered}
	})
	t.Cleanup(func() { SetPanicHandler(nil) })
	return reports
}

func TestRunReportsPanicByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "content.watcher", want: "content.watcher"},
		{name: "", want: "goroutine"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			reports := capturePanics(t)
			Run(tt.name, func() { panic("reload failed") })

			select {
			case got := <-reports:
				if got.name != tt.want || got.recovered != "reload failed" {
					t.Fatalf("unexpected report %+v", got)
				}
			default:
				t.Fatalf("panic was not reported")
			}
		})
	}
}

func TestRunWithoutPanicSkipsHandler(t *testing.T) {
	reports := capturePanics(t)
	ran := false
	Run("frame", func() { ran = true })
	if !ran {
		t.Fatalf("fn did not run")
	}
	if len(reports) != 0 {
		t.Fatalf("unexpected panic report")
	}
}

func TestPanickingHandlerIsContained(t *testing.T) {
	SetPanicHandler(func(string, any, []byte) { panic("handler") })
	t.Cleanup(func() { SetPanicHandler(nil) })
	Run("frame", func() { panic("frame") })
}

func TestGoRecoversInBackground(t *testing.T) {
	reports := capturePanics(t)
	Go("signal-debug", func() { panic("dump failed") })

	select {
	case got := <-reports:
		if got.name != "signal-debug" {
			t.Fatalf("unexpected report %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for panic report")
	}
}

func TestRunErr(t *testing.T) {
	errRead := errors.New("read failed")
	if err := RunErr("content.command", func() error { return errRead }); !errors.Is(err, errRead) {
		t.Fatalf("expected errRead, got %v", err)
	}
	if err := RunErr("content.command", func() error { return nil }); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	err := RunErr("pager.watcher", func() error { panic("boom") })
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PanicError, got %T", err)
	}
	if pe.Name != "pager.watcher" || pe.Recovered != "boom" {
		t.Fatalf("unexpected panic error %+v", pe)
	}
}

func TestGoErrDeliversResultAndCloses(t *testing.T) {
	done := GoErr("content.command", func() error { panic("pty closed") })
	select {
	case err := <-done:
		var pe *PanicError
		if !errors.As(err, &pe) {
			t.Fatalf("expected *PanicError, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for result")
	}
	if _, ok := <-done; ok {
		t.Fatalf("expected channel to be closed")
	}
}
