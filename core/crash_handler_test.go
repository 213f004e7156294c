package core

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
)

type fakeScreen struct{ finis int }

func (f *fakeScreen) Fini() { f.finis++ }

// withCrashHooks swaps process hooks for the duration of a test
func withCrashHooks(t *testing.T) (*bytes.Buffer, *[]int, <-chan struct{}) {
	t.Helper()
	var out bytes.Buffer
	var codes []int
	exited := make(chan struct{}, 1)
	crashOut = &out
	exit = func(code int) {
		codes = append(codes, code)
		exited <- struct{}{}
	}
	crashOnce = sync.Once{}
	t.Cleanup(func() {
		crashOut = os.Stderr
		exit = os.Exit
		crashOnce = sync.Once{}
		RegisterScreen(nil)
	})
	return &out, &codes, exited
}

func TestHandleCrash_FinalizesScreenAndExits(t *testing.T) {
	out, codes, _ := withCrashHooks(t)
	screen := &fakeScreen{}
	RegisterScreen(screen)

	HandleCrash("boom")

	if screen.finis != 1 {
		t.Errorf("Fini called %d times, want 1", screen.finis)
	}
	if len(*codes) != 1 || (*codes)[0] != 1 {
		t.Errorf("exit codes %v, want [1]", *codes)
	}
	if !strings.Contains(out.String(), "CRASH DETECTED: boom") {
		t.Errorf("missing crash header in %q", out.String())
	}
	if !strings.Contains(out.String(), "Stack Trace:") {
		t.Error("missing stack trace")
	}

	HandleCrash("second")
	if screen.finis != 1 || len(*codes) != 1 {
		t.Error("only the first crash must report")
	}
}

func TestHandleCrash_NilIsNoop(t *testing.T) {
	out, codes, _ := withCrashHooks(t)
	HandleCrash(nil)
	if out.Len() != 0 || len(*codes) != 0 {
		t.Error("nil recover value must not report")
	}
}

func TestGo_RecoversPanics(t *testing.T) {
	out, codes, exited := withCrashHooks(t)
	Go(func() {
		panic("in goroutine")
	})
	<-exited

	if len(*codes) != 1 || (*codes)[0] != 1 {
		t.Fatalf("exit codes %v, want [1]", *codes)
	}
	if !strings.Contains(out.String(), "in goroutine") {
		t.Errorf("missing panic value in %q", out.String())
	}
}
