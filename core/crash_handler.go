// Package core holds process-level plumbing shared by the field goroutines and main
package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

// Finalizer restores the terminal, satisfied by tcell.Screen
type Finalizer interface {
	Fini()
}

var (
	crashMu     sync.Mutex
	crashScreen Finalizer
	crashOut    io.Writer = os.Stderr
	exit                  = os.Exit
	crashOnce   sync.Once
)

// RegisterScreen sets the screen finalized before a crash report is printed
func RegisterScreen(s Finalizer) {
	crashMu.Lock()
	crashScreen = s
	crashMu.Unlock()
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
// Only the first crash reports; concurrent panics wait for the exit
func HandleCrash(r any) {
	if r == nil {
		return
	}
	crashOnce.Do(func() {
		crashMu.Lock()
		s := crashScreen
		crashMu.Unlock()
		if s != nil {
			s.Fini()
		}

		fmt.Fprintf(crashOut, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
		fmt.Fprintf(crashOut, "Stack Trace:\n%s\n", debug.Stack())

		exit(1)
	})
}

// Recover is deferred at the top of main and of every goroutine
func Recover() {
	if r := recover(); r != nil {
		HandleCrash(r)
	}
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer Recover()
		fn()
	}()
}
