package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  []string
	err   error
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return f.err
}
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Whoami(context.Context) error { f.calls = append(f.calls, "whoami"); return nil }
func (f *fakeExec) Status(context.Context) error { f.calls = append(f.calls, "status"); return nil }
func (f *fakeExec) Messages(_ context.Context, args []string) error {
	f.calls = append(f.calls, "messages")
	f.args = args
	return nil
}

// printed collects what printlnFn was given; notifications may arrive from
// effect goroutines.
type printed struct {
	mu    sync.Mutex
	lines []string
}

func capturePrint(t *testing.T) *printed {
	t.Helper()
	p := &printed{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.lines = append(p.lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return p
}

func (p *printed) text() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return strings.Join(p.lines, "\n")
}

func TestRunREPL_Commands(t *testing.T) {
	out := capturePrint(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"",
		"help",
		"whoami",
		"status",
		"messages clear",
		"logout",
		"foobar",
		"exit",
		"status",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(s)" }, bufio.NewReader(input))

	assert.Equal(t, []string{"login", "whoami", "status", "messages", "logout"}, exec.calls)
	assert.Equal(t, []string{"clear"}, exec.args)

	text := out.text()
	assert.Contains(t, text, "gk (s)> ")
	assert.Contains(t, text, "Available commands: login, status, messages, exit")
	assert.Contains(t, text, "Available commands: whoami, status, messages, logout, login, exit")
	assert.Contains(t, text, "Unknown command: foobar")
	assert.Contains(t, text, "Bye!")
}

func TestRunREPL_ReportsErrorsAndStopsAtEOF(t *testing.T) {
	out := capturePrint(t)

	exec := &fakeExec{err: errors.New("no terminal")}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("login\nquit_not\n")))

	assert.Equal(t, []string{"login"}, exec.calls)
	assert.Contains(t, out.text(), "error: no terminal")
	assert.NotContains(t, out.text(), "Bye!")
}
