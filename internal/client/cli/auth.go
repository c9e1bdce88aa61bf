package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/gksession/internal/client/auth"
	"github.com/dmitrijs2005/gksession/internal/client/messages"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, dispatches a login attempt and waits for
// its effects. The outcome is reported by the notification it produces.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)

	a.store.Dispatch(auth.LoginAttempt{Email: email, Password: string(password)})
	return a.waitIdle(ctx)
}

// Logout forgets the current user and the saved session.
func (a *App) Logout(ctx context.Context) error {
	a.store.Dispatch(auth.Logout{})
	if err := a.waitIdle(ctx); err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}

// Whoami prints the logged in user's record.
func (a *App) Whoami(_ context.Context) error {
	u, ok := a.store.State().Auth.User()
	if !ok {
		printlnFn("Not logged in")
		return nil
	}

	printlnFn("id:   ", u.ID)
	if u.Email != "" {
		printlnFn("email:", u.Email)
	}
	if u.Name != "" {
		printlnFn("name: ", u.Name)
	}
	return nil
}

// Status prints the session slice as the client sees it.
func (a *App) Status(_ context.Context) error {
	s := a.store.State().Auth

	printlnFn("current user:", s.CurrentUser.String())
	printlnFn("logging in:  ", s.LoggingIn)
	printlnFn("request out: ", a.coord.Running(auth.TypeLoginAttempt))
	printlnFn("known users: ", len(s.UsersByID))
	printlnFn("token set:   ", a.api.Token() != "")
	return nil
}

// Messages prints the queued notifications, numbered from 1.
// "messages clear" empties the queue and "messages dismiss <n>" removes one.
func (a *App) Messages(_ context.Context, args []string) error {
	q := a.store.State().Messages.Queue

	if len(args) > 0 {
		switch {
		case args[0] == "clear" && len(args) == 1:
			a.store.Dispatch(messages.Clear{})
			return nil
		case args[0] == "dismiss" && len(args) == 2:
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 || n > len(q) {
				return fmt.Errorf("no message %q", args[1])
			}
			a.store.Dispatch(messages.Dismiss{ID: q[n-1].ID})
			return nil
		default:
			return errors.New("usage: messages [clear | dismiss <n>]")
		}
	}

	if len(q) == 0 {
		printlnFn("No messages")
		return nil
	}
	for i, m := range q {
		printlnFn(fmt.Sprintf("%d.", i+1), m.CreatedAt.Format("15:04:05"), messages.Render(m))
	}
	return nil
}
