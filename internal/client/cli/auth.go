package cli

import (
	"context"
	"fmt"
)

// Register prompts for a display name, an email and a password and creates
// the account. It does not sign in.
func (a *App) Register(ctx context.Context) error {
	name, err := askLine(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := askLine(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := askSecret(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	if err := a.auth.Register(ctx, name, email, string(password)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account created. Use 'login' to sign in.")
	return nil
}

// Login prompts for credentials and remembers the session on success.
// There is no offline login: the server has to answer.
func (a *App) Login(ctx context.Context) error {
	email, err := askLine(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := askSecret(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	sess, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		a.log.Info(ctx, "login unsuccessful", "error", err)
		return err
	}

	a.setUser(sess.UserName)
	fmt.Fprintf(a.out, "Signed in as %s.\n", sess.UserName)
	return nil
}

// Logout forgets the local session. Drafts and bookmarks stay on disk.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.setUser("")
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// Status pings the server and reports who is signed in.
func (a *App) Status(ctx context.Context) error {
	user := "guest"
	if sess, ok, err := a.auth.Current(ctx); err != nil {
		return err
	} else if ok {
		user = sess.UserName
	}

	server := "reachable"
	if err := a.auth.Ping(ctx); err != nil {
		server = "unreachable"
	}

	fmt.Fprintf(a.out, "user: %s\nserver: %s\nmode: %s\n", user, server, a.Mode())
	return nil
}
