package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tasktracker/internal/common"
)

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getMultiline = GetMultiline
var getPassword = GetPassword

// Register prompts for name, email and password and creates an account. The
// server logs the new user in, so the session is active right away.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	u, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	a.userName = u.Name
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
	return nil
}

// Login prompts for credentials and opens a session. The user's name is
// fetched afterwards for the prompt; a failure there does not undo the login.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.client.Login(ctx, email, password); err != nil {
		return err
	}

	a.userName = email
	if u, err := a.client.CurrentUser(ctx); err == nil && u != nil {
		a.userName = u.Name
	}

	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout drops the session token.
func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	u, err := a.client.CurrentUser(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s <%s>\nid: %s\nmember since %s\n", u.Name, u.Email, u.ID, u.CreatedAt.Format(dateLayout))
	return nil
}
