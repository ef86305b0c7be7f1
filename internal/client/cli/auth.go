package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"taskapp/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Register prompts for account details and attempts to create a new account.
// Registration never logs the user in; on success the user is pointed back to
// the login flow. The password bytes are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, username, email, string(password)); err != nil {
		log.Printf("Registration failed: %s", err.Error())
		return err
	}

	fmt.Println("Registration successful, you can now login.")
	return nil
}

// Login prompts for credentials and tries to authenticate. On success the
// stage flips to StageApp, the list view becomes active and the task list is
// fetched and shown. On failure all routing state stays as it was. The
// password bytes are wiped before returning.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, username, string(password)); err != nil {
		log.Printf("Login failed: %s", err.Error())
		return err
	}

	a.stage = StageApp
	a.activeView = ViewList
	a.userName = a.authService.Username()
	log.Printf("Login successful")

	return a.List(ctx)
}
