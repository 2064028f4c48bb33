package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/client/api"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email, display name and password and
// attempts to create a new account. A successful registration signs the
// user in immediately.
//
// The password byte slice is securely wiped before returning. Any I/O or
// service error is logged and returned unchanged.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	displayName, err := getSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.api.Register(ctx, email, string(password), displayName)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			log.Printf("Registration failed: %s", apiErr.Message)
		} else {
			log.Printf("Registration failed: %s", err.Error())
		}
		return err
	}

	a.userEmail = user.Email
	fmt.Println("Success! You are now signed in.")
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
// On success the token pair is stored in the API client and the prompt
// starts showing the user's email.
//
// The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			log.Printf("Login failed: invalid email or password")
		} else {
			log.Printf("Login failed: %s", err.Error())
		}
		return err
	}

	a.userEmail = user.Email
	fmt.Println("Success!")
	return nil
}

// Logout notifies the server and drops the stored token pair. The local
// session ends even when the server call fails.
func (a *App) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx)
	a.userEmail = ""
	if err != nil {
		log.Printf("Logout: %s", err.Error())
		return err
	}
	fmt.Println("Signed out.")
	return nil
}
