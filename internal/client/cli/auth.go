package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/geosick-health/geosick/internal/client/accounts"
	"github.com/geosick-health/geosick/internal/client/auth"
	"github.com/geosick-health/geosick/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login runs the unified login/signup flow interactively. A phone number
// with no matching account does not fail: the flow switches to signup and
// the signup form is presented with the phone kept.
func (a *App) Login(ctx context.Context) error {
	flow := a.shell.Flow()
	flow.Reset()

	phone, err := getSimpleText(a.reader, "Enter phone number", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	account, err := flow.SubmitLogin(ctx, phone, string(password))
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			fmt.Println(flow.Message())
			return nil
		}
		return err
	}

	if account != nil {
		a.authSuccess(ctx, account, string(password))
		return nil
	}

	// no account for this phone: the flow is now in signup mode
	fmt.Println(flow.Message())
	return a.signup(ctx)
}

func (a *App) signup(ctx context.Context) error {
	flow := a.shell.Flow()

	name, err := getSimpleText(a.reader, "Full name", os.Stdout)
	if err != nil {
		return err
	}

	phone := flow.Phone()
	if phone == "" {
		if phone, err = getSimpleText(a.reader, "Phone number", os.Stdout); err != nil {
			return err
		}
	} else {
		fmt.Printf("Phone number: %s\n", phone)
	}

	dob, err := getSimpleText(a.reader, "Date of birth (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Choose a password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	account, err := flow.SubmitSignup(ctx, auth.SignupInput{
		Name:            name,
		Phone:           phone,
		DateOfBirth:     dob,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	})
	if err != nil {
		fmt.Println(flow.Message())
		return nil
	}

	if a.publisher != nil {
		mirror := *account
		mirror.Password = string(password)
		a.publisher.RegisterAccount(ctx, mirror)
	}

	a.authSuccess(ctx, account, string(password))
	return nil
}

func (a *App) authSuccess(ctx context.Context, account *accounts.Account, password string) {
	// obtain the directory token first so the login event can be mirrored
	if a.publisher != nil {
		a.publisher.Login(ctx, account.Phone, password)
	}
	a.shell.HandleAuthSuccess(ctx, account)
	fmt.Printf("Welcome, %s!\n", account.Name)
}

func (a *App) Logout(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Not logged in.")
		return
	}
	a.shell.Logout(ctx)
	fmt.Println("Logged out.")
}
