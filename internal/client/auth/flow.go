// Package auth implements the unified login/signup flow. Login and signup
// share one form: a login attempt for an unknown phone number is not a
// failure, it switches the flow to signup mode with the phone pre-filled.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/geosick-health/geosick/internal/client/accounts"
	"github.com/geosick-health/geosick/internal/common"
	"github.com/geosick-health/geosick/internal/logging"
)

// Mode is the form the flow currently presents.
type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignup Mode = "signup"
)

// Status is the flow's sub-state within a mode.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusError      Status = "error"
	StatusInfo       Status = "info"
)

// InfoNoAccount is shown when a login attempt switches the flow to signup.
const InfoNoAccount = "We couldn't find an account with this phone number. Please sign up to continue."

// SignupInput is the raw signup form.
type SignupInput struct {
	Name            string
	Phone           string
	DateOfBirth     string
	Password        string
	ConfirmPassword string
}

// Flow drives the login/signup state machine over the credential store.
//
// Submissions pause for MinDelay before resolving so the UI transition is not
// jarring; the pause honors context cancellation and is purely cosmetic.
type Flow struct {
	store    *accounts.Store
	logger   logging.Logger
	minDelay time.Duration

	mode    Mode
	status  Status
	message string
	phone   string
}

func NewFlow(store *accounts.Store, minDelay time.Duration, logger logging.Logger) *Flow {
	return &Flow{
		store:    store,
		logger:   logger.With("module", "auth"),
		minDelay: minDelay,
		mode:     ModeLogin,
		status:   StatusIdle,
	}
}

func (f *Flow) Mode() Mode      { return f.mode }
func (f *Flow) Status() Status  { return f.status }
func (f *Flow) Message() string { return f.message }

// Phone is the pre-filled phone field, set when login hands off to signup.
func (f *Flow) Phone() string { return f.phone }

// Reset returns the flow to a fresh login form.
func (f *Flow) Reset() {
	f.mode = ModeLogin
	f.status = StatusIdle
	f.message = ""
	f.phone = ""
}

// SubmitLogin attempts a login with the given phone and password.
//
// Outcomes:
//   - account found, password matches: returns the account with the password
//     field stripped. The caller starts the session and logs the login event.
//   - account found, password mismatch: common.ErrorInvalidCredentials; the
//     flow stays in login mode with an error message.
//   - no account: nil, nil. The flow switches to signup mode, keeps the
//     phone, and shows an informational (not error) message.
func (f *Flow) SubmitLogin(ctx context.Context, phone, password string) (*accounts.Account, error) {
	f.status = StatusSubmitting
	f.message = ""

	if err := f.pause(ctx); err != nil {
		f.status = StatusIdle
		return nil, err
	}

	phone = strings.TrimSpace(phone)

	found, err := f.store.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// No account: hand off to signup with the phone kept.
			f.mode = ModeSignup
			f.phone = phone
			f.status = StatusInfo
			f.message = InfoNoAccount
			return nil, nil
		}
		f.status = StatusError
		f.message = common.ErrorInternal.Error()
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(found.Password), []byte(password)) != 1 {
		f.status = StatusError
		f.message = common.ErrorInvalidCredentials.Error()
		return nil, common.ErrorInvalidCredentials
	}

	f.status = StatusIdle
	sanitized := found.Sanitized()
	return &sanitized, nil
}

// SubmitSignup validates the form and creates the account. On success the
// new account is returned sanitized and authenticated directly, no separate
// login step.
func (f *Flow) SubmitSignup(ctx context.Context, in SignupInput) (*accounts.Account, error) {
	f.message = ""

	// Form validation happens before the cosmetic pause.
	if in.Password != in.ConfirmPassword {
		f.status = StatusError
		f.message = common.ErrorPasswordMismatch.Error()
		return nil, common.ErrorPasswordMismatch
	}

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Phone) == "" ||
		strings.TrimSpace(in.DateOfBirth) == "" || in.Password == "" {
		f.status = StatusError
		f.message = common.ErrorMissingFields.Error()
		return nil, common.ErrorMissingFields
	}

	f.status = StatusSubmitting

	if err := f.pause(ctx); err != nil {
		f.status = StatusIdle
		return nil, err
	}

	created, err := f.store.Create(ctx, accounts.Account{
		Phone:       strings.TrimSpace(in.Phone),
		Name:        strings.TrimSpace(in.Name),
		DateOfBirth: in.DateOfBirth,
		Password:    in.Password,
	})
	if err != nil {
		if errors.Is(err, common.ErrorDuplicatePhone) {
			f.status = StatusError
			f.message = common.ErrorDuplicatePhone.Error()
			return nil, err
		}
		f.logger.Error(ctx, "signup failed", "error", err.Error())
		f.status = StatusError
		f.message = common.ErrorInternal.Error()
		return nil, err
	}

	f.status = StatusIdle
	sanitized := created.Sanitized()
	return &sanitized, nil
}

func (f *Flow) pause(ctx context.Context) error {
	if f.minDelay <= 0 {
		return nil
	}
	t := time.NewTimer(f.minDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
