package shell

import (
	"context"

	"github.com/geosick-health/geosick/internal/client/accounts"
	"github.com/geosick-health/geosick/internal/client/activity"
	"github.com/geosick-health/geosick/internal/client/auth"
	"github.com/geosick-health/geosick/internal/client/session"
	"github.com/geosick-health/geosick/internal/client/storage"
	"github.com/geosick-health/geosick/internal/common"
	"github.com/geosick-health/geosick/internal/logging"
)

// Shell owns the in-memory session state and the personal-history cache for
// the lifetime of the process. Feature pages receive its AppendActivity
// callback; the shell forwards payloads without interpreting them.
type Shell struct {
	logger   logging.Logger
	sessions *session.Manager
	flow     *auth.Flow
	log      *activity.Log

	user    *accounts.Account
	page    Page
	history []activity.Entry
}

func New(kv storage.KV, sessions *session.Manager, flow *auth.Flow, publisher activity.Publisher, logger logging.Logger) *Shell {
	s := &Shell{
		logger:   logger.With("module", "shell"),
		sessions: sessions,
		flow:     flow,
		page:     PageHome,
	}
	s.log = activity.NewLog(kv, s.currentPhone, publisher, logger)
	return s
}

func (s *Shell) currentPhone() (string, bool) {
	if s.user == nil {
		return "", false
	}
	return s.user.Phone, true
}

// Init restores the session and loads the personal history cache. With a
// valid session the initial page is the authenticated landing page,
// otherwise the public one.
func (s *Shell) Init(ctx context.Context) {
	if account := s.sessions.Restore(ctx); account != nil {
		s.user = account
		s.page = PageWelcome
	} else {
		s.user = nil
		s.page = PageHome
	}
	s.history = s.log.LoadPersonalHistory(ctx)
}

// User returns the active account, or nil when logged out.
func (s *Shell) User() *accounts.Account { return s.user }

// Page returns the current page.
func (s *Shell) Page() Page { return s.page }

// Flow exposes the auth flow to the frontend.
func (s *Shell) Flow() *auth.Flow { return s.flow }

// History returns the in-memory personal-history cache, newest-first.
func (s *Shell) History() []activity.Entry { return s.history }

// GoTo is pure state assignment. Any page value is accepted, reachable from
// the current UI or not; the router is permissive.
func (s *Shell) GoTo(page Page) {
	s.page = page
}

// HandleAuthSuccess installs the authenticated account, persists the session
// pointer, navigates to the landing page and records the login event.
func (s *Shell) HandleAuthSuccess(ctx context.Context, account *accounts.Account) {
	s.user = account
	s.page = PageWelcome

	if err := s.sessions.Start(ctx, account); err != nil {
		s.logger.Error(ctx, "failed to persist session", "error", err.Error())
	}

	s.log.AppendLogin(ctx, account.Phone, account.Name)
}

// Logout clears the session and returns to the public landing page. The
// personal-history cache is deliberately left as is until the next Init,
// matching the product's observed behavior.
func (s *Shell) Logout(ctx context.Context) {
	s.user = nil
	s.page = PageHome

	if err := s.sessions.End(ctx); err != nil {
		s.logger.Error(ctx, "failed to clear session", "error", err.Error())
	}
}

// AppendActivity is the callback handed to feature pages that produce
// analysis results. Without an active session it is a no-op.
func (s *Shell) AppendActivity(ctx context.Context, item activity.NewEntry) {
	entry := s.log.AppendForUser(ctx, item)
	if entry != nil {
		s.history = append([]activity.Entry{*entry}, s.history...)
	}
}

// CanViewGlobalActivity reports whether the active account's role unlocks
// the all-users activity view.
func (s *Shell) CanViewGlobalActivity() bool {
	return s.user != nil && s.user.IsAdmin()
}

// GlobalHistory returns the global projection, or ErrorUnauthorized when the
// active account lacks the admin role.
func (s *Shell) GlobalHistory(ctx context.Context) ([]activity.Entry, error) {
	if !s.CanViewGlobalActivity() {
		return nil, common.ErrorUnauthorized
	}
	return s.log.LoadGlobalHistory(ctx), nil
}
