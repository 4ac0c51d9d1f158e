// Package session implements the authentication state machine that
// orchestrates registration, login, challenge verification, and password
// reset across the credential vault, the account store, the challenge
// issuer, and the notification gateway.
//
// One Manager owns one logical session. States:
//
//	Anonymous --register--> PendingChallenge(Registration) --verify--> Anonymous
//	Anonymous --login-----> PendingChallenge(Login)        --verify--> Authenticated
//	Anonymous --reset-----> PendingChallenge(PasswordReset)--verify--> ResetAuthorized
//	ResetAuthorized --completePasswordReset--> Anonymous
//	Authenticated --logout--> Anonymous
//
// Every failure is a typed, recoverable outcome; the caller decides whether
// to retry. Nothing here ever logs a password, a derived key, or a code.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/refundport/internal/common"
	"github.com/dmitrijs2005/refundport/internal/cryptox"
	"github.com/dmitrijs2005/refundport/internal/logging"
	"github.com/dmitrijs2005/refundport/internal/portal/challenge"
	"github.com/dmitrijs2005/refundport/internal/portal/models"
	"github.com/dmitrijs2005/refundport/internal/portal/notify"
	"github.com/dmitrijs2005/refundport/internal/portal/repositories/accounts"
)

// State identifies the manager's position in the authentication flow.
type State int

const (
	StateAnonymous State = iota
	StatePendingChallenge
	StateResetAuthorized
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StatePendingChallenge:
		return "pending-challenge"
	case StateResetAuthorized:
		return "reset-authorized"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Purpose names the flow a pending challenge belongs to. The values double
// as the caption in the verification email.
type Purpose string

const (
	PurposeRegistration  Purpose = "Registration"
	PurposeLogin         Purpose = "Login"
	PurposePasswordReset Purpose = "Password Reset"
)

// Config carries the manager's tunables.
type Config struct {
	PasswordPolicy PasswordPolicy
	SessionTTL     time.Duration
	TokenSecret    []byte
	CompanyEmail   string
}

// DefaultSessionTTL bounds an authenticated session when no explicit TTL is
// configured.
const DefaultSessionTTL = 30 * time.Minute

// Manager is the authentication state machine. All operations are
// serialized by an internal mutex; a Manager instance handles exactly one
// in-flight authentication attempt at a time.
type Manager struct {
	mu      sync.Mutex
	state   State
	subject string
	purpose Purpose
	session *models.Session

	vault    *cryptox.Vault
	accounts accounts.Repository
	issuer   challenge.Issuer
	gateway  notify.Gateway
	logger   logging.Logger
	cfg      Config

	// now is a test seam.
	now func() time.Time
}

// NewManager wires the state machine to its collaborators.
func NewManager(
	vault *cryptox.Vault,
	repo accounts.Repository,
	issuer challenge.Issuer,
	gateway notify.Gateway,
	logger logging.Logger,
	cfg Config,
) *Manager {
	if cfg.PasswordPolicy == (PasswordPolicy{}) {
		cfg.PasswordPolicy = DefaultPasswordPolicy
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	return &Manager{
		state:    StateAnonymous,
		vault:    vault,
		accounts: repo,
		issuer:   issuer,
		gateway:  gateway,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Register creates an account and starts the registration challenge.
// Valid only from Anonymous.
//
// The account is persisted before delivery is attempted, so a delivery
// failure (ErrDeliveryFailed) leaves the account in place; the caller can
// request a fresh code via Login without re-registering.
func (m *Manager) Register(ctx context.Context, email string, password []byte, profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAnonymous {
		return common.ErrInvalidState
	}

	subject := common.NormalizeEmail(email)

	exists, err := m.accounts.Exists(ctx, subject)
	if err != nil {
		return err
	}
	if exists {
		return common.ErrAccountExists
	}

	if err := m.cfg.PasswordPolicy.Validate(password); err != nil {
		return err
	}

	bundle, err := m.vault.Encrypt(password, profile)
	if err != nil {
		return fmt.Errorf("encrypt profile: %w", err)
	}

	if err := m.accounts.Put(ctx, &models.Account{
		Email:  subject,
		Salt:   bundle.Salt,
		IV:     bundle.IV,
		Cipher: bundle.Cipher,
	}); err != nil {
		return err
	}

	if err := m.startChallenge(ctx, subject, PurposeRegistration); err != nil {
		return err
	}

	m.logger.Info(ctx, "registration pending verification", "subject", subject)
	return nil
}

// Login verifies the password by decrypting the stored bundle, the only
// password-validation path, and starts the login challenge. Valid only
// from Anonymous.
func (m *Manager) Login(ctx context.Context, email string, password []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAnonymous {
		return common.ErrInvalidState
	}

	subject := common.NormalizeEmail(email)

	account, err := m.accounts.Get(ctx, subject)
	if err != nil {
		return err
	}

	var profile models.Profile
	bundle := &cryptox.Bundle{Salt: account.Salt, IV: account.IV, Cipher: account.Cipher}
	if err := m.vault.Decrypt(password, bundle, &profile); err != nil {
		m.logger.Warn(ctx, "login rejected", "subject", subject)
		return err
	}

	if err := m.startChallenge(ctx, subject, PurposeLogin); err != nil {
		return err
	}

	m.logger.Info(ctx, "login pending verification", "subject", subject)
	return nil
}

// RequestPasswordReset starts the reset challenge for an existing account.
// Valid only from Anonymous.
func (m *Manager) RequestPasswordReset(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAnonymous {
		return common.ErrInvalidState
	}

	subject := common.NormalizeEmail(email)

	exists, err := m.accounts.Exists(ctx, subject)
	if err != nil {
		return err
	}
	if !exists {
		return common.ErrAccountNotFound
	}

	if err := m.startChallenge(ctx, subject, PurposePasswordReset); err != nil {
		return err
	}

	m.logger.Info(ctx, "password reset pending verification", "subject", subject)
	return nil
}

// VerifyChallenge redeems the supplied code for the pending challenge.
// Valid only from PendingChallenge.
//
// On success the next state depends on the challenge purpose: a verified
// registration returns to Anonymous (the user logs in separately, matching
// the portal's verify-then-log-in flow), a verified login becomes an
// authenticated session, and a verified reset authorizes exactly one
// CompletePasswordReset call. On failure the challenge stays pending and
// the caller may retry.
func (m *Manager) VerifyChallenge(ctx context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StatePendingChallenge {
		return common.ErrInvalidState
	}

	ok, err := m.issuer.Redeem(ctx, m.subject, code)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrInvalidCode
	}

	switch m.purpose {
	case PurposeLogin:
		session, err := m.newSession(m.subject)
		if err != nil {
			return err
		}
		m.session = session
		m.setState(ctx, StateAuthenticated)
	case PurposePasswordReset:
		m.setState(ctx, StateResetAuthorized)
	default: // PurposeRegistration
		m.subject = ""
		m.purpose = ""
		m.setState(ctx, StateAnonymous)
	}
	return nil
}

// CompletePasswordReset re-encrypts the account under the new password with
// a fresh salt and IV, fully replacing the stored record. Valid only from
// ResetAuthorized; afterwards the manager returns to Anonymous.
//
// Profile fields not supplied by the caller are lost; the overwrite is
// deliberate and total, so callers should collect the profile again before
// finishing the reset.
func (m *Manager) CompletePasswordReset(ctx context.Context, newPassword []byte, profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateResetAuthorized {
		return common.ErrInvalidState
	}

	if err := m.cfg.PasswordPolicy.Validate(newPassword); err != nil {
		return err
	}

	bundle, err := m.vault.Encrypt(newPassword, profile)
	if err != nil {
		return fmt.Errorf("encrypt profile: %w", err)
	}

	if err := m.accounts.Put(ctx, &models.Account{
		Email:  m.subject,
		Salt:   bundle.Salt,
		IV:     bundle.IV,
		Cipher: bundle.Cipher,
	}); err != nil {
		return err
	}

	m.logger.Info(ctx, "password reset completed", "subject", m.subject)
	m.subject = ""
	m.purpose = ""
	m.setState(ctx, StateAnonymous)
	return nil
}

// SubmitApplication delivers a completed refund application to the company
// inbox. Valid only from Authenticated with an unexpired session.
func (m *Manager) SubmitApplication(ctx context.Context, app *models.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expireSessionLocked()
	if m.state != StateAuthenticated {
		return common.ErrInvalidState
	}

	subject, body := notify.ApplicationEmail(app)
	if err := m.gateway.Deliver(ctx, m.cfg.CompanyEmail, subject, body); err != nil {
		return deliveryErr(err)
	}

	m.logger.Info(ctx, "application submitted", "subject", m.subject)
	return nil
}

// Logout ends the authenticated session. Valid only from Authenticated.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAuthenticated {
		return common.ErrInvalidState
	}

	m.session = nil
	m.subject = ""
	m.purpose = ""
	m.setState(ctx, StateAnonymous)
	return nil
}

// State reports the current state. An expired authenticated session is
// demoted to Anonymous on observation.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expireSessionLocked()
	return m.state
}

// Subject returns the email the current flow is bound to ("" in Anonymous).
func (m *Manager) Subject() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expireSessionLocked()
	return m.subject
}

// PendingPurpose returns the purpose of the pending challenge, or "" when no
// challenge is pending.
func (m *Manager) PendingPurpose() Purpose {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StatePendingChallenge {
		return ""
	}
	return m.purpose
}

// Current returns a copy of the authenticated session, or nil.
func (m *Manager) Current() *models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expireSessionLocked()
	if m.session == nil {
		return nil
	}
	cp := *m.session
	return &cp
}

// --- helpers below ---

// startChallenge issues a fresh code and requests delivery. State moves to
// PendingChallenge only when delivery succeeded; an already-persisted
// account is intentionally left untouched on failure.
func (m *Manager) startChallenge(ctx context.Context, subject string, purpose Purpose) error {
	code, err := m.issuer.Issue(ctx, subject)
	if err != nil {
		return fmt.Errorf("issue challenge: %w", err)
	}

	mailSubject, body := notify.VerificationEmail(string(purpose), code)
	if err := m.gateway.Deliver(ctx, subject, mailSubject, body); err != nil {
		m.logger.Warn(ctx, "verification code delivery failed", "subject", subject, "purpose", purpose)
		return deliveryErr(err)
	}

	m.subject = subject
	m.purpose = purpose
	m.setState(ctx, StatePendingChallenge)
	return nil
}

func (m *Manager) newSession(subject string) (*models.Session, error) {
	token, err := NewSessionToken(subject, m.cfg.TokenSecret, m.cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("mint session token: %w", err)
	}
	now := m.now()
	return &models.Session{
		ID:        uuid.NewString(),
		Subject:   subject,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.cfg.SessionTTL),
	}, nil
}

// expireSessionLocked demotes an expired authenticated session to Anonymous.
// Callers must hold m.mu.
func (m *Manager) expireSessionLocked() {
	if m.state == StateAuthenticated && m.session != nil && m.session.Expired(m.now()) {
		m.session = nil
		m.subject = ""
		m.purpose = ""
		m.state = StateAnonymous
	}
}

func (m *Manager) setState(ctx context.Context, s State) {
	if m.state != s {
		m.logger.Debug(ctx, "state transition", "from", m.state.String(), "to", s.String())
		m.state = s
	}
}

func deliveryErr(err error) error {
	if errors.Is(err, common.ErrDeliveryFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrDeliveryFailed, err)
}
