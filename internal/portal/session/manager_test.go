package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/refundport/internal/common"
	"github.com/dmitrijs2005/refundport/internal/cryptox"
	"github.com/dmitrijs2005/refundport/internal/logging"
	"github.com/dmitrijs2005/refundport/internal/portal/challenge"
	"github.com/dmitrijs2005/refundport/internal/portal/models"
	"github.com/dmitrijs2005/refundport/internal/portal/notify"
	"github.com/dmitrijs2005/refundport/internal/portal/repositories/accounts"
)

type delivery struct {
	destination string
	subject     string
	body        string
}

// captureGateway records deliveries instead of sending them.
type captureGateway struct {
	mu         sync.Mutex
	deliveries []delivery
	err        error
}

func (g *captureGateway) Deliver(_ context.Context, destination, subject, body string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return g.err
	}
	g.deliveries = append(g.deliveries, delivery{destination, subject, body})
	return nil
}

func (g *captureGateway) last(t *testing.T) delivery {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.deliveries) == 0 {
		t.Fatal("no deliveries recorded")
	}
	return g.deliveries[len(g.deliveries)-1]
}

// codePattern matches the code inside its own element; a bare \d{6} would
// also match hex colors in the template styling.
var codePattern = regexp.MustCompile(`>\s*(\d{6})\s*<`)

func (g *captureGateway) lastCode(t *testing.T) string {
	t.Helper()
	m := codePattern.FindStringSubmatch(g.last(t).body)
	if m == nil {
		t.Fatal("no code found in delivered body")
	}
	return m[1]
}

func TestLastCode_ExtractsIssuedCodeFromTemplate(t *testing.T) {
	_, body := notify.VerificationEmail("Login", "482913")

	gw := &captureGateway{}
	gw.deliveries = append(gw.deliveries, delivery{"a@x.com", "Login Code", body})

	// the template styling contains six-digit hex colors; extraction must
	// return the code, not a color
	if got := gw.lastCode(t); got != "482913" {
		t.Fatalf("extracted %q, want %q", got, "482913")
	}
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestManager(t *testing.T) (*Manager, *captureGateway, *accounts.MemoryRepository) {
	t.Helper()
	gw := &captureGateway{}
	repo := accounts.NewMemoryRepository()
	// low iteration count keeps key derivation fast in tests
	vault := cryptox.NewVault(1000, 16, 12)
	m := NewManager(vault, repo, challenge.NewMemoryIssuer(0, 0), gw, testLogger(), Config{
		TokenSecret:  []byte("test-secret"),
		SessionTTL:   time.Hour,
		CompanyEmail: "refunds@example.com",
	})
	return m, gw, repo
}

func testProfile() *models.Profile {
	return &models.Profile{FullName: "Alice Smith", Phone: "555-0100", SSN: "123-45-6789"}
}

func register(t *testing.T, m *Manager, gw *captureGateway, email, password string) {
	t.Helper()
	ctx := context.Background()
	if err := m.Register(ctx, email, []byte(password), testProfile()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := m.VerifyChallenge(ctx, gw.lastCode(t)); err != nil {
		t.Fatalf("VerifyChallenge: %v", err)
	}
}

func TestRegisterVerifyLoginFlow(t *testing.T) {
	m, gw, _ := newTestManager(t)
	ctx := context.Background()

	if err := m.Register(ctx, " Alice@Example.COM ", []byte("s3curePass"), testProfile()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if m.State() != StatePendingChallenge || m.PendingPurpose() != PurposeRegistration {
		t.Fatalf("want pending registration, got %v/%v", m.State(), m.PendingPurpose())
	}
	if d := gw.last(t); d.destination != "alice@example.com" || d.subject != "Registration Code" {
		t.Fatalf("unexpected delivery %+v", d)
	}

	if err := m.VerifyChallenge(ctx, gw.lastCode(t)); err != nil {
		t.Fatalf("VerifyChallenge: %v", err)
	}
	if m.State() != StateAnonymous {
		t.Fatalf("verified registration must return to anonymous, got %v", m.State())
	}

	if err := m.Login(ctx, "alice@example.com", []byte("s3curePass")); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if m.State() != StatePendingChallenge || m.PendingPurpose() != PurposeLogin {
		t.Fatalf("want pending login, got %v/%v", m.State(), m.PendingPurpose())
	}

	if err := m.VerifyChallenge(ctx, gw.lastCode(t)); err != nil {
		t.Fatalf("VerifyChallenge: %v", err)
	}
	if m.State() != StateAuthenticated {
		t.Fatalf("want authenticated, got %v", m.State())
	}

	sess := m.Current()
	if sess == nil {
		t.Fatal("authenticated session missing")
	}
	if sess.Subject != "alice@example.com" || sess.ID == "" {
		t.Errorf("unexpected session %+v", sess)
	}
	subject, err := SubjectFromToken(sess.Token, []byte("test-secret"))
	if err != nil || subject != "alice@example.com" {
		t.Errorf("token subject = %q, err = %v", subject, err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	m, gw, _ := newTestManager(t)
	register(t, m, gw, "bob@example.com", "rightPass1")

	err := m.Login(context.Background(), "bob@example.com", []byte("wrongPass1"))
	if !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
	if m.State() != StateAnonymous {
		t.Errorf("failed login must leave state anonymous, got %v", m.State())
	}
}

func TestLogin_UnknownAccount(t *testing.T) {
	m, _, _ := newTestManager(t)
	err := m.Login(context.Background(), "nobody@example.com", []byte("whatever1"))
	if !errors.Is(err, common.ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	m, gw, repo := newTestManager(t)
	register(t, m, gw, "carol@example.com", "firstPass1")

	before, err := repo.Get(context.Background(), "carol@example.com")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	err = m.Register(context.Background(), "Carol@Example.com", []byte("secondPass1"), testProfile())
	if !errors.Is(err, common.ErrAccountExists) {
		t.Fatalf("want ErrAccountExists, got %v", err)
	}

	after, err := repo.Get(context.Background(), "carol@example.com")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(before.Cipher) != string(after.Cipher) {
		t.Error("duplicate registration must not touch the stored account")
	}
}

func TestRegister_WeakPassword(t *testing.T) {
	m, _, repo := newTestManager(t)

	err := m.Register(context.Background(), "dave@example.com", []byte("short"), testProfile())
	if !errors.Is(err, common.ErrWeakCredential) {
		t.Fatalf("want ErrWeakCredential, got %v", err)
	}
	if exists, _ := repo.Exists(context.Background(), "dave@example.com"); exists {
		t.Error("rejected registration must not persist an account")
	}
}

func TestRegister_DeliveryFailureKeepsAccount(t *testing.T) {
	m, gw, repo := newTestManager(t)
	gw.err = errors.New("relay unreachable")

	err := m.Register(context.Background(), "erin@example.com", []byte("goodPass1"), testProfile())
	if !errors.Is(err, common.ErrDeliveryFailed) {
		t.Fatalf("want ErrDeliveryFailed, got %v", err)
	}
	if m.State() != StateAnonymous {
		t.Errorf("delivery failure must leave state anonymous, got %v", m.State())
	}
	if exists, _ := repo.Exists(context.Background(), "erin@example.com"); !exists {
		t.Error("account must survive a delivery failure")
	}
}

func TestVerifyChallenge_InvalidState(t *testing.T) {
	m, _, _ := newTestManager(t)
	if err := m.VerifyChallenge(context.Background(), "123456"); !errors.Is(err, common.ErrInvalidState) {
		t.Fatalf("want ErrInvalidState, got %v", err)
	}
}

func TestVerifyChallenge_WrongCodeThenRetry(t *testing.T) {
	m, gw, _ := newTestManager(t)
	ctx := context.Background()

	if err := m.Register(ctx, "frank@example.com", []byte("goodPass1"), testProfile()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := m.VerifyChallenge(ctx, "000000"); !errors.Is(err, common.ErrInvalidCode) {
		t.Fatalf("want ErrInvalidCode, got %v", err)
	}
	if m.State() != StatePendingChallenge {
		t.Fatalf("failed verification must stay pending, got %v", m.State())
	}

	// whitespace around a correct code is tolerated
	if err := m.VerifyChallenge(ctx, "  "+gw.lastCode(t)+"\n"); err != nil {
		t.Fatalf("retry with correct code: %v", err)
	}
	if m.State() != StateAnonymous {
		t.Errorf("want anonymous after verified registration, got %v", m.State())
	}
}

func TestPasswordResetFlow(t *testing.T) {
	m, gw, _ := newTestManager(t)
	ctx := context.Background()
	register(t, m, gw, "grace@example.com", "oldPass1x")

	if err := m.RequestPasswordReset(ctx, "grace@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if m.PendingPurpose() != PurposePasswordReset {
		t.Fatalf("want pending reset, got %v", m.PendingPurpose())
	}

	if err := m.VerifyChallenge(ctx, gw.lastCode(t)); err != nil {
		t.Fatalf("VerifyChallenge: %v", err)
	}
	if m.State() != StateResetAuthorized {
		t.Fatalf("want reset-authorized, got %v", m.State())
	}

	if err := m.CompletePasswordReset(ctx, []byte("newPass2y"), testProfile()); err != nil {
		t.Fatalf("CompletePasswordReset: %v", err)
	}
	if m.State() != StateAnonymous {
		t.Fatalf("want anonymous after reset, got %v", m.State())
	}

	if err := m.Login(ctx, "grace@example.com", []byte("oldPass1x")); !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("old password must no longer work, got %v", err)
	}
	if err := m.Login(ctx, "grace@example.com", []byte("newPass2y")); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestRequestPasswordReset_UnknownAccount(t *testing.T) {
	m, _, _ := newTestManager(t)
	err := m.RequestPasswordReset(context.Background(), "ghost@example.com")
	if !errors.Is(err, common.ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
}

func TestCompletePasswordReset_WeakPassword(t *testing.T) {
	m, gw, _ := newTestManager(t)
	ctx := context.Background()
	register(t, m, gw, "heidi@example.com", "oldPass1x")

	if err := m.RequestPasswordReset(ctx, "heidi@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if err := m.VerifyChallenge(ctx, gw.lastCode(t)); err != nil {
		t.Fatalf("VerifyChallenge: %v", err)
	}

	if err := m.CompletePasswordReset(ctx, []byte("short"), testProfile()); !errors.Is(err, common.ErrWeakCredential) {
		t.Fatalf("want ErrWeakCredential, got %v", err)
	}
	if m.State() != StateResetAuthorized {
		t.Errorf("rejected reset must stay reset-authorized, got %v", m.State())
	}

	if err := m.Login(ctx, "heidi@example.com", []byte("oldPass1x")); !errors.Is(err, common.ErrInvalidState) {
		t.Errorf("login is illegal while a reset is in flight, got %v", err)
	}
}

func TestSubmitApplication(t *testing.T) {
	m, gw, _ := newTestManager(t)
	ctx := context.Background()

	app := &models.Application{FullName: "Alice Smith", AccountNumber: "987654321"}
	if err := m.SubmitApplication(ctx, app); !errors.Is(err, common.ErrInvalidState) {
		t.Fatalf("anonymous submission must fail with ErrInvalidState, got %v", err)
	}

	register(t, m, gw, "alice@example.com", "s3curePass")
	if err := m.Login(ctx, "alice@example.com", []byte("s3curePass")); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := m.VerifyChallenge(ctx, gw.lastCode(t)); err != nil {
		t.Fatalf("VerifyChallenge: %v", err)
	}

	if err := m.SubmitApplication(ctx, app); err != nil {
		t.Fatalf("SubmitApplication: %v", err)
	}
	d := gw.last(t)
	if d.destination != "refunds@example.com" {
		t.Errorf("application must go to the company inbox, got %q", d.destination)
	}
	if d.subject != "NEW TAX APPLICATION" {
		t.Errorf("unexpected subject %q", d.subject)
	}
}

func TestSessionExpiryDemotesToAnonymous(t *testing.T) {
	m, gw, _ := newTestManager(t)
	ctx := context.Background()
	register(t, m, gw, "ivan@example.com", "s3curePass")

	if err := m.Login(ctx, "ivan@example.com", []byte("s3curePass")); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := m.VerifyChallenge(ctx, gw.lastCode(t)); err != nil {
		t.Fatalf("VerifyChallenge: %v", err)
	}

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if got := m.State(); got != StateAnonymous {
		t.Fatalf("expired session must demote to anonymous, got %v", got)
	}
	if m.Current() != nil {
		t.Error("expired session must not be returned")
	}
	err := m.SubmitApplication(ctx, &models.Application{FullName: "Ivan"})
	if !errors.Is(err, common.ErrInvalidState) {
		t.Errorf("submission on expired session, want ErrInvalidState, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	m, gw, _ := newTestManager(t)
	ctx := context.Background()

	if err := m.Logout(ctx); !errors.Is(err, common.ErrInvalidState) {
		t.Fatalf("anonymous logout, want ErrInvalidState, got %v", err)
	}

	register(t, m, gw, "judy@example.com", "s3curePass")
	if err := m.Login(ctx, "judy@example.com", []byte("s3curePass")); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := m.VerifyChallenge(ctx, gw.lastCode(t)); err != nil {
		t.Fatalf("VerifyChallenge: %v", err)
	}

	if err := m.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if m.State() != StateAnonymous || m.Current() != nil || m.Subject() != "" {
		t.Error("logout must fully clear the session")
	}
}
