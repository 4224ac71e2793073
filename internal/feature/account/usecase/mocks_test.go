package usecase

import (
	"context"
	"fmt"
	"sync"

	"studyhub_backend/internal/feature/account/domain/entity"
)

// mockAccountRepository is a func-field mock for AccountRepository.
type mockAccountRepository struct {
	createFn           func(ctx context.Context, account *entity.Account) error
	findByEmailFn      func(ctx context.Context, email string) (*entity.Account, error)
	findByNicknameFn   func(ctx context.Context, nickname string) (*entity.Account, error)
	findByIDFn         func(ctx context.Context, id uint) (*entity.Account, error)
	saveFn             func(ctx context.Context, account *entity.Account) error
	countFn            func(ctx context.Context) (int64, error)
	findTagFn          func(ctx context.Context, title string) (*entity.Tag, error)
	findOrCreateTagFn  func(ctx context.Context, title string) (*entity.Tag, error)
	findZoneFn         func(ctx context.Context, city, province string) (*entity.Zone, error)
	findOrCreateZoneFn func(ctx context.Context, city, province string) (*entity.Zone, error)
	addTagFn           func(ctx context.Context, accountID uint, tag *entity.Tag) error
	removeTagFn        func(ctx context.Context, accountID uint, tag *entity.Tag) error
	tagsFn             func(ctx context.Context, accountID uint) ([]entity.Tag, error)
	addZoneFn          func(ctx context.Context, accountID uint, zone *entity.Zone) error
	removeZoneFn       func(ctx context.Context, accountID uint, zone *entity.Zone) error
	zonesFn            func(ctx context.Context, accountID uint) ([]entity.Zone, error)
}

func (m *mockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	if m.createFn != nil {
		return m.createFn(ctx, account)
	}
	return nil
}

func (m *mockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockAccountRepository) FindByNickname(ctx context.Context, nickname string) (*entity.Account, error) {
	if m.findByNicknameFn != nil {
		return m.findByNicknameFn(ctx, nickname)
	}
	return nil, nil
}

func (m *mockAccountRepository) FindByID(ctx context.Context, id uint) (*entity.Account, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAccountRepository) Save(ctx context.Context, account *entity.Account) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, account)
	}
	return nil
}

func (m *mockAccountRepository) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockAccountRepository) FindTag(ctx context.Context, title string) (*entity.Tag, error) {
	if m.findTagFn != nil {
		return m.findTagFn(ctx, title)
	}
	return nil, nil
}

func (m *mockAccountRepository) FindOrCreateTag(ctx context.Context, title string) (*entity.Tag, error) {
	if m.findOrCreateTagFn != nil {
		return m.findOrCreateTagFn(ctx, title)
	}
	return &entity.Tag{Title: title}, nil
}

func (m *mockAccountRepository) FindZone(ctx context.Context, city, province string) (*entity.Zone, error) {
	if m.findZoneFn != nil {
		return m.findZoneFn(ctx, city, province)
	}
	return nil, nil
}

func (m *mockAccountRepository) FindOrCreateZone(ctx context.Context, city, province string) (*entity.Zone, error) {
	if m.findOrCreateZoneFn != nil {
		return m.findOrCreateZoneFn(ctx, city, province)
	}
	return &entity.Zone{City: city, Province: province}, nil
}

func (m *mockAccountRepository) AddTag(ctx context.Context, accountID uint, tag *entity.Tag) error {
	if m.addTagFn != nil {
		return m.addTagFn(ctx, accountID, tag)
	}
	return nil
}

func (m *mockAccountRepository) RemoveTag(ctx context.Context, accountID uint, tag *entity.Tag) error {
	if m.removeTagFn != nil {
		return m.removeTagFn(ctx, accountID, tag)
	}
	return nil
}

func (m *mockAccountRepository) Tags(ctx context.Context, accountID uint) ([]entity.Tag, error) {
	if m.tagsFn != nil {
		return m.tagsFn(ctx, accountID)
	}
	return nil, nil
}

func (m *mockAccountRepository) AddZone(ctx context.Context, accountID uint, zone *entity.Zone) error {
	if m.addZoneFn != nil {
		return m.addZoneFn(ctx, accountID, zone)
	}
	return nil
}

func (m *mockAccountRepository) RemoveZone(ctx context.Context, accountID uint, zone *entity.Zone) error {
	if m.removeZoneFn != nil {
		return m.removeZoneFn(ctx, accountID, zone)
	}
	return nil
}

func (m *mockAccountRepository) Zones(ctx context.Context, accountID uint) ([]entity.Zone, error) {
	if m.zonesFn != nil {
		return m.zonesFn(ctx, accountID)
	}
	return nil, nil
}

// mockSessionRepository is a func-field mock for SessionRepository.
type mockSessionRepository struct {
	createFn                func(ctx context.Context, session *entity.Session) error
	findByIDFn              func(ctx context.Context, id string) (*entity.Session, error)
	findByAccountIDFn       func(ctx context.Context, accountID uint) ([]*entity.Session, error)
	revokeFn                func(ctx context.Context, id string) error
	revokeAllByAccountIDFn  func(ctx context.Context, accountID uint) error
	deleteExpiredFn         func(ctx context.Context) (int64, error)
	countByAccountIDFn      func(ctx context.Context, accountID uint) (int64, error)
	deleteOldestByAccountFn func(ctx context.Context, accountID uint) error
}

func (m *mockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, ErrSessionNotFound
}

func (m *mockSessionRepository) FindByAccountID(ctx context.Context, accountID uint) ([]*entity.Session, error) {
	if m.findByAccountIDFn != nil {
		return m.findByAccountIDFn(ctx, accountID)
	}
	return nil, nil
}

func (m *mockSessionRepository) Revoke(ctx context.Context, id string) error {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, id)
	}
	return nil
}

func (m *mockSessionRepository) RevokeAllByAccountID(ctx context.Context, accountID uint) error {
	if m.revokeAllByAccountIDFn != nil {
		return m.revokeAllByAccountIDFn(ctx, accountID)
	}
	return nil
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return 0, nil
}

func (m *mockSessionRepository) CountByAccountID(ctx context.Context, accountID uint) (int64, error) {
	if m.countByAccountIDFn != nil {
		return m.countByAccountIDFn(ctx, accountID)
	}
	return 0, nil
}

func (m *mockSessionRepository) DeleteOldestByAccountID(ctx context.Context, accountID uint) error {
	if m.deleteOldestByAccountFn != nil {
		return m.deleteOldestByAccountFn(ctx, accountID)
	}
	return nil
}

// fakeHasher prefixes instead of hashing so tests can assert on stored values.
// It records whether Matches ran, which the login timing tests rely on.
type fakeHasher struct {
	matchesCalled bool
}

func (h *fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h *fakeHasher) Matches(encoded, password string) bool {
	h.matchesCalled = true
	return encoded == "hashed:"+password
}

// fakeTokenSource hands out deterministic sequential tokens.
type fakeTokenSource struct {
	mu  sync.Mutex
	seq int
}

func (s *fakeTokenSource) Generate() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return fmt.Sprintf("token-%d", s.seq), nil
}

// fakeAccessTokens issues a readable pseudo token.
type fakeAccessTokens struct{}

func (fakeAccessTokens) GenerateToken(accountID uint, nickname string) (string, error) {
	return fmt.Sprintf("access-%d-%s", accountID, nickname), nil
}

// sentMail records one dispatched email.
type sentMail struct {
	To      string
	Subject string
	Body    string
}

// recordingNotifier captures dispatched emails instead of sending them.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (n *recordingNotifier) Send(ctx context.Context, to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (n *recordingNotifier) sentCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func (n *recordingNotifier) lastSent() sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sent[len(n.sent)-1]
}

// fakeRenderer joins the link variables into an inspectable body.
type fakeRenderer struct{}

func (fakeRenderer) RenderLink(vars LinkVars) (string, error) {
	return fmt.Sprintf("%s|%s%s|%s", vars.Nickname, vars.Host, vars.Link, vars.Message), nil
}

// testDeps bundles the collaborators wired into a usecase under test.
type testDeps struct {
	accounts *mockAccountRepository
	sessions *mockSessionRepository
	hasher   *fakeHasher
	tokens   *fakeTokenSource
	notifier *recordingNotifier
}

// newTestUsecase wires an AccountUsecase with fresh fakes.
func newTestUsecase() (*AccountUsecase, *testDeps) {
	deps := &testDeps{
		accounts: &mockAccountRepository{},
		sessions: &mockSessionRepository{},
		hasher:   &fakeHasher{},
		tokens:   &fakeTokenSource{},
		notifier: &recordingNotifier{},
	}
	uc := NewAccountUsecase(
		deps.accounts,
		deps.sessions,
		deps.hasher,
		deps.tokens,
		fakeAccessTokens{},
		deps.notifier,
		fakeRenderer{},
		"http://localhost:8080",
	)
	return uc, deps
}
