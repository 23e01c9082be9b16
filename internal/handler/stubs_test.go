package handler

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"ragwall/internal/app/account"
	"ragwall/internal/app/rag"
	"ragwall/internal/configs"
)

// stubStore is an in-memory account.Store honoring the email uniqueness
// contract.
type stubStore struct {
	mu   sync.Mutex
	byID map[string]*account.Account
	fail error
}

func newStubStore() *stubStore {
	return &stubStore{byID: make(map[string]*account.Account)}
}

func (s *stubStore) Create(ctx context.Context, acct *account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail != nil {
		return s.fail
	}

	for _, existing := range s.byID {
		if strings.EqualFold(existing.Email, acct.Email) {
			return account.ErrDuplicateEmail
		}
	}

	if acct.ID == "" {
		acct.ID = uuid.New().String()
	}
	stored := *acct
	s.byID[acct.ID] = &stored
	return nil
}

func (s *stubStore) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail != nil {
		return nil, s.fail
	}

	for _, existing := range s.byID {
		if strings.EqualFold(existing.Email, email) {
			found := *existing
			return &found, nil
		}
	}
	return nil, account.ErrNotFound
}

func (s *stubStore) GetByID(ctx context.Context, id string) (*account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail != nil {
		return nil, s.fail
	}

	if existing, ok := s.byID[id]; ok {
		found := *existing
		return &found, nil
	}
	return nil, account.ErrNotFound
}

func (s *stubStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// stubBackend is a counting rag.Backend whose behavior is set per test.
type stubBackend struct {
	mu sync.Mutex

	askCalls       int
	askResult      *rag.Exchange
	askErr         error
	queriesCalls   int
	queriesResult  []string
	queriesErr     error
	responseCalls  int
	responseResult string
	responseErr    error
}

func (b *stubBackend) Ask(ctx context.Context, prompt, userID string) (*rag.Exchange, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.askCalls++
	if b.askErr != nil {
		return nil, b.askErr
	}
	return b.askResult, nil
}

func (b *stubBackend) UserQueries(ctx context.Context, userID string) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queriesCalls++
	if b.queriesErr != nil {
		return nil, b.queriesErr
	}
	return b.queriesResult, nil
}

func (b *stubBackend) StoredResponse(ctx context.Context, query, userID string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.responseCalls++
	if b.responseErr != nil {
		return "", b.responseErr
	}
	return b.responseResult, nil
}

func (b *stubBackend) askCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.askCalls
}

func testDeps(store account.Store, backend rag.Backend) *AppDeps {
	return &AppDeps{
		Config: &configs.AppConfig{
			Environment: "development",
			Port:        3000,
			JWTSecret:   "test_secret",
		},
		Accounts: store,
		RAG:      backend,
	}
}
