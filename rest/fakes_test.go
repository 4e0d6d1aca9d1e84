package rest

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/hisaab/hisaab-backend/ledger"
	"github.com/hisaab/hisaab-backend/model"
)

// In-memory repositories backing the handler tests. They share one store so
// a ledger apply is observable through the query endpoints, like in MySQL.

type memoryStore struct {
	mu           sync.Mutex
	users        map[string]*model.User
	others       map[string]map[string]*model.Other
	transactions []model.Transaction
	nextID       int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:  map[string]*model.User{},
		others: map[string]map[string]*model.Other{},
		nextID: 1,
	}
}

func (s *memoryStore) id() int {
	id := s.nextID
	s.nextID++
	return id
}

type memoryUsers struct{ store *memoryStore }

func (m *memoryUsers) Create(user *model.User) (*model.User, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	copied := *user
	copied.ID = m.store.id()
	m.store.users[copied.Username] = &copied
	return &copied, nil
}

func (m *memoryUsers) FindByUsername(username string) (*model.User, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	user, ok := m.store.users[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (m *memoryUsers) FindByEmail(email string) (*model.User, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, user := range m.store.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memoryUsers) UpdatePassword(username, passwordHash string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	user, ok := m.store.users[username]
	if !ok {
		return sql.ErrNoRows
	}
	user.Password = passwordHash
	return nil
}

func (m *memoryUsers) UpdateName(username, name string) (*model.User, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	user, ok := m.store.users[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	user.Name = name
	copied := *user
	return &copied, nil
}

type memoryOthers struct{ store *memoryStore }

func (m *memoryOthers) FindOrCreate(owner, name string) (*model.Other, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return m.findOrCreateLocked(owner, name), nil
}

func (m *memoryOthers) findOrCreateLocked(owner, name string) *model.Other {
	byName, ok := m.store.others[owner]
	if !ok {
		byName = map[string]*model.Other{}
		m.store.others[owner] = byName
	}
	other, ok := byName[name]
	if !ok {
		other = &model.Other{ID: m.store.id(), Owner: owner, Name: name}
		byName[name] = other
	}
	return other
}

func (m *memoryOthers) AdjustBalance(owner, name string, delta float64) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	byName, ok := m.store.others[owner]
	if !ok {
		return sql.ErrNoRows
	}
	other, ok := byName[name]
	if !ok {
		return sql.ErrNoRows
	}
	other.Balance += delta
	return nil
}

func (m *memoryOthers) FindByOwner(owner string) ([]model.Other, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return m.listLocked(owner, false), nil
}

func (m *memoryOthers) FindNonZero(owner string) ([]model.Other, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return m.listLocked(owner, true), nil
}

func (m *memoryOthers) listLocked(owner string, nonZeroOnly bool) []model.Other {
	others := []model.Other{}
	for _, other := range m.store.others[owner] {
		if nonZeroOnly && other.Balance == 0 {
			continue
		}
		others = append(others, *other)
	}
	sort.Slice(others, func(i, j int) bool { return others[i].Name < others[j].Name })
	return others
}

type memoryTransactions struct{ store *memoryStore }

func (m *memoryTransactions) FindByOwner(owner string) ([]model.Transaction, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	transactions := []model.Transaction{}
	for i := len(m.store.transactions) - 1; i >= 0; i-- {
		if m.store.transactions[i].Owner == owner {
			transactions = append(transactions, m.store.transactions[i])
		}
	}
	return transactions, nil
}

type memoryLedger struct {
	store  *memoryStore
	others *memoryOthers
	fail   error
}

func (m *memoryLedger) Apply(ctx context.Context, plan *ledger.Plan) error {
	if m.fail != nil {
		return m.fail
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, d := range plan.Deltas {
		other := m.others.findOrCreateLocked(plan.Entry.Owner, d.Name)
		other.Balance += d.Amount
	}
	m.store.transactions = append(m.store.transactions, model.Transaction{
		ID:          m.store.id(),
		Owner:       plan.Entry.Owner,
		Lend:        plan.Entry.Lend,
		Amount:      plan.Entry.Amount,
		To:          plan.Entry.To,
		Description: plan.Entry.Description,
		CreatedAt:   time.Now(),
	})
	return nil
}

type memoryMailer struct {
	mu   sync.Mutex
	sent []string
	fail error
}

func (m *memoryMailer) SendOTP(to, otp string) error {
	if m.fail != nil {
		return m.fail
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to+":"+otp)
	return nil
}
