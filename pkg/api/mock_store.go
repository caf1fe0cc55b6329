package api

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/adfharrison1/employees-api/pkg/domain"
)

// MockEmployeeStore provides an in-memory implementation of
// domain.EmployeeStore for testing
type MockEmployeeStore struct {
	mu      sync.RWMutex
	rows    map[int64]domain.Record
	order   []int64
	nextID  int64
	err     error
	pingErr error

	listCalls   int
	getCalls    int
	createCalls int
	updateCalls int
	deleteCalls int
}

// NewMockEmployeeStore creates a new mock store
func NewMockEmployeeStore() *MockEmployeeStore {
	return &MockEmployeeStore{
		rows:   make(map[int64]domain.Record),
		nextID: 1,
	}
}

// FailWith makes every data operation return err; nil restores normal behavior
func (m *MockEmployeeStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// FailPingWith makes Ping return err
func (m *MockEmployeeStore) FailPingWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingErr = err
}

// Seed stores a row directly, returning its id
func (m *MockEmployeeStore) Seed(first, last, email string, hired time.Time) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(first, last, email, hired)
}

func (m *MockEmployeeStore) insert(first, last, email string, hired time.Time) int64 {
	id := m.nextID
	m.nextID++
	m.rows[id] = domain.Record{
		"employee_id": id,
		"first_name":  first,
		"last_name":   last,
		"email":       email,
		"hire_date":   hired,
	}
	m.order = append(m.order, id)
	return id
}

var integerID = regexp.MustCompile(`^[+-]?[0-9]{1,18}$`)

// lookup resolves an opaque id the way the database compares it
func (m *MockEmployeeStore) lookup(id string) (int64, bool) {
	id = strings.TrimSpace(id)
	if !integerID.MatchString(id) {
		return 0, false
	}
	key, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, false
	}
	_, ok := m.rows[key]
	return key, ok
}

func copyRecord(rec domain.Record) domain.Record {
	out := make(domain.Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

func (m *MockEmployeeStore) List(ctx context.Context) ([]domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listCalls++
	if m.err != nil {
		return nil, domain.DataAccess("list employees", m.err)
	}

	records := make([]domain.Record, 0, len(m.order))
	for _, id := range m.order {
		records = append(records, copyRecord(m.rows[id]))
	}
	return records, nil
}

func (m *MockEmployeeStore) GetByID(ctx context.Context, id string) (domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.getCalls++
	if m.err != nil {
		return nil, domain.DataAccess("get employee", m.err)
	}

	key, ok := m.lookup(id)
	if !ok {
		return nil, domain.NotFound("get employee")
	}
	return copyRecord(m.rows[key]), nil
}

func (m *MockEmployeeStore) Create(ctx context.Context, in domain.EmployeeInput) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.createCalls++
	if m.err != nil {
		return 0, domain.DataAccess("create employee", m.err)
	}

	parts := in.Parts()
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return m.insert(parts.First, parts.Last, in.Email, today), nil
}

func (m *MockEmployeeStore) UpdateByID(ctx context.Context, id string, in domain.EmployeeInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.updateCalls++
	if m.err != nil {
		return domain.DataAccess("update employee", m.err)
	}

	key, ok := m.lookup(id)
	if !ok {
		return nil
	}
	parts := in.Parts()
	m.rows[key]["first_name"] = parts.First
	m.rows[key]["last_name"] = parts.Last
	m.rows[key]["email"] = in.Email
	return nil
}

func (m *MockEmployeeStore) DeleteByID(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleteCalls++
	if m.err != nil {
		return domain.DataAccess("delete employee", m.err)
	}

	key, ok := m.lookup(id)
	if !ok {
		return nil
	}
	delete(m.rows, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockEmployeeStore) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.pingErr != nil {
		return domain.DataAccess("ping", m.pingErr)
	}
	return nil
}

// Helper methods for testing

func (m *MockEmployeeStore) GetListCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listCalls
}

func (m *MockEmployeeStore) GetGetCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getCalls
}

func (m *MockEmployeeStore) GetCreateCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.createCalls
}

func (m *MockEmployeeStore) GetUpdateCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.updateCalls
}

func (m *MockEmployeeStore) GetDeleteCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.deleteCalls
}

func (m *MockEmployeeStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

// Row returns a copy of the stored row for id, or nil
func (m *MockEmployeeStore) Row(id int64) domain.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.rows[id]
	if !ok {
		return nil
	}
	return copyRecord(rec)
}
