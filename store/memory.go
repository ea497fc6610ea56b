package store

import (
	"context"
	"sync"
)

// Memory is an in-memory Store. Records are kept for the lifetime of the
// process only.
type Memory struct {
	mu            sync.Mutex
	orders        []OrderRecord
	verifications []VerificationRecord
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) RecordOrder(_ context.Context, rec OrderRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, rec)
	return nil
}

func (m *Memory) RecordVerification(_ context.Context, rec VerificationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifications = append(m.verifications, rec)
	return nil
}

// Orders returns a copy of the recorded orders.
func (m *Memory) Orders() []OrderRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]OrderRecord, len(m.orders))
	copy(out, m.orders)
	return out
}

// Verifications returns a copy of the recorded verifications.
func (m *Memory) Verifications() []VerificationRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]VerificationRecord, len(m.verifications))
	copy(out, m.verifications)
	return out
}
