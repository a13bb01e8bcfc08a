package otpstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"agrilink/domain"
)

// Record is a pending one-time code for a single phone number.
type Record struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	Attempts  int       `json:"attempts"`
}

// MemoryStore keeps pending codes in process memory. Expired records are
// dropped lazily on access.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
	}
}

func (s *MemoryStore) Get(ctx context.Context, phone string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[phone]
	if !ok {
		return Record{}, fmt.Errorf("otp for %s: %w", phone, domain.ErrOtpNotFound)
	}
	if time.Now().After(record.ExpiresAt) {
		delete(s.records, phone)
		return Record{}, fmt.Errorf("otp for %s: %w", phone, domain.ErrOtpExpired)
	}

	return record, nil
}

func (s *MemoryStore) Put(ctx context.Context, phone string, record Record) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[phone] = record

	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, phone string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, phone)

	return nil
}
