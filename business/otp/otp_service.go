package otp

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"agrilink/domain"
	"agrilink/internal/repository/otpstore"
	"agrilink/pkg/logger"
	"agrilink/pkg/metrics"
)

// Store contract interface
type Store interface {
	Get(ctx context.Context, phone string) (otpstore.Record, error)
	Put(ctx context.Context, phone string, record otpstore.Record) error
	Delete(ctx context.Context, phone string) error
}

// SMSRepository contract interface
type SMSRepository interface {
	Send(ctx context.Context, phone, message string) error
}

const (
	codeTTL     = 5 * time.Minute
	maxAttempts = 3

	smsTemplate = "Your OTP is: %s. Valid for 5 minutes."

	lockStripes = 64
)

type otpService struct {
	store Store
	sms   SMSRepository

	// fixed pool of striped locks, so memory stays bounded no matter how
	// many distinct phone numbers pass through
	locks [lockStripes]sync.Mutex
}

func NewOtpService(store Store, sms SMSRepository) *otpService {
	return &otpService{
		store: store,
		sms:   sms,
	}
}

// phoneLock serializes Request/Verify per phone number so attempt counting
// and single-use consumption stay exact under concurrent calls.
func (s *otpService) phoneLock(phone string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(phone))
	return &s.locks[h.Sum32()%lockStripes]
}

// Request issues a fresh code for the phone number, replacing any pending
// one. The record is stored only after the gateway accepts the message.
func (s *otpService) Request(ctx context.Context, phone string) error {
	lock := s.phoneLock(phone)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.Delete(ctx, phone); err != nil {
		logger.Error("Failed to purge pending otp", err)
		return err
	}

	code, err := generateCode()
	if err != nil {
		logger.Error("Failed to generate otp code", err)
		return err
	}

	if err := s.sms.Send(ctx, phone, fmt.Sprintf(smsTemplate, code)); err != nil {
		logger.Error("Failed to send otp sms", err)
		metrics.OTPFailedTotal.WithLabelValues("sms_delivery").Inc()
		return err
	}

	record := otpstore.Record{
		Code:      code,
		ExpiresAt: time.Now().Add(codeTTL),
	}
	if err := s.store.Put(ctx, phone, record); err != nil {
		logger.Error("Failed to store otp record", err)
		return err
	}

	metrics.OTPIssuedTotal.Inc()
	return nil
}

// Verify checks a submitted code against the pending record. A correct code
// consumes the record. The attempt ceiling is checked before the attempt
// counts: a record that already burned all attempts is purged even if this
// submission carries the right code.
func (s *otpService) Verify(ctx context.Context, phone, code string) error {
	lock := s.phoneLock(phone)
	lock.Lock()
	defer lock.Unlock()

	record, err := s.store.Get(ctx, phone)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOtpNotFound):
			metrics.OTPFailedTotal.WithLabelValues("not_found").Inc()
		case errors.Is(err, domain.ErrOtpExpired):
			metrics.OTPFailedTotal.WithLabelValues("expired").Inc()
		}
		return err
	}

	if record.Attempts >= maxAttempts {
		if err := s.store.Delete(ctx, phone); err != nil {
			logger.Error("Failed to purge exhausted otp", err)
			return err
		}
		metrics.OTPFailedTotal.WithLabelValues("exhausted").Inc()
		return fmt.Errorf("otp for %s: %w", phone, domain.ErrOtpExhausted)
	}

	record.Attempts++

	if record.Code != code {
		if err := s.store.Put(ctx, phone, record); err != nil {
			logger.Error("Failed to record otp attempt", err)
			return err
		}
		metrics.OTPFailedTotal.WithLabelValues("mismatch").Inc()
		return fmt.Errorf("otp for %s: %w", phone, domain.ErrOtpMismatch)
	}

	if err := s.store.Delete(ctx, phone); err != nil {
		logger.Error("Failed to consume otp", err)
		return err
	}

	metrics.OTPVerifiedTotal.Inc()
	return nil
}

// generateCode draws a uniform 6-digit code from crypto/rand.
func generateCode() (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	n := binary.BigEndian.Uint64(buf[:]) % 1000000
	return fmt.Sprintf("%06d", n), nil
}
