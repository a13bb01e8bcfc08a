package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"agrilink/domain"
	"agrilink/internal/repository/otpstore"
)

// OtpStore stores pending codes in Redis so verification survives process
// restarts. Redis owns expiry through the key TTL.
type OtpStore struct {
	client *redis.Client
}

func NewOtpStore(client *redis.Client) *OtpStore {
	return &OtpStore{
		client: client,
	}
}

func (r *OtpStore) Get(ctx context.Context, phone string) (otpstore.Record, error) {
	key := fmt.Sprintf("otp:phone:%s", phone)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return otpstore.Record{}, fmt.Errorf("otp for %s: %w", phone, domain.ErrOtpNotFound)
		}
		return otpstore.Record{}, fmt.Errorf("failed to get otp from Redis: %w", err)
	}

	var record otpstore.Record
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return otpstore.Record{}, fmt.Errorf("failed to unmarshal otp record: %w", err)
	}

	if time.Now().After(record.ExpiresAt) {
		// TTL drift; treat as expired and drop the key
		r.client.Del(ctx, key)
		return otpstore.Record{}, fmt.Errorf("otp for %s: %w", phone, domain.ErrOtpExpired)
	}

	return record, nil
}

func (r *OtpStore) Put(ctx context.Context, phone string, record otpstore.Record) error {
	key := fmt.Sprintf("otp:phone:%s", phone)

	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal otp record: %w", err)
	}

	ttl := time.Until(record.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}

	if err := r.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store otp in Redis: %w", err)
	}

	return nil
}

func (r *OtpStore) Delete(ctx context.Context, phone string) error {
	key := fmt.Sprintf("otp:phone:%s", phone)

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete otp from Redis: %w", err)
	}

	return nil
}
