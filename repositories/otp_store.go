package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dchahine/chatline_backend/models"
)

var (
	// ErrOTPNotFound means no code exists for the phone number: never
	// issued, already consumed, or lost on restart.
	ErrOTPNotFound = errors.New("no verification code found")
	// ErrOTPExpired means the code's lifetime has passed.
	ErrOTPExpired = errors.New("verification code expired")
	// ErrOTPMismatch means the submitted code does not match the stored one.
	ErrOTPMismatch = errors.New("verification code mismatch")
)

// OTPStore holds pending verification codes keyed by phone number.
// At most one live code exists per number; saving replaces any
// previous unconsumed code.
type OTPStore interface {
	// Save stores a code for otp.Phone, overwriting a previous one.
	Save(ctx context.Context, otp models.PhoneOTP) error
	// Claim consumes the code for phone in a single compare-and-remove
	// step. It returns ErrOTPNotFound, ErrOTPExpired or ErrOTPMismatch
	// when the attempt fails; a mismatch leaves the record in place for
	// another attempt, an expired record is purged.
	Claim(ctx context.Context, phone, code string, now time.Time) error
	// PurgeExpired drops records whose expiry has passed and reports
	// how many were removed.
	PurgeExpired(ctx context.Context, now time.Time) (int, error)
}

// MemoryOTPStore keeps codes in process memory. Nothing survives a
// restart, which also invalidates every pending verification.
type MemoryOTPStore struct {
	mu   sync.Mutex
	otps map[string]models.PhoneOTP
}

// NewMemoryOTPStore creates an empty in-memory OTP store
func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{otps: make(map[string]models.PhoneOTP)}
}

func (s *MemoryOTPStore) Save(ctx context.Context, otp models.PhoneOTP) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otps[otp.Phone] = otp
	return nil
}

func (s *MemoryOTPStore) Claim(ctx context.Context, phone, code string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	otp, ok := s.otps[phone]
	if !ok {
		return ErrOTPNotFound
	}
	if otp.Expired(now) {
		delete(s.otps, phone)
		return ErrOTPExpired
	}
	if otp.Code != code {
		return ErrOTPMismatch
	}
	delete(s.otps, phone)
	return nil
}

func (s *MemoryOTPStore) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for phone, otp := range s.otps {
		if otp.Expired(now) {
			delete(s.otps, phone)
			removed++
		}
	}
	return removed, nil
}
