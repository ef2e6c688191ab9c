package services

import (
	"context"
	"fmt"
	"sync"

	"herbalgarden/internal/models"
	"herbalgarden/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
)

const guestGoogleID = "guest"

// GuestService supplies an owning identity for unauthenticated callers.
type GuestService struct {
	users repositories.UserRepository
	email string

	group   singleflight.Group
	mu      sync.RWMutex
	guestID string
}

// NewGuestService creates a GuestService keyed by the sentinel guest email.
func NewGuestService(users repositories.UserRepository, email string) *GuestService {
	return &GuestService{
		users: users,
		email: email,
	}
}

// IsUserID reports whether candidate is a syntactically valid user reference.
func IsUserID(candidate string) bool {
	if len(candidate) != 36 {
		return false
	}
	_, err := uuid.Parse(candidate)
	return err == nil
}

// EnsureUserID returns candidate unchanged when it is a valid user reference,
// otherwise the Guest account's id. Existence of candidate is not checked.
func (s *GuestService) EnsureUserID(ctx context.Context, candidate string) (string, error) {
	if IsUserID(candidate) {
		return candidate, nil
	}
	return s.GuestID(ctx)
}

// GuestID returns the Guest account's id, creating the account on first use.
// Concurrent first calls share one storage round trip, and the storage write
// itself is an insert-if-absent, so every caller observes the same id.
func (s *GuestService) GuestID(ctx context.Context) (string, error) {
	s.mu.RLock()
	id := s.guestID
	s.mu.RUnlock()
	if id != "" {
		return id, nil
	}

	v, err, _ := s.group.Do("guest", func() (interface{}, error) {
		s.mu.RLock()
		cached := s.guestID
		s.mu.RUnlock()
		if cached != "" {
			return cached, nil
		}
		googleID := guestGoogleID
		guest, err := s.users.FirstOrCreateByEmail(ctx, &models.User{
			Name:     "Guest",
			Email:    s.email,
			GoogleID: &googleID,
			Settings: datatypes.NewJSONType(models.DefaultUserSettings()),
		})
		if err != nil {
			return "", fmt.Errorf("ensure guest user: %w", err)
		}
		s.mu.Lock()
		s.guestID = guest.ID
		s.mu.Unlock()
		return guest.ID, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
