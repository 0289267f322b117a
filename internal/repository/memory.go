package repository

import (
	"context"
	"sync"
	"time"

	"go-consult-api/internal/domain/entity"
	domainRepo "go-consult-api/internal/domain/repository"
)

// In-memory implementations backing tests and local development without a
// running MongoDB or Redis.

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*entity.User // keyed by ID
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*entity.User)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domainRepo.ErrDuplicate
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domainRepo.ErrNotFound
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domainRepo.ErrNotFound
}

// Count reports the number of stored users matching the role.
func (r *MemoryUserRepository) Count(role string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, u := range r.users {
		if role == "" || u.Role == role {
			n++
		}
	}
	return n
}

type MemoryConsultationRepository struct {
	mu            sync.RWMutex
	consultations []*entity.Consultation
}

func NewMemoryConsultationRepository() *MemoryConsultationRepository {
	return &MemoryConsultationRepository{}
}

func (r *MemoryConsultationRepository) Create(ctx context.Context, consultation *entity.Consultation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *consultation
	r.consultations = append(r.consultations, &copied)
	return nil
}

func (r *MemoryConsultationRepository) Find(ctx context.Context, filter entity.ConsultationFilter) ([]*entity.Consultation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*entity.Consultation, 0)
	for _, c := range r.consultations {
		if filter.DoctorID != "" && c.DoctorID != filter.DoctorID {
			continue
		}
		if filter.PatientID != "" && c.PatientID != filter.PatientID {
			continue
		}
		copied := *c
		result = append(result, &copied)
	}
	return result, nil
}

type memoryToken struct {
	expiresAt time.Time
}

type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]memoryToken
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]memoryToken)}
}

func (s *MemoryTokenStore) Save(ctx context.Context, userID, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tokenKey(userID, tokenID)] = memoryToken{expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryTokenStore) Exists(ctx context.Context, userID, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tok, ok := s.tokens[tokenKey(userID, tokenID)]
	if !ok || time.Now().After(tok.expiresAt) {
		return false, nil
	}
	return true, nil
}

func (s *MemoryTokenStore) Delete(ctx context.Context, userID, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, tokenKey(userID, tokenID))
	return nil
}

// Compile-time interface checks
var (
	_ domainRepo.UserRepository         = (*MemoryUserRepository)(nil)
	_ domainRepo.ConsultationRepository = (*MemoryConsultationRepository)(nil)
	_ domainRepo.TokenStore             = (*MemoryTokenStore)(nil)
)
