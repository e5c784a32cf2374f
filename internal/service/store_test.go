package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"tripbudget/internal/model"
	"tripbudget/internal/repository"

	"github.com/google/uuid"
)

// memStore is an in-memory CounterRepository and ReferralRepository with the
// same locking and clamping rules as the Postgres implementation.
type memStore struct {
	mu        sync.Mutex
	counters  map[string]*model.MessageCounter
	referrals map[string]*model.Referral
}

func newMemStore() *memStore {
	return &memStore{
		counters:  map[string]*model.MessageCounter{},
		referrals: map[string]*model.Referral{},
	}
}

func (s *memStore) balance(userID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.counters[userID]
	if !ok {
		return 0, false
	}
	return c.MessageCount, true
}

func (s *memStore) getOrCreateLocked(userID string, initialGrant int) (*model.MessageCounter, bool) {
	if c, ok := s.counters[userID]; ok {
		return c, false
	}
	now := time.Now()
	c := &model.MessageCounter{ID: uuid.NewString(), UserID: userID, MessageCount: initialGrant, CreatedAt: now, UpdatedAt: now}
	s.counters[userID] = c
	return c, true
}

func (s *memStore) adjustLocked(userID string, delta, initialGrant int, strict bool) (*model.CounterAdjustment, error) {
	c, created := s.getOrCreateLocked(userID, initialGrant)
	adj := &model.CounterAdjustment{PreviousBalance: c.MessageCount, Created: created}
	if strict && c.MessageCount+delta < 0 {
		return nil, repository.ErrInsufficientCredits
	}
	c.MessageCount = max(c.MessageCount+delta, 0)
	c.UpdatedAt = time.Now()
	adj.Counter = *c
	return adj, nil
}

func (s *memStore) GetOrCreate(_ context.Context, userID string, initialGrant int) (*model.MessageCounter, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, created := s.getOrCreateLocked(userID, initialGrant)
	out := *c
	return &out, created, nil
}

func (s *memStore) Adjust(_ context.Context, userID string, delta, initialGrant int) (*model.CounterAdjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adjustLocked(userID, delta, initialGrant, false)
}

func (s *memStore) Charge(_ context.Context, userID string, amount, initialGrant int) (*model.CounterAdjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adjustLocked(userID, -amount, initialGrant, true)
}

func (s *memStore) Create(_ context.Context, ref *model.Referral) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.referrals[ref.ReferralCode]; ok {
		return repository.ErrDuplicateCode
	}
	ref.ID = uuid.NewString()
	ref.CreatedAt = time.Now()
	stored := *ref
	s.referrals[ref.ReferralCode] = &stored
	return nil
}

func (s *memStore) Redeem(_ context.Context, code, redeemerID string, bonus, initialGrant int) (*model.Redemption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := s.referrals[code]
	if !ok || ref.IsUsed {
		return nil, repository.ErrReferralNotRedeemable
	}
	if ref.ReferrerID == redeemerID {
		return nil, repository.ErrSelfRedemption
	}
	now := time.Now()
	ref.IsUsed = true
	ref.UsedAt = &now

	out := &model.Redemption{Referral: *ref}
	referrer, _ := s.adjustLocked(ref.ReferrerID, bonus, initialGrant, false)
	referee, _ := s.adjustLocked(redeemerID, bonus, initialGrant, false)
	out.Referrer = *referrer
	out.Referee = *referee
	return out, nil
}

func (s *memStore) ListByReferrer(_ context.Context, referrerID string, limit, offset int) ([]model.Referral, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Referral
	for _, r := range s.referrals {
		if r.ReferrerID == referrerID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return []model.Referral{}, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) StatsByReferrer(_ context.Context, referrerID string) (*model.ReferralStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stats model.ReferralStats
	for _, r := range s.referrals {
		if r.ReferrerID != referrerID {
			continue
		}
		stats.Issued++
		if r.IsUsed {
			stats.Redeemed++
		}
	}
	stats.Pending = stats.Issued - stats.Redeemed
	return &stats, nil
}
