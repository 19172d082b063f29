package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/spinwin/backend/internal/domain"
)

// memState backs the in-memory test doubles for the pgx repositories. All
// mutation happens under one mutex, which gives the fakes the same row-level
// atomicity the real store provides through transactions.
type memState struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account      // by account ID
	owners   map[string]*domain.ShopOwner    // by owner ID
	coupons  map[string]*domain.Coupon       // by code
	prizes   map[string]*domain.Prize        // by prize ID
	winners  []*domain.Winner
	subs     map[string]*domain.Subscription // by account ID
	claims   map[string]*domain.PaymentClaim // by claim ID
	now      func() time.Time
}

func newMemState() *memState {
	return &memState{
		accounts: make(map[string]*domain.Account),
		owners:   make(map[string]*domain.ShopOwner),
		coupons:  make(map[string]*domain.Coupon),
		prizes:   make(map[string]*domain.Prize),
		subs:     make(map[string]*domain.Subscription),
		claims:   make(map[string]*domain.PaymentClaim),
		now:      time.Now,
	}
}

// seedOwner creates an owner profile (and inert subscription) for the given
// account and returns the owner ID.
func (s *memState) seedOwner(accountID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := domain.NewAccountID()
	s.owners[id] = &domain.ShopOwner{ID: id, AccountID: accountID, CreatedAt: s.now()}
	s.subs[accountID] = &domain.Subscription{AccountID: accountID}
	return id
}

// seedPrize adds a prize for the owner and returns its ID.
func (s *memState) seedPrize(ownerID, name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := domain.NewAccountID()
	s.prizes[id] = &domain.Prize{ID: id, OwnerID: ownerID, Name: name, CreatedAt: s.now()}
	return id
}

// seedCoupon adds an active coupon with the given code.
func (s *memState) seedCoupon(ownerID, code string, expiry *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupons[code] = &domain.Coupon{
		ID:         domain.NewAccountID(),
		Code:       code,
		OwnerID:    ownerID,
		Status:     domain.CouponActive,
		ExpiryDate: expiry,
		CreatedAt:  s.now(),
	}
}

// seedClaim adds an unconfirmed payment claim and returns its ID.
func (s *memState) seedClaim(accountID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := domain.NewAccountID()
	s.claims[id] = &domain.PaymentClaim{ID: id, AccountID: accountID, UPIName: "payer", UPIID: "payer@upi", CreatedAt: s.now()}
	return id
}

type memAccounts struct{ s *memState }

func (m memAccounts) CreateOwner(_ context.Context, a *domain.Account, owner *domain.ShopOwner) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.accounts {
		if strings.EqualFold(existing.Username, a.Username) || strings.EqualFold(existing.Email, a.Email) {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	ac := *a
	m.s.accounts[a.ID] = &ac
	oc := *owner
	m.s.owners[owner.ID] = &oc
	m.s.subs[a.ID] = &domain.Subscription{AccountID: a.ID}
	return nil
}

func (m memAccounts) Create(_ context.Context, a *domain.Account) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.accounts {
		if strings.EqualFold(existing.Username, a.Username) || strings.EqualFold(existing.Email, a.Email) {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	cp := *a
	m.s.accounts[a.ID] = &cp
	return nil
}

func (m memAccounts) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, a := range m.s.accounts {
		if strings.EqualFold(a.Email, email) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m memAccounts) FindByID(_ context.Context, id string) (*domain.Account, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if a, ok := m.s.accounts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (m memAccounts) UsernameExists(_ context.Context, username string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, a := range m.s.accounts {
		if strings.EqualFold(a.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (m memAccounts) EmailExists(_ context.Context, email string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, a := range m.s.accounts {
		if strings.EqualFold(a.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

type memOwners struct{ s *memState }

func (m memOwners) FindByAccount(_ context.Context, accountID string) (*domain.ShopOwner, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, o := range m.s.owners {
		if o.AccountID == accountID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (m memOwners) FindByID(_ context.Context, id string) (*domain.ShopOwner, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if o, ok := m.s.owners[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (m memOwners) AddCouponsCreated(_ context.Context, ownerID string, n int) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if o, ok := m.s.owners[ownerID]; ok {
		o.TotalCouponsCreated += n
	}
	return nil
}

type memCoupons struct{ s *memState }

func (m memCoupons) Insert(_ context.Context, c *domain.Coupon) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, exists := m.s.coupons[c.Code]; exists {
		return false, nil
	}
	cp := *c
	m.s.coupons[c.Code] = &cp
	return true, nil
}

func (m memCoupons) CountByOwner(_ context.Context, ownerID string) (int, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	count := 0
	for _, c := range m.s.coupons {
		if c.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (m memCoupons) CountUsedByOwner(_ context.Context, ownerID string) (int, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	count := 0
	for _, c := range m.s.coupons {
		if c.OwnerID == ownerID && c.Status == domain.CouponUsed {
			count++
		}
	}
	return count, nil
}

func (m memCoupons) FindActive(_ context.Context, ownerID, code string) (*domain.Coupon, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	c, ok := m.s.coupons[code]
	if !ok || c.OwnerID != ownerID || c.Status != domain.CouponActive {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m memCoupons) Redeem(_ context.Context, ownerID, code string, w *domain.Winner) (*domain.Coupon, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	c, ok := m.s.coupons[code]
	if !ok || c.OwnerID != ownerID || c.Status != domain.CouponActive || c.IsExpired(m.s.now()) {
		return nil, nil
	}
	c.Status = domain.CouponUsed
	w.CouponID = c.ID
	w.CouponCode = c.Code
	w.OwnerID = ownerID
	w.RedeemedAt = m.s.now()
	cp := *w
	m.s.winners = append(m.s.winners, &cp)
	out := *c
	return &out, nil
}

func (m memCoupons) ListByOwner(_ context.Context, ownerID string) ([]domain.Coupon, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []domain.Coupon
	for _, c := range m.s.coupons {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m memCoupons) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var count int64
	for code, c := range m.s.coupons {
		if c.OwnerID == ownerID {
			delete(m.s.coupons, code)
			count++
		}
	}
	return count, nil
}

type memPrizes struct{ s *memState }

func (m memPrizes) Create(_ context.Context, p *domain.Prize) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	cp := *p
	m.s.prizes[p.ID] = &cp
	return nil
}

func (m memPrizes) FindByOwner(_ context.Context, ownerID, prizeID string) (*domain.Prize, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	p, ok := m.s.prizes[prizeID]
	if !ok || p.OwnerID != ownerID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m memPrizes) ListByOwner(_ context.Context, ownerID string) ([]domain.Prize, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []domain.Prize
	for _, p := range m.s.prizes {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m memPrizes) Update(_ context.Context, p *domain.Prize) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if cur, ok := m.s.prizes[p.ID]; ok && cur.OwnerID == p.OwnerID {
		cur.Name = p.Name
		if p.ImageURL != "" {
			cur.ImageURL = p.ImageURL
		}
	}
	return nil
}

func (m memPrizes) Delete(_ context.Context, ownerID, prizeID string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	p, ok := m.s.prizes[prizeID]
	if !ok || p.OwnerID != ownerID {
		return false, nil
	}
	delete(m.s.prizes, prizeID)
	return true, nil
}

type memWinners struct{ s *memState }

func (m memWinners) ListByOwner(_ context.Context, ownerID string) ([]domain.Winner, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []domain.Winner
	for _, w := range m.s.winners {
		if w.OwnerID == ownerID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (m memWinners) CountByOwner(_ context.Context, ownerID string) (int, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	count := 0
	for _, w := range m.s.winners {
		if w.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

type memSubs struct{ s *memState }

func (m memSubs) FindByAccount(_ context.Context, accountID string) (*domain.Subscription, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if sub, ok := m.s.subs[accountID]; ok {
		cp := *sub
		return &cp, nil
	}
	return nil, nil
}

type memClaims struct{ s *memState }

func (m memClaims) Insert(_ context.Context, c *domain.PaymentClaim) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	cp := *c
	m.s.claims[c.ID] = &cp
	return nil
}

func (m memClaims) ListAll(_ context.Context) ([]domain.PaymentClaim, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []domain.PaymentClaim
	for _, c := range m.s.claims {
		out = append(out, *c)
	}
	return out, nil
}

func (m memClaims) Confirm(_ context.Context, claimID string, now time.Time) (*domain.Subscription, bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	c, ok := m.s.claims[claimID]
	if !ok {
		return nil, false, domain.ErrNotFound("payment claim not found")
	}

	sub, ok := m.s.subs[c.AccountID]
	if !ok {
		sub = &domain.Subscription{AccountID: c.AccountID}
		m.s.subs[c.AccountID] = sub
	}

	if c.Confirmed {
		cp := *sub
		return &cp, false, nil
	}

	c.Confirmed = true
	c.ConfirmedAt = &now
	sub.Extend(now)
	sub.UpdatedAt = now
	cp := *sub
	return &cp, true, nil
}
