package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spinwin/backend/internal/domain"
)

// PrizeService manages an owner's prize set.
type PrizeService struct {
	prizes   PrizeStore
	owners   OwnerStore
	validate *validator.Validate
}

// NewPrizeService creates a new PrizeService.
func NewPrizeService(prizes PrizeStore, owners OwnerStore) *PrizeService {
	return &PrizeService{
		prizes:   prizes,
		owners:   owners,
		validate: validator.New(),
	}
}

func (s *PrizeService) ownerByAccount(ctx context.Context, accountID string) (*domain.ShopOwner, error) {
	owner, err := s.owners.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, domain.ErrInternal("failed to load shop owner", err)
	}
	if owner == nil {
		return nil, domain.ErrNotFound("user profile not found")
	}
	return owner, nil
}

// Add creates a prize. Name and image are both required.
func (s *PrizeService) Add(ctx context.Context, accountID string, req *domain.PrizeRequest) (*domain.Prize, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	owner, err := s.ownerByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	prize := &domain.Prize{
		ID:        uuid.New().String(),
		OwnerID:   owner.ID,
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		CreatedAt: time.Now(),
	}
	if err := s.prizes.Create(ctx, prize); err != nil {
		return nil, domain.ErrInternal("failed to save prize", err)
	}
	return prize, nil
}

// List returns the account owner's prizes, newest first.
func (s *PrizeService) List(ctx context.Context, accountID string) ([]domain.Prize, error) {
	owner, err := s.ownerByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	prizes, err := s.prizes.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, domain.ErrInternal("failed to list prizes", err)
	}
	return prizes, nil
}

// Update renames a prize and optionally replaces its image.
func (s *PrizeService) Update(ctx context.Context, accountID, prizeID, name, imageURL string) (*domain.Prize, error) {
	if name == "" {
		return nil, domain.ErrValidation("prize name is required")
	}

	owner, err := s.ownerByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	prize, err := s.prizes.FindByOwner(ctx, owner.ID, prizeID)
	if err != nil {
		return nil, domain.ErrInternal("failed to load prize", err)
	}
	if prize == nil {
		return nil, domain.ErrNotFound("prize not found")
	}

	prize.Name = name
	prize.ImageURL = imageURL
	if err := s.prizes.Update(ctx, prize); err != nil {
		return nil, domain.ErrInternal("failed to update prize", err)
	}
	if imageURL == "" {
		// The store keeps the old image when none is supplied.
		fresh, err := s.prizes.FindByOwner(ctx, owner.ID, prizeID)
		if err == nil && fresh != nil {
			return fresh, nil
		}
	}
	return prize, nil
}

// Delete removes an owner's prize.
func (s *PrizeService) Delete(ctx context.Context, accountID, prizeID string) error {
	owner, err := s.ownerByAccount(ctx, accountID)
	if err != nil {
		return err
	}

	ok, err := s.prizes.Delete(ctx, owner.ID, prizeID)
	if err != nil {
		return domain.ErrInternal("failed to delete prize", err)
	}
	if !ok {
		return domain.ErrNotFound("prize not found")
	}
	return nil
}
