package fleet

import (
	"context"
	"errors"

	"marinaclub/internal/domain"
	"marinaclub/internal/pkg/numeric"
	"marinaclub/internal/repository"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("vessel not found")
	ErrForbidden  = errors.New("forbidden")
)

type vesselRepo interface {
	Create(ctx context.Context, v *domain.Vessel) error
	GetByID(ctx context.Context, id int64) (*domain.Vessel, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Vessel, error)
	Update(ctx context.Context, v *domain.Vessel) error
	SetValidated(ctx context.Context, vesselID int64, validated bool) error
	Deactivate(ctx context.Context, vesselID, ownerID int64) error
}

type CreateVesselRequest struct {
	Name     string         `json:"name" binding:"required"`
	Length   numeric.Meters `json:"length" binding:"required"`
	Width    numeric.Meters `json:"width" binding:"required"`
	Capacity int            `json:"capacity"`
}

type Service struct {
	vessels vesselRepo
}

func NewService(vessels vesselRepo) *Service {
	return &Service{vessels: vessels}
}

// Register adds a vessel to the owner's fleet. New vessels start active but
// unvalidated; an admin validates dimensions before the vessel can book.
func (s *Service) Register(ctx context.Context, ownerID int64, req CreateVesselRequest) (*domain.Vessel, error) {
	if req.Length.Float64() <= 0 || req.Width.Float64() <= 0 {
		return nil, ErrValidation
	}
	if req.Capacity < 0 {
		return nil, ErrValidation
	}

	v := &domain.Vessel{
		OwnerID:  ownerID,
		Name:     req.Name,
		Length:   req.Length,
		Width:    req.Width,
		Capacity: req.Capacity,
		IsActive: true,
	}
	if err := s.vessels.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Get(ctx context.Context, vesselID, actorID int64, actorRole domain.UserRole) (*domain.Vessel, error) {
	v, err := s.vessels.GetByID(ctx, vesselID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if v.OwnerID != actorID && actorRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return v, nil
}

func (s *Service) ListMine(ctx context.Context, ownerID int64) ([]domain.Vessel, error) {
	return s.vessels.ListByOwner(ctx, ownerID)
}

// Validate flips the admin validation flag. Dimension edits reset it, so a
// validated vessel's length/width can be trusted by the booking resolver.
func (s *Service) Validate(ctx context.Context, vesselID int64) (*domain.Vessel, error) {
	if err := s.vessels.SetValidated(ctx, vesselID, true); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.vessels.GetByID(ctx, vesselID)
}

func (s *Service) UpdateDimensions(ctx context.Context, vesselID, actorID int64, length, width numeric.Meters) (*domain.Vessel, error) {
	v, err := s.vessels.GetByID(ctx, vesselID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if v.OwnerID != actorID {
		return nil, ErrForbidden
	}
	if length.Float64() <= 0 || width.Float64() <= 0 {
		return nil, ErrValidation
	}

	v.Length = length
	v.Width = width
	v.IsValidated = false
	if err := s.vessels.Update(ctx, v); err != nil {
		return nil, err
	}
	return s.vessels.GetByID(ctx, vesselID)
}

func (s *Service) Deactivate(ctx context.Context, vesselID, actorID int64) error {
	if err := s.vessels.Deactivate(ctx, vesselID, actorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
