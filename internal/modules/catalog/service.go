package catalog

import (
	"context"
	"errors"
	"time"

	"marinaclub/internal/domain"
	"marinaclub/internal/repository"
)

type clubRepo interface {
	Create(ctx context.Context, c *domain.Club) error
	GetByID(ctx context.Context, id int64) (*domain.Club, error)
	List(ctx context.Context, limit, offset int) ([]domain.Club, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Club, error)
	Update(ctx context.Context, c *domain.Club) error
}

type berthRepo interface {
	Create(ctx context.Context, b *domain.Berth) error
	GetByID(ctx context.Context, id int64) (*domain.Berth, error)
	ListByClub(ctx context.Context, clubID int64) ([]domain.Berth, error)
	Update(ctx context.Context, b *domain.Berth) error
}

type tariffRepo interface {
	Create(ctx context.Context, t *domain.Tariff) error
	ListByClub(ctx context.Context, clubID int64) ([]domain.Tariff, error)
	Delete(ctx context.Context, id, clubID int64) error
	CreateRule(ctx context.Context, r *domain.BookingRule) error
	ListRulesByClub(ctx context.Context, clubID int64) ([]domain.BookingRule, error)
	DeleteRule(ctx context.Context, id, clubID int64) error
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Service struct {
	clubs   clubRepo
	berths  berthRepo
	tariffs tariffRepo
	users   userReader
}

func NewService(clubs clubRepo, berths berthRepo, tariffs tariffRepo, users userReader) *Service {
	return &Service{clubs: clubs, berths: berths, tariffs: tariffs, users: users}
}

func (s *Service) ListClubs(ctx context.Context, limit, offset int) ([]domain.Club, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.clubs.List(ctx, limit, offset)
}

func (s *Service) MyClubs(ctx context.Context, ownerID int64) ([]domain.Club, error) {
	return s.clubs.ListByOwner(ctx, ownerID)
}

func (s *Service) GetClub(ctx context.Context, id int64) (*domain.Club, error) {
	club, err := s.clubs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return club, nil
}

func (s *Service) ListBerths(ctx context.Context, clubID int64) ([]domain.Berth, error) {
	if _, err := s.GetClub(ctx, clubID); err != nil {
		return nil, err
	}
	return s.berths.ListByClub(ctx, clubID)
}

func (s *Service) ListTariffs(ctx context.Context, clubID int64) ([]domain.Tariff, error) {
	if _, err := s.GetClub(ctx, clubID); err != nil {
		return nil, err
	}
	return s.tariffs.ListByClub(ctx, clubID)
}

func (s *Service) ListRules(ctx context.Context, clubID int64) ([]domain.BookingRule, error) {
	if _, err := s.GetClub(ctx, clubID); err != nil {
		return nil, err
	}
	return s.tariffs.ListRulesByClub(ctx, clubID)
}

func (s *Service) CreateClub(ctx context.Context, ownerID int64, req CreateClubRequest) (*domain.Club, error) {
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner.Role != domain.RoleAdmin && owner.OwnerStatus != domain.OwnerVerified {
		return nil, ErrOwnerNotVerified
	}

	months := req.ActiveMonths.Normalized()
	if len(months) == 0 {
		return nil, ErrValidation
	}

	club := &domain.Club{
		OwnerID:      ownerID,
		Name:         req.Name,
		Address:      req.Address,
		SeasonYear:   req.SeasonYear,
		ActiveMonths: months,
		BasePrice:    req.BasePrice,
		BerthCount:   req.BerthCount,
	}
	if err := s.clubs.Create(ctx, club); err != nil {
		return nil, err
	}
	return club, nil
}

func (s *Service) UpdateClub(ctx context.Context, clubID, actorID int64, actorRole domain.UserRole, req UpdateClubRequest) (*domain.Club, error) {
	club, err := s.ownedClub(ctx, clubID, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		club.Name = *req.Name
	}
	if req.Address != nil {
		club.Address = *req.Address
	}
	if req.SeasonYear != nil {
		club.SeasonYear = *req.SeasonYear
	}
	if req.ActiveMonths != nil {
		months := req.ActiveMonths.Normalized()
		if len(months) == 0 {
			return nil, ErrValidation
		}
		club.ActiveMonths = months
	}
	if req.BasePrice != nil {
		club.BasePrice = *req.BasePrice
	}

	if err := s.clubs.Update(ctx, club); err != nil {
		return nil, err
	}
	return s.clubs.GetByID(ctx, clubID)
}

func (s *Service) CreateBerth(ctx context.Context, clubID, actorID int64, actorRole domain.UserRole, req CreateBerthRequest) (*domain.Berth, error) {
	if _, err := s.ownedClub(ctx, clubID, actorID, actorRole); err != nil {
		return nil, err
	}
	if req.MaxLength.Float64() <= 0 || req.MaxWidth.Float64() <= 0 {
		return nil, ErrValidation
	}

	berth := &domain.Berth{
		ClubID:      clubID,
		Number:      req.Number,
		MaxLength:   req.MaxLength,
		MaxWidth:    req.MaxWidth,
		IsAvailable: true,
		PricePerDay: req.PricePerDay,
	}
	if err := s.berths.Create(ctx, berth); err != nil {
		return nil, err
	}
	return berth, nil
}

func (s *Service) SetBerthAvailability(ctx context.Context, clubID, berthID, actorID int64, actorRole domain.UserRole, available bool) (*domain.Berth, error) {
	if _, err := s.ownedClub(ctx, clubID, actorID, actorRole); err != nil {
		return nil, err
	}

	berth, err := s.berths.GetByID(ctx, berthID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if berth.ClubID != clubID {
		return nil, ErrNotFound
	}

	berth.IsAvailable = available
	berth.UpdatedAt = time.Now()
	if err := s.berths.Update(ctx, berth); err != nil {
		return nil, err
	}
	return berth, nil
}

func (s *Service) CreateTariff(ctx context.Context, clubID, actorID int64, actorRole domain.UserRole, req CreateTariffRequest) (*domain.Tariff, error) {
	if _, err := s.ownedClub(ctx, clubID, actorID, actorRole); err != nil {
		return nil, err
	}

	if req.Kind != domain.TariffSeason && req.Kind != domain.TariffMonthly {
		return nil, ErrValidation
	}
	if req.Amount < 0 {
		return nil, ErrValidation
	}
	months := req.Months.Normalized()
	if req.Kind == domain.TariffMonthly && len(months) == 0 {
		return nil, ErrValidation
	}

	tariff := &domain.Tariff{
		ClubID: clubID,
		Kind:   req.Kind,
		Amount: req.Amount,
		Months: months,
	}
	if err := s.tariffs.Create(ctx, tariff); err != nil {
		return nil, err
	}
	return tariff, nil
}

func (s *Service) DeleteTariff(ctx context.Context, clubID, tariffID, actorID int64, actorRole domain.UserRole) error {
	if _, err := s.ownedClub(ctx, clubID, actorID, actorRole); err != nil {
		return err
	}
	if err := s.tariffs.Delete(ctx, tariffID, clubID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) CreateRule(ctx context.Context, clubID, actorID int64, actorRole domain.UserRole, req CreateRuleRequest) (*domain.BookingRule, error) {
	if _, err := s.ownedClub(ctx, clubID, actorID, actorRole); err != nil {
		return nil, err
	}

	switch req.Kind {
	case domain.RuleRequireDeposit:
		if req.DepositAmount <= 0 {
			return nil, ErrValidation
		}
	case domain.RuleRequireMonths:
		if len(req.Months.Normalized()) == 0 {
			return nil, ErrValidation
		}
	default:
		return nil, ErrValidation
	}

	rule := &domain.BookingRule{
		ClubID:        clubID,
		TariffID:      req.TariffID,
		Kind:          req.Kind,
		DepositAmount: req.DepositAmount,
		Months:        req.Months.Normalized(),
		CreatedAt:     time.Now(),
	}
	if err := s.tariffs.CreateRule(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *Service) DeleteRule(ctx context.Context, clubID, ruleID, actorID int64, actorRole domain.UserRole) error {
	if _, err := s.ownedClub(ctx, clubID, actorID, actorRole); err != nil {
		return err
	}
	if err := s.tariffs.DeleteRule(ctx, ruleID, clubID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) ownedClub(ctx context.Context, clubID, actorID int64, actorRole domain.UserRole) (*domain.Club, error) {
	club, err := s.clubs.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if club.OwnerID != actorID && actorRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return club, nil
}
