package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cardaloom/internal/auth"
	"cardaloom/internal/model"
	"cardaloom/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// weekdays are the accepted schedule keys.
var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// tenantService implements TenantService.
type tenantService struct {
	accountRepo repository.AccountRepository
	tenantRepo  repository.TenantRepository
	tokens      *auth.TokenManager
	logger      zerolog.Logger
}

// NewTenantService creates a new tenant service.
func NewTenantService(
	accountRepo repository.AccountRepository,
	tenantRepo repository.TenantRepository,
	tokens *auth.TokenManager,
	logger zerolog.Logger,
) TenantService {
	return &tenantService{
		accountRepo: accountRepo,
		tenantRepo:  tenantRepo,
		tokens:      tokens,
		logger:      logger.With().Str("service", "tenant").Logger(),
	}
}

// Signup registers a new restaurant: account plus tenant, atomically.
func (s *tenantService) Signup(ctx context.Context, req *model.SignupRequest) (*model.TokenResponse, error) {
	if err := s.validateSignupRequest(req); err != nil {
		return nil, err
	}

	taxID := model.NormalizeTaxID(req.TaxID)

	existing, err := s.tenantRepo.GetByTaxID(ctx, taxID)
	if err != nil {
		return nil, fmt.Errorf("failed to check tax id: %w", err)
	}
	if existing != nil {
		s.logger.Warn().Str("tax_id", taxID).Msg("signup rejected: tax id taken")
		return nil, model.ErrTaxIDTaken
	}

	account, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if account != nil {
		s.logger.Warn().Str("email", req.Email).Msg("signup rejected: email taken")
		return nil, model.ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	newAccount := &model.Account{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		DisplayName:  req.OwnerName,
		CreatedAt:    now,
	}
	tenant := &model.Tenant{
		TaxID:     taxID,
		Name:      req.RestaurantName,
		OwnerName: req.OwnerName,
		Email:     req.Email,
		Address:   req.Address,
		WhatsApp:  req.WhatsApp,
		AccountID: newAccount.ID,
		Hours:     model.Schedule{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := s.accountRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.accountRepo.Create(ctx, tx, newAccount); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	if err = s.tenantRepo.Create(ctx, tx, tenant); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	token, err := s.tokens.Issue(newAccount.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Str("tax_id", taxID).Msg("tenant registered")
	return &model.TokenResponse{Token: token, Tenant: tenant}, nil
}

// Login exchanges credentials for a bearer token.
func (s *tenantService) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	if req == nil || req.Email == "" || req.Password == "" {
		return nil, model.ErrInvalidCredentials
	}

	account, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil || !auth.CheckPassword(account.PasswordHash, req.Password) {
		s.logger.Warn().Str("email", req.Email).Msg("login rejected")
		return nil, model.ErrInvalidCredentials
	}

	tenant, err := s.tenantRepo.GetByAccountID(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &model.TokenResponse{Token: token, Tenant: tenant}, nil
}

// GetProfile returns the tenant owned by the account.
func (s *tenantService) GetProfile(ctx context.Context, accountID uuid.UUID) (*model.Tenant, error) {
	tenant, err := s.tenantRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	if tenant == nil {
		return nil, model.ErrTenantNotFound
	}
	return tenant, nil
}

// UpdateProfile applies the non-nil fields of the request.
func (s *tenantService) UpdateProfile(ctx context.Context, accountID uuid.UUID, req *model.TenantUpdateRequest) (*model.Tenant, error) {
	tenant, err := s.GetProfile(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, model.NewDomainError(model.ErrCodeMissingField, "restaurant name cannot be empty")
		}
		tenant.Name = *req.Name
	}
	if req.OwnerName != nil {
		tenant.OwnerName = *req.OwnerName
	}
	if req.Address != nil {
		tenant.Address = *req.Address
	}
	if req.WhatsApp != nil {
		tenant.WhatsApp = *req.WhatsApp
	}
	if req.Hours != nil {
		if err := validateSchedule(*req.Hours); err != nil {
			return nil, err
		}
		tenant.Hours = *req.Hours
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}

	s.logger.Info().Str("tax_id", tenant.TaxID).Msg("tenant profile updated")
	return tenant, nil
}

// validateSignupRequest checks the required registration fields.
func (s *tenantService) validateSignupRequest(req *model.SignupRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "request body is required")
	}
	if !strings.Contains(req.Email, "@") {
		return model.NewDomainError(model.ErrCodeMissingField, "a valid email is required")
	}
	if len(req.Password) < auth.MinPasswordLength {
		return model.NewDomainError(model.ErrCodeMissingField,
			fmt.Sprintf("password must be at least %d characters", auth.MinPasswordLength))
	}
	if strings.TrimSpace(req.OwnerName) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "owner name is required")
	}
	if strings.TrimSpace(req.RestaurantName) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "restaurant name is required")
	}
	if model.NormalizeTaxID(req.TaxID) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "tax id is required")
	}
	return nil
}

// validateSchedule rejects unknown weekday keys and unparseable windows.
func validateSchedule(hours model.Schedule) error {
	for day, window := range hours {
		if !weekdays[day] {
			return model.NewDomainError(model.ErrCodeMissingField,
				fmt.Sprintf("unknown weekday %q in operating hours", day))
		}
		if !window.Open {
			continue
		}
		for _, clock := range []string{window.OpenTime, window.CloseTime} {
			if _, err := time.Parse("15:04", clock); err != nil {
				return model.NewDomainError(model.ErrCodeMissingField,
					fmt.Sprintf("invalid time %q for %s, expected HH:MM", clock, day))
			}
		}
	}
	return nil
}
