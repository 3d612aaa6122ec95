package service

import (
	"context"
	"testing"
	"time"

	"cardaloom/internal/auth"
	"cardaloom/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTenantFixture() (*MockAccountRepository, *MockTenantRepository, TenantService) {
	accountRepo := new(MockAccountRepository)
	tenantRepo := new(MockTenantRepository)
	tokens := auth.NewTokenManager("test-secret-for-unit-tests", time.Hour)
	svc := NewTenantService(accountRepo, tenantRepo, tokens, zerolog.Nop())
	return accountRepo, tenantRepo, svc
}

func validSignup() *model.SignupRequest {
	return &model.SignupRequest{
		Email:          "owner@example.com",
		Password:       "s3cret-password",
		OwnerName:      "Maria",
		RestaurantName: "Cantina da Praça",
		TaxID:          "12.345.678/0001-99",
		Address:        "Rua das Flores, 10",
		WhatsApp:       "+55 11 98765-4321",
	}
}

func TestTenantService_Signup_Success(t *testing.T) {
	accountRepo, tenantRepo, svc := newTenantFixture()
	tx := new(MockTx)

	tenantRepo.On("GetByTaxID", mock.Anything, "12345678000199").Return(nil, nil)
	accountRepo.On("GetByEmail", mock.Anything, "owner@example.com").Return(nil, nil)
	accountRepo.On("BeginTx", mock.Anything).Return(tx, nil)
	accountRepo.On("Create", mock.Anything, tx, mock.MatchedBy(func(a *model.Account) bool {
		return a.Email == "owner@example.com" && a.PasswordHash != "" && a.PasswordHash != "s3cret-password"
	})).Return(nil)
	tenantRepo.On("Create", mock.Anything, tx, mock.MatchedBy(func(tn *model.Tenant) bool {
		return tn.TaxID == "12345678000199" && tn.Name == "Cantina da Praça"
	})).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)

	resp, err := svc.Signup(context.Background(), validSignup())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "12345678000199", resp.Tenant.TaxID)
	accountRepo.AssertExpectations(t)
	tenantRepo.AssertExpectations(t)
}

func TestTenantService_Signup_TaxIDTaken(t *testing.T) {
	accountRepo, tenantRepo, svc := newTenantFixture()

	tenantRepo.On("GetByTaxID", mock.Anything, "12345678000199").
		Return(&model.Tenant{TaxID: "12345678000199"}, nil)

	_, err := svc.Signup(context.Background(), validSignup())

	assert.ErrorIs(t, err, model.ErrTaxIDTaken)
	accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestTenantService_Signup_EmailTaken(t *testing.T) {
	accountRepo, tenantRepo, svc := newTenantFixture()

	tenantRepo.On("GetByTaxID", mock.Anything, "12345678000199").Return(nil, nil)
	accountRepo.On("GetByEmail", mock.Anything, "owner@example.com").
		Return(&model.Account{ID: uuid.New(), Email: "owner@example.com"}, nil)

	_, err := svc.Signup(context.Background(), validSignup())

	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestTenantService_Signup_Validation(t *testing.T) {
	_, _, svc := newTenantFixture()

	tests := []struct {
		name   string
		mutate func(*model.SignupRequest)
	}{
		{name: "Missing email", mutate: func(r *model.SignupRequest) { r.Email = "not-an-email" }},
		{name: "Short password", mutate: func(r *model.SignupRequest) { r.Password = "short" }},
		{name: "Missing owner name", mutate: func(r *model.SignupRequest) { r.OwnerName = "  " }},
		{name: "Missing restaurant name", mutate: func(r *model.SignupRequest) { r.RestaurantName = "" }},
		{name: "Tax id without digits", mutate: func(r *model.SignupRequest) { r.TaxID = "abc" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup()
			tt.mutate(req)

			_, err := svc.Signup(context.Background(), req)

			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, model.ErrCodeMissingField, domainErr.Code)
		})
	}
}

func TestTenantService_Login(t *testing.T) {
	accountRepo, tenantRepo, svc := newTenantFixture()

	hash, err := auth.HashPassword("s3cret-password")
	require.NoError(t, err)
	accountID := uuid.New()
	account := &model.Account{ID: accountID, Email: "owner@example.com", PasswordHash: hash}
	tenant := &model.Tenant{TaxID: "12345678000199", AccountID: accountID}

	accountRepo.On("GetByEmail", mock.Anything, "owner@example.com").Return(account, nil)
	tenantRepo.On("GetByAccountID", mock.Anything, accountID).Return(tenant, nil)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "owner@example.com",
		Password: "s3cret-password",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "12345678000199", resp.Tenant.TaxID)
}

func TestTenantService_Login_BadCredentials(t *testing.T) {
	accountRepo, _, svc := newTenantFixture()

	hash, err := auth.HashPassword("right-password")
	require.NoError(t, err)
	account := &model.Account{ID: uuid.New(), Email: "owner@example.com", PasswordHash: hash}

	accountRepo.On("GetByEmail", mock.Anything, "owner@example.com").Return(account, nil)
	accountRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	tests := []struct {
		name string
		req  *model.LoginRequest
	}{
		{name: "Wrong password", req: &model.LoginRequest{Email: "owner@example.com", Password: "wrong"}},
		{name: "Unknown email", req: &model.LoginRequest{Email: "nobody@example.com", Password: "whatever"}},
		{name: "Empty password", req: &model.LoginRequest{Email: "owner@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.req)
			assert.ErrorIs(t, err, model.ErrInvalidCredentials)
		})
	}
}

func TestTenantService_UpdateProfile(t *testing.T) {
	_, tenantRepo, svc := newTenantFixture()
	accountID := uuid.New()
	tenant := &model.Tenant{
		TaxID:     "12345678000199",
		Name:      "Old Name",
		AccountID: accountID,
		Hours:     model.Schedule{},
	}

	newName := "New Name"
	hours := model.Schedule{
		"monday": {Open: true, OpenTime: "18:00", CloseTime: "02:00"},
	}

	tenantRepo.On("GetByAccountID", mock.Anything, accountID).Return(tenant, nil)
	tenantRepo.On("Update", mock.Anything, mock.MatchedBy(func(tn *model.Tenant) bool {
		return tn.Name == "New Name" && tn.Hours["monday"].OpenTime == "18:00"
	})).Return(nil)

	updated, err := svc.UpdateProfile(context.Background(), accountID, &model.TenantUpdateRequest{
		Name:  &newName,
		Hours: &hours,
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	tenantRepo.AssertExpectations(t)
}

func TestTenantService_UpdateProfile_RejectsBadSchedule(t *testing.T) {
	_, tenantRepo, svc := newTenantFixture()
	accountID := uuid.New()
	tenant := &model.Tenant{TaxID: "12345678000199", AccountID: accountID}

	tenantRepo.On("GetByAccountID", mock.Anything, accountID).Return(tenant, nil)

	tests := []struct {
		name  string
		hours model.Schedule
	}{
		{name: "Unknown weekday", hours: model.Schedule{"funday": {Open: true, OpenTime: "09:00", CloseTime: "17:00"}}},
		{name: "Bad clock", hours: model.Schedule{"monday": {Open: true, OpenTime: "9am", CloseTime: "17:00"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours := tt.hours
			_, err := svc.UpdateProfile(context.Background(), accountID, &model.TenantUpdateRequest{Hours: &hours})

			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
		})
	}

	tenantRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
