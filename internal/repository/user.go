package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jpbarro/multi-t-inventory/internal/model"
	"github.com/jpbarro/multi-t-inventory/pkg/security"
)

// UserRepository provides user persistence, credential handling and the
// tenant onboarding flows.
type UserRepository struct {
	*Repository[model.User]
}

// NewUserRepository creates a user repository over db.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Repository: NewRepository[model.User](db)}
}

// UserCreate is the input for creating a user directly.
type UserCreate struct {
	Email       string
	FullName    string
	Password    string
	TenantID    *uuid.UUID
	IsSuperuser bool
}

// SignUp is the input for the atomic tenant-plus-first-user flow.
type SignUp struct {
	Email      string
	FullName   string
	Password   string
	TenantName string
}

// UserInvite is the input for inviting a user to an existing tenant.
type UserInvite struct {
	Email    string
	FullName string
}

// UserUpdate carries a partial user patch. Nil fields are left untouched;
// a non-nil Password is re-hashed before storage.
type UserUpdate struct {
	Email    *string
	FullName *string
	TenantID *uuid.UUID
	Password *string
}

// GetByEmail returns the user with the exact email, or (nil, nil) when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB().WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get by email: %w", err)
	}
	return &user, nil
}

// Create hashes the password and persists a new user.
func (r *UserRepository) Create(ctx context.Context, in UserCreate) (*model.User, error) {
	hashed, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:          in.Email,
		FullName:       in.FullName,
		HashedPassword: hashed,
		IsActive:       true,
		IsSuperuser:    in.IsSuperuser,
		TenantID:       in.TenantID,
	}
	if err := r.Repository.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// CreateTenantAndUser creates a tenant and its first user as one atomic
// unit. The user references the tenant's generated id before either row
// is durable; any failure rolls back both.
func (r *UserRepository) CreateTenantAndUser(ctx context.Context, in SignUp) (*model.User, error) {
	hashed, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var user *model.User
	err = r.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenant := &model.Tenant{Name: in.TenantName}
		if err := tx.Create(tenant).Error; err != nil {
			return fmt.Errorf("create tenant: %w", err)
		}

		user = &model.User{
			Email:          in.Email,
			FullName:       in.FullName,
			HashedPassword: hashed,
			IsActive:       true,
			IsSuperuser:    false,
			TenantID:       &tenant.ID,
		}
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// Invite creates a user in the given tenant with a generated temporary
// password. The plaintext is returned exactly once and never stored.
func (r *UserRepository) Invite(ctx context.Context, in UserInvite, tenantID uuid.UUID) (*model.User, string, error) {
	tempPassword, err := security.GenerateTempPassword()
	if err != nil {
		return nil, "", fmt.Errorf("generate temporary password: %w", err)
	}

	user, err := r.Create(ctx, UserCreate{
		Email:    in.Email,
		FullName: in.FullName,
		Password: tempPassword,
		TenantID: &tenantID,
	})
	if err != nil {
		return nil, "", err
	}
	return user, tempPassword, nil
}

// Update applies a partial patch to the user. A provided password is
// hashed and replaces the stored hash; an absent one leaves it untouched.
func (r *UserRepository) Update(ctx context.Context, user *model.User, in UserUpdate) (*model.User, error) {
	fields := map[string]any{}
	if in.Email != nil {
		fields["email"] = *in.Email
	}
	if in.FullName != nil {
		fields["full_name"] = *in.FullName
	}
	if in.TenantID != nil {
		fields["tenant_id"] = *in.TenantID
	}
	if in.Password != nil {
		hashed, err := security.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields["hashed_password"] = hashed
	}

	updated, err := r.Repository.Update(ctx, user, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return updated, nil
}

// Authenticate looks the user up by email and verifies the password.
// On a miss it still performs an equivalent-cost dummy verification so
// "unknown email" and "wrong password" are indistinguishable by timing.
// The active flag is not checked here; that happens at the auth boundary.
func (r *UserRepository) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		security.VerifyDummy(password)
		return nil, nil
	}
	if !security.VerifyPassword(password, user.HashedPassword) {
		return nil, nil
	}
	return user, nil
}
