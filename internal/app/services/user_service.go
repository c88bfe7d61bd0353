package services

import (
	"context"
	"fmt"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
	"github.com/AriaGT/sistema-libreria/internal/app/models/dto"
	"github.com/AriaGT/sistema-libreria/internal/app/repositories"
	"github.com/AriaGT/sistema-libreria/internal/pkg/apperrors"
	"github.com/AriaGT/sistema-libreria/internal/pkg/auth"
	"github.com/AriaGT/sistema-libreria/internal/pkg/logger"
	"github.com/AriaGT/sistema-libreria/internal/pkg/metrics"
)

// PasswordHasher hashes and verifies plaintext passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// checkPasswordLength rejects passwords the hasher would truncate or refuse
func checkPasswordLength(password string) error {
	if len([]byte(password)) > auth.MaxPasswordBytes {
		return apperrors.NewValidationError(fmt.Sprintf("Password must be at most %d bytes", auth.MaxPasswordBytes))
	}
	return nil
}

// UserService handles the user lifecycle
type UserService struct {
	store  repositories.Store
	hasher PasswordHasher
}

// NewUserService creates a new UserService
func NewUserService(store repositories.Store, hasher PasswordHasher) *UserService {
	return &UserService{store: store, hasher: hasher}
}

// CreateUser hashes the password and stores a new user
func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	// Validate password
	if err := checkPasswordLength(req.Password); err != nil {
		return nil, err
	}
	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: digest,
		Role:         models.Role(req.Role),
	}
	err = atomicWrite(ctx, s.store, rejectedAs("Email already registered", "create user"), func(ctx context.Context, r *repositories.Repositories) error {
		if err := r.Users.Create(ctx, user); err != nil {
			return storeError(err, "Email already registered", "create user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordMutation("user", "create")
	return user, nil
}

// GetUsers lists all users by ascending id
func (s *UserService) GetUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := s.store.Atomic(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		users, err = r.Users.List(ctx)
		return err
	})
	return users, err
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user *models.User
	err := s.store.Atomic(ctx, func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		user, err = requireUser(ctx, r, id, msgUserNotFound)
		return err
	})
	return user, err
}

// UpdateUser applies the supplied fields; a new password is re-hashed
func (s *UserService) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	var digest string
	if req.Password != nil {
		if err := checkPasswordLength(*req.Password); err != nil {
			return nil, err
		}
		var err error
		if digest, err = s.hasher.Hash(*req.Password); err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
	}

	var user *models.User
	err := atomicWrite(ctx, s.store, rejectedAs("Unable to update user due to constraints", "update user"), func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		if user, err = requireUser(ctx, r, id, msgUserNotFound); err != nil {
			return err
		}

		if req.FullName != nil {
			user.FullName = *req.FullName
		}
		if req.Email != nil {
			user.Email = *req.Email
		}
		if req.Role != nil {
			user.Role = models.Role(*req.Role)
		}
		if digest != "" {
			user.PasswordHash = digest
		}

		if err := r.Users.Update(ctx, user); err != nil {
			return writeError(err, msgUserNotFound, "Unable to update user due to constraints", "update user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordMutation("user", "update")
	return user, nil
}

// DeleteUser removes a user that no course or book references, after
// dropping its enrollments. All of it happens in one unit of work.
func (s *UserService) DeleteUser(ctx context.Context, id int64) (*models.User, error) {
	var (
		user    *models.User
		removed int64
	)
	err := atomicWrite(ctx, s.store, rejectedAs("Unable to delete user due to constraints", "delete user"), func(ctx context.Context, r *repositories.Repositories) error {
		var err error
		if user, err = requireUser(ctx, r, id, msgUserNotFound); err != nil {
			return err
		}

		teaches, err := r.Courses.ExistsByTeacher(ctx, id)
		if err != nil {
			return fmt.Errorf("error checking courses of user: %w", err)
		}
		if teaches {
			return apperrors.NewValidationError("User is assigned as teacher to one or more courses")
		}

		created, err := r.Books.ExistsByCreator(ctx, id)
		if err != nil {
			return fmt.Errorf("error checking books of user: %w", err)
		}
		if created {
			return apperrors.NewValidationError("User is referenced as creator of books")
		}

		if removed, err = r.Enrollments.DeleteByStudent(ctx, id); err != nil {
			return storeError(err, "Unable to delete user due to constraints", "delete user enrollments")
		}

		if err := r.Users.Delete(ctx, id); err != nil {
			return writeError(err, msgUserNotFound, "Unable to delete user due to constraints", "delete user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info().Int64("userID", id).Int64("enrollmentsRemoved", removed).Msg("User deleted")
	metrics.RecordMutation("user", "delete")
	return user, nil
}
