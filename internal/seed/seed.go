package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
	"github.com/AriaGT/sistema-libreria/internal/app/models/dto"
	"github.com/AriaGT/sistema-libreria/internal/app/services"
	"github.com/AriaGT/sistema-libreria/internal/pkg/apperrors"
)

// Options describes the default data to create
type Options struct {
	AdminFullName string
	AdminEmail    string
	AdminPassword string
	Grades        []string
}

// alreadyExists reports a unique-key rejection, meaning the row was seeded before
func alreadyExists(err error) bool {
	return errors.Is(err, apperrors.ErrConstraintViolation)
}

// CreateDefaultData creates the admin user and the default grades if they don't exist.
// Failures are collected so one bad row does not stop the others.
func CreateDefaultData(ctx context.Context, users *services.UserService, grades services.GradeService, opts Options, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (admin user, grades)...")
	var finalErr error

	if opts.AdminEmail != "" && opts.AdminPassword != "" {
		_, err := users.CreateUser(ctx, &dto.CreateUserRequest{
			FullName: opts.AdminFullName,
			Email:    opts.AdminEmail,
			Role:     string(models.RoleAdmin),
			Password: opts.AdminPassword,
		})
		switch {
		case err == nil:
			lgr.Info().Str("email", opts.AdminEmail).Msg("Default admin user created")
		case alreadyExists(err):
			lgr.Debug().Str("email", opts.AdminEmail).Msg("Default admin user already exists")
		default:
			lgr.Error().Err(err).Msg("Error creating default admin user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for _, name := range opts.Grades {
		_, err := grades.CreateGrade(ctx, &dto.CreateGradeRequest{Name: name})
		switch {
		case err == nil:
			lgr.Info().Str("grade", name).Msg("Default grade created")
		case alreadyExists(err):
			lgr.Debug().Str("grade", name).Msg("Default grade already exists")
		default:
			lgr.Error().Err(err).Str("grade", name).Msg("Error creating default grade")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
