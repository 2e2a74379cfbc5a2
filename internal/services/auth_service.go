package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"lifeline/internal/models"
	"lifeline/internal/repositories/interfaces"
	"lifeline/internal/utils"
	"lifeline/pkg/logger"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
	Photo    string
	Gender   string
}

type AuthResult struct {
	Token string      `json:"token"`
	Role  models.Role `json:"role"`
	// Account is either a *models.User or a *models.Doctor depending on
	// which collection the email resolved against.
	Account interface{} `json:"data"`
}

// AuthService handles registration and login across the two account
// collections: patients in users, doctors in doctors. An email may only
// exist in one of them.
type AuthService interface {
	Register(ctx context.Context, input *RegisterInput) error
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	VerifyEmail(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	userRepo   interfaces.UserRepository
	doctorRepo interfaces.DoctorRepository
	notifier   NotificationService
	jwtSecret  string
	clientURL  string
	logger     *logger.Logger
}

func NewAuthService(
	userRepo interfaces.UserRepository,
	doctorRepo interfaces.DoctorRepository,
	notifier NotificationService,
	jwtSecret, clientURL string,
	log *logger.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		doctorRepo: doctorRepo,
		notifier:   notifier,
		jwtSecret:  jwtSecret,
		clientURL:  clientURL,
		logger:     log,
	}
}

func (s *authService) Register(ctx context.Context, input *RegisterInput) error {
	if len(input.Password) < utils.PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, utils.PasswordMinLength)
	}

	taken, err := s.emailTaken(ctx, input.Email)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: email already registered", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	switch input.Role {
	case models.RoleDoctor:
		doctor := &models.Doctor{
			Name:       input.Name,
			Email:      input.Email,
			Password:   string(hash),
			Photo:      input.Photo,
			Gender:     input.Gender,
			Role:       models.RoleDoctor,
			IsApproved: models.ApprovalPending,
		}
		if err := s.doctorRepo.Create(ctx, doctor); err != nil {
			return err
		}
		// doctors are gated by admin approval, not email verification
		s.notifier.SendWelcomeEmail(input.Email, input.Name)
	default:
		user := &models.User{
			Name:              input.Name,
			Email:             input.Email,
			Password:          string(hash),
			Photo:             input.Photo,
			Gender:            input.Gender,
			Role:              models.RolePatient,
			VerificationToken: utils.GenerateVerificationToken(),
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
		verifyURL := fmt.Sprintf("%s/verify-email/%s", s.clientURL, user.VerificationToken)
		s.notifier.SendVerificationEmail(user.Email, user.Name, verifyURL)
	}

	s.logger.WithField("email", input.Email).Info("Account registered")

	return nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("%w: invalid verification token", ErrValidation)
		}
		return err
	}
	if user.EmailVerified {
		return nil
	}

	if err := s.userRepo.MarkEmailVerified(ctx, user.ID); err != nil {
		return err
	}

	s.notifier.SendWelcomeEmail(user.Email, user.Name)
	s.logger.WithUserID(user.ID).Info("Email verified")

	return nil
}

func (s *authService) emailTaken(ctx context.Context, email string) (bool, error) {
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return false, err
	}

	if _, err := s.doctorRepo.GetByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return false, err
	}

	return false, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if user, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		if !user.EmailVerified {
			return nil, fmt.Errorf("%w: email is not verified", ErrValidation)
		}

		token, err := utils.GenerateToken(user.ID, string(user.Role), user.Email, s.jwtSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to generate token: %w", err)
		}

		return &AuthResult{Token: token, Role: user.Role, Account: user}, nil
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	if doctor, err := s.doctorRepo.GetByEmail(ctx, email); err == nil {
		if bcrypt.CompareHashAndPassword([]byte(doctor.Password), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}

		token, err := utils.GenerateToken(doctor.ID, string(models.RoleDoctor), doctor.Email, s.jwtSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to generate token: %w", err)
		}

		return &AuthResult{Token: token, Role: models.RoleDoctor, Account: doctor}, nil
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	return nil, ErrInvalidCredentials
}

// ForgotPassword issues a reset token valid for one hour. Whether the
// email exists is not revealed to the caller.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	token := utils.GeneratePasswordResetToken()
	expires := time.Now().Add(utils.ResetTokenExpiry)
	resetURL := fmt.Sprintf("%s/reset-password/%s", s.clientURL, token)

	if user, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		if err := s.userRepo.SetResetToken(ctx, user.ID, token, expires); err != nil {
			return err
		}
		s.notifier.SendPasswordResetEmail(user.Email, user.Name, resetURL)
		return nil
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	if doctor, err := s.doctorRepo.GetByEmail(ctx, email); err == nil {
		if err := s.doctorRepo.SetResetToken(ctx, doctor.ID, token, expires); err != nil {
			return err
		}
		s.notifier.SendPasswordResetEmail(doctor.Email, doctor.Name, resetURL)
		return nil
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	s.logger.WithField("email", email).Debug("Password reset requested for unknown email")
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < utils.PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, utils.PasswordMinLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if user, err := s.userRepo.GetByResetToken(ctx, token); err == nil {
		return s.userRepo.ClearResetToken(ctx, user.ID, string(hash))
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	if doctor, err := s.doctorRepo.GetByResetToken(ctx, token); err == nil {
		return s.doctorRepo.ClearResetToken(ctx, doctor.ID, string(hash))
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	return fmt.Errorf("%w: invalid or expired reset token", ErrValidation)
}
