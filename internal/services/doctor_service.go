package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"lifeline/internal/models"
	"lifeline/internal/repositories/interfaces"
	"lifeline/internal/utils"
)

type DoctorService interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error)
	ListApproved(ctx context.Context, params *utils.PaginationParams) ([]*models.Doctor, int64, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Doctor, int64, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Doctor, error)
	SetApproval(ctx context.Context, id primitive.ObjectID, status models.ApprovalStatus) (*models.Doctor, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Contact forwards a patient's question to the doctor by email.
	Contact(ctx context.Context, doctorID, fromUserID primitive.ObjectID, subject, message string) error
}

type doctorService struct {
	doctorRepo interfaces.DoctorRepository
	userRepo   interfaces.UserRepository
	notifier   NotificationService
}

func NewDoctorService(doctorRepo interfaces.DoctorRepository, userRepo interfaces.UserRepository, notifier NotificationService) DoctorService {
	return &doctorService{
		doctorRepo: doctorRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

func (s *doctorService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: doctor", ErrNotFound)
		}
		return nil, err
	}
	return doctor, nil
}

func (s *doctorService) ListApproved(ctx context.Context, params *utils.PaginationParams) ([]*models.Doctor, int64, error) {
	return s.doctorRepo.ListApproved(ctx, params)
}

func (s *doctorService) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Doctor, int64, error) {
	return s.doctorRepo.List(ctx, params)
}

// UpdateProfile applies doctor-editable profile fields. The rating
// aggregates and approval status are excluded: those are written by the
// rating recompute and the admin approval flow respectively.
func (s *doctorService) UpdateProfile(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Doctor, error) {
	allowed := map[string]bool{
		"name":           true,
		"photo":          true,
		"gender":         true,
		"phone":          true,
		"specialization": true,
		"bio":            true,
		"about":          true,
		"ticket_price":   true,
		"qualifications": true,
		"experiences":    true,
		"time_slots":     true,
	}
	filtered := make(map[string]interface{})
	for k, v := range updates {
		if allowed[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields supplied", ErrValidation)
	}

	doctor, err := s.doctorRepo.Update(ctx, id, filtered)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: doctor", ErrNotFound)
		}
		return nil, err
	}
	return doctor, nil
}

func (s *doctorService) SetApproval(ctx context.Context, id primitive.ObjectID, status models.ApprovalStatus) (*models.Doctor, error) {
	switch status {
	case models.ApprovalPending, models.ApprovalApproved, models.ApprovalCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown approval status %q", ErrValidation, status)
	}

	doctor, err := s.doctorRepo.Update(ctx, id, map[string]interface{}{"is_approved": status})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: doctor", ErrNotFound)
		}
		return nil, err
	}
	return doctor, nil
}

func (s *doctorService) Contact(ctx context.Context, doctorID, fromUserID primitive.ObjectID, subject, message string) error {
	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("%w: doctor", ErrNotFound)
		}
		return err
	}

	user, err := s.userRepo.GetByID(ctx, fromUserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("%w: user", ErrNotFound)
		}
		return err
	}

	s.notifier.SendDoctorQuery(doctor, user, subject, message)
	return nil
}

func (s *doctorService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.doctorRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("%w: doctor", ErrNotFound)
		}
		return err
	}
	return nil
}
