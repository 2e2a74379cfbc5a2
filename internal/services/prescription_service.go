package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"lifeline/internal/models"
	"lifeline/internal/repositories/interfaces"
	"lifeline/internal/utils"
)

type PrescriptionService interface {
	Create(ctx context.Context, doctorID, patientID primitive.ObjectID, items []models.PrescriptionItem) (*models.Prescription, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Prescription, error)
	ListByPatient(ctx context.Context, patientID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Prescription, int64, error)
	ListByDoctor(ctx context.Context, doctorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Prescription, int64, error)
}

type prescriptionService struct {
	prescriptionRepo interfaces.PrescriptionRepository
	userRepo         interfaces.UserRepository
	doctorRepo       interfaces.DoctorRepository
	notifier         NotificationService
}

func NewPrescriptionService(
	prescriptionRepo interfaces.PrescriptionRepository,
	userRepo interfaces.UserRepository,
	doctorRepo interfaces.DoctorRepository,
	notifier NotificationService,
) PrescriptionService {
	return &prescriptionService{
		prescriptionRepo: prescriptionRepo,
		userRepo:         userRepo,
		doctorRepo:       doctorRepo,
		notifier:         notifier,
	}
}

func (s *prescriptionService) Create(ctx context.Context, doctorID, patientID primitive.ObjectID, items []models.PrescriptionItem) (*models.Prescription, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: prescription needs at least one item", ErrValidation)
	}
	for i := range items {
		if strings.TrimSpace(items[i].Medicine) == "" {
			return nil, fmt.Errorf("%w: item %d is missing a medicine name", ErrValidation, i+1)
		}
	}

	patient, err := s.userRepo.GetByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: patient", ErrNotFound)
		}
		return nil, err
	}

	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: doctor", ErrNotFound)
		}
		return nil, err
	}

	prescription := &models.Prescription{
		DoctorID:  doctorID,
		PatientID: patientID,
		Items:     items,
	}

	if err := s.prescriptionRepo.Create(ctx, prescription); err != nil {
		return nil, err
	}

	s.notifier.SendPrescriptionIssued(patient, doctor)

	return prescription, nil
}

func (s *prescriptionService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Prescription, error) {
	prescription, err := s.prescriptionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: prescription", ErrNotFound)
		}
		return nil, err
	}
	return prescription, nil
}

func (s *prescriptionService) ListByPatient(ctx context.Context, patientID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Prescription, int64, error) {
	return s.prescriptionRepo.ListByPatient(ctx, patientID, params)
}

func (s *prescriptionService) ListByDoctor(ctx context.Context, doctorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Prescription, int64, error) {
	return s.prescriptionRepo.ListByDoctor(ctx, doctorID, params)
}
