package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"lifeline/internal/models"
)

func TestPrescriptionService_Create_NotifiesPatient(t *testing.T) {
	prescriptionRepo := new(mockPrescriptionRepository)
	userRepo := new(mockUserRepository)
	doctorRepo := new(mockDoctorRepository)
	notifier := new(mockNotifier)
	doctorID := primitive.NewObjectID()
	patientID := primitive.NewObjectID()

	userRepo.On("GetByID", mock.Anything, patientID).Return(&models.User{ID: patientID, Email: "p@x.com"}, nil)
	doctorRepo.On("GetByID", mock.Anything, doctorID).Return(approvedDoctor(doctorID), nil)
	prescriptionRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Prescription) bool {
		return p.DoctorID == doctorID && p.PatientID == patientID && len(p.Items) == 1
	})).Return(nil)
	notifier.On("SendPrescriptionIssued", mock.Anything, mock.Anything).Return()

	svc := NewPrescriptionService(prescriptionRepo, userRepo, doctorRepo, notifier)
	prescription, err := svc.Create(context.Background(), doctorID, patientID, []models.PrescriptionItem{
		{Medicine: "Amoxicillin", Dosage: "500mg", Frequency: "3x daily", Duration: "7 days"},
	})

	require.NoError(t, err)
	assert.NotNil(t, prescription)
	notifier.AssertCalled(t, "SendPrescriptionIssued", mock.Anything, mock.Anything)
}

func TestPrescriptionService_Create_RejectsEmptyItems(t *testing.T) {
	svc := NewPrescriptionService(new(mockPrescriptionRepository), new(mockUserRepository), new(mockDoctorRepository), new(mockNotifier))

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), nil)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestPrescriptionService_Create_RejectsBlankMedicine(t *testing.T) {
	svc := NewPrescriptionService(new(mockPrescriptionRepository), new(mockUserRepository), new(mockDoctorRepository), new(mockNotifier))

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), []models.PrescriptionItem{
		{Medicine: "   "},
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestPrescriptionService_Create_UnknownPatient(t *testing.T) {
	prescriptionRepo := new(mockPrescriptionRepository)
	userRepo := new(mockUserRepository)
	patientID := primitive.NewObjectID()

	userRepo.On("GetByID", mock.Anything, patientID).Return(nil, mongo.ErrNoDocuments)

	svc := NewPrescriptionService(prescriptionRepo, userRepo, new(mockDoctorRepository), new(mockNotifier))
	_, err := svc.Create(context.Background(), primitive.NewObjectID(), patientID, []models.PrescriptionItem{
		{Medicine: "Amoxicillin"},
	})

	assert.ErrorIs(t, err, ErrNotFound)
	prescriptionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
