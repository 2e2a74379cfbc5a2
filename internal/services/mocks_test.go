package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lifeline/internal/models"
	"lifeline/internal/utils"
	"lifeline/pkg/payment"
)

// --- Mock Repositories ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.User, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.UserWithBookingCount, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]*models.UserWithBookingCount), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepository) GetByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) MarkEmailVerified(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepository) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expires time.Time) error {
	args := m.Called(ctx, id, token, expires)
	return args.Error(0)
}

func (m *mockUserRepository) ClearResetToken(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	args := m.Called(ctx, id, hashedPassword)
	return args.Error(0)
}

func (m *mockUserRepository) GetProfilesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.PatientProfile, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PatientProfile), args.Error(1)
}

type mockDoctorRepository struct {
	mock.Mock
}

func (m *mockDoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *mockDoctorRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *mockDoctorRepository) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *mockDoctorRepository) GetByResetToken(ctx context.Context, token string) (*models.Doctor, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *mockDoctorRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Doctor, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *mockDoctorRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockDoctorRepository) ListApproved(ctx context.Context, params *utils.PaginationParams) ([]*models.Doctor, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]*models.Doctor), args.Get(1).(int64), args.Error(2)
}

func (m *mockDoctorRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Doctor, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]*models.Doctor), args.Get(1).(int64), args.Error(2)
}

func (m *mockDoctorRepository) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expires time.Time) error {
	args := m.Called(ctx, id, token, expires)
	return args.Error(0)
}

func (m *mockDoctorRepository) ClearResetToken(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	args := m.Called(ctx, id, hashedPassword)
	return args.Error(0)
}

func (m *mockDoctorRepository) UpdateRatingStats(ctx context.Context, id primitive.ObjectID, stats *models.RatingStats) error {
	args := m.Called(ctx, id, stats)
	return args.Error(0)
}

type mockBookingRepository struct {
	mock.Mock
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockBookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockBookingRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.Booking, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus, isPaid bool) error {
	args := m.Called(ctx, id, status, isPaid)
	return args.Error(0)
}

func (m *mockBookingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockBookingRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]*models.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *mockBookingRepository) ListByDoctor(ctx context.Context, doctorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	args := m.Called(ctx, doctorID, params)
	return args.Get(0).([]*models.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *mockBookingRepository) CountForDoctorOnDay(ctx context.Context, doctorID primitive.ObjectID, date time.Time) (int64, error) {
	args := m.Called(ctx, doctorID, date)
	return args.Get(0).(int64), args.Error(1)
}

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *mockReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepository) ListByDoctor(ctx context.Context, doctorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReviewWithAuthor, int64, error) {
	args := m.Called(ctx, doctorID, params)
	return args.Get(0).([]*models.ReviewWithAuthor), args.Get(1).(int64), args.Error(2)
}

func (m *mockReviewRepository) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.ReviewWithAuthor, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]*models.ReviewWithAuthor), args.Get(1).(int64), args.Error(2)
}

func (m *mockReviewRepository) AggregateRatingStats(ctx context.Context, doctorID primitive.ObjectID) (*models.RatingStats, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RatingStats), args.Error(1)
}

type mockMessageRepository struct {
	mock.Mock
}

func (m *mockMessageRepository) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *mockMessageRepository) GetConversation(ctx context.Context, a, b primitive.ObjectID) ([]*models.Message, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}

func (m *mockMessageRepository) GetPatientSenders(ctx context.Context, doctorID primitive.ObjectID) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]primitive.ObjectID), args.Error(1)
}

// --- Mock Collaborators ---

type mockPaymentProvider struct {
	mock.Mock
}

func (m *mockPaymentProvider) Name() string {
	return "mock"
}

func (m *mockPaymentProvider) CreateCheckoutSession(ctx context.Context, req *payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutSession), args.Error(1)
}

func (m *mockPaymentProvider) ParseWebhookEvent(payload []byte, signature string) (*payment.WebhookEvent, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.WebhookEvent), args.Error(1)
}

type mockPrescriptionRepository struct {
	mock.Mock
}

func (m *mockPrescriptionRepository) Create(ctx context.Context, prescription *models.Prescription) error {
	args := m.Called(ctx, prescription)
	return args.Error(0)
}

func (m *mockPrescriptionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Prescription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prescription), args.Error(1)
}

func (m *mockPrescriptionRepository) ListByPatient(ctx context.Context, patientID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Prescription, int64, error) {
	args := m.Called(ctx, patientID, params)
	return args.Get(0).([]*models.Prescription), args.Get(1).(int64), args.Error(2)
}

func (m *mockPrescriptionRepository) ListByDoctor(ctx context.Context, doctorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Prescription, int64, error) {
	args := m.Called(ctx, doctorID, params)
	return args.Get(0).([]*models.Prescription), args.Get(1).(int64), args.Error(2)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendWelcomeEmail(email, name string) {
	m.Called(email, name)
}

func (m *mockNotifier) SendVerificationEmail(email, name, verifyURL string) {
	m.Called(email, name, verifyURL)
}

func (m *mockNotifier) SendPrescriptionIssued(patient *models.User, doctor *models.Doctor) {
	m.Called(patient, doctor)
}

func (m *mockNotifier) SendDoctorQuery(doctor *models.Doctor, from *models.User, subject, message string) {
	m.Called(doctor, from, subject, message)
}

func (m *mockNotifier) SendPasswordResetEmail(email, name, resetURL string) {
	m.Called(email, name, resetURL)
}

func (m *mockNotifier) SendBookingConfirmation(user *models.User, doctor *models.Doctor, booking *models.Booking) {
	m.Called(user, doctor, booking)
}

func (m *mockNotifier) SendBookingStatusUpdate(user *models.User, doctor *models.Doctor, booking *models.Booking) {
	m.Called(user, doctor, booking)
}

// noopLocker always grants the lock immediately.
type noopLocker struct {
	locked int
}

func (l *noopLocker) Lock(ctx context.Context, key, owner string, ttl time.Duration) (func(), error) {
	l.locked++
	return func() {}, nil
}
