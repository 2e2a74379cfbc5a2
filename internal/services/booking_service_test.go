package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"lifeline/internal/models"
	"lifeline/internal/utils"
	"lifeline/pkg/logger"
	"lifeline/pkg/payment"
)

type bookingTestDeps struct {
	bookingRepo *mockBookingRepository
	doctorRepo  *mockDoctorRepository
	userRepo    *mockUserRepository
	provider    *mockPaymentProvider
	notifier    *mockNotifier
	locker      *noopLocker
}

func newBookingTestService(t *testing.T) (BookingService, *bookingTestDeps) {
	t.Helper()
	deps := &bookingTestDeps{
		bookingRepo: new(mockBookingRepository),
		doctorRepo:  new(mockDoctorRepository),
		userRepo:    new(mockUserRepository),
		provider:    new(mockPaymentProvider),
		notifier:    new(mockNotifier),
		locker:      &noopLocker{},
	}

	svc := NewBookingService(
		deps.bookingRepo, deps.doctorRepo, deps.userRepo,
		deps.provider, deps.locker, deps.notifier,
		"https://clinic.example.com/checkout-success", "https://clinic.example.com", "inr",
		utils.PremiumUpgradePrice,
		logger.NewNop(),
	)

	return svc, deps
}

func approvedDoctor(id primitive.ObjectID) *models.Doctor {
	return &models.Doctor{
		ID:          id,
		Name:        "Asha Rao",
		IsApproved:  models.ApprovalApproved,
		TicketPrice: 500,
	}
}

func TestBookingService_Checkout_CreatesPendingPaymentBooking(t *testing.T) {
	svc, deps := newBookingTestService(t)
	doctorID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	date := time.Now().AddDate(0, 0, 1)

	deps.doctorRepo.On("GetByID", mock.Anything, doctorID).Return(approvedDoctor(doctorID), nil)
	deps.userRepo.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID, Email: "p@x.com"}, nil)
	deps.bookingRepo.On("CountForDoctorOnDay", mock.Anything, doctorID, mock.Anything).Return(int64(3), nil)
	deps.provider.On("CreateCheckoutSession", mock.Anything, mock.Anything).Return(&payment.CheckoutSession{
		ID:  "cs_test_123",
		URL: "https://pay.example.com/cs_test_123",
	}, nil)
	deps.bookingRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *models.Booking) bool {
		return b.Status == models.BookingPendingPayment && !b.IsPaid && b.SessionID == "cs_test_123"
	})).Return(nil)

	result, err := svc.Checkout(context.Background(), userID, doctorID, date, "10:00")

	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", result.SessionID)
	assert.Equal(t, models.BookingPendingPayment, result.Booking.Status)
	assert.False(t, result.Booking.IsPaid)
	assert.Equal(t, 1, deps.locker.locked)
	deps.bookingRepo.AssertExpectations(t)
}

func TestBookingService_Checkout_RefusesWhenDayFull(t *testing.T) {
	svc, deps := newBookingTestService(t)
	doctorID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	deps.doctorRepo.On("GetByID", mock.Anything, doctorID).Return(approvedDoctor(doctorID), nil)
	deps.userRepo.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID}, nil)
	deps.bookingRepo.On("CountForDoctorOnDay", mock.Anything, doctorID, mock.Anything).Return(int64(utils.DailyBookingCapacity), nil)

	_, err := svc.Checkout(context.Background(), userID, doctorID, time.Now().AddDate(0, 0, 1), "10:00")

	assert.ErrorIs(t, err, ErrSlotsFull)
	deps.provider.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
	deps.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingService_Checkout_TenthBookingStillAllowed(t *testing.T) {
	svc, deps := newBookingTestService(t)
	doctorID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	deps.doctorRepo.On("GetByID", mock.Anything, doctorID).Return(approvedDoctor(doctorID), nil)
	deps.userRepo.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID}, nil)
	deps.bookingRepo.On("CountForDoctorOnDay", mock.Anything, doctorID, mock.Anything).Return(int64(utils.DailyBookingCapacity-1), nil)
	deps.provider.On("CreateCheckoutSession", mock.Anything, mock.Anything).Return(&payment.CheckoutSession{ID: "cs_10", URL: "u"}, nil)
	deps.bookingRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Checkout(context.Background(), userID, doctorID, time.Now().AddDate(0, 0, 1), "16:00")

	assert.NoError(t, err)
}

func TestBookingService_Checkout_RejectsPastDate(t *testing.T) {
	svc, _ := newBookingTestService(t)

	_, err := svc.Checkout(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), time.Now().AddDate(0, 0, -1), "10:00")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestBookingService_Checkout_RejectsUnapprovedDoctor(t *testing.T) {
	svc, deps := newBookingTestService(t)
	doctorID := primitive.NewObjectID()

	deps.doctorRepo.On("GetByID", mock.Anything, doctorID).Return(&models.Doctor{
		ID:         doctorID,
		IsApproved: models.ApprovalPending,
	}, nil)

	_, err := svc.Checkout(context.Background(), primitive.NewObjectID(), doctorID, time.Now().AddDate(0, 0, 1), "10:00")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestBookingService_Checkout_RejectsUnpricedDoctor(t *testing.T) {
	svc, deps := newBookingTestService(t)
	doctorID := primitive.NewObjectID()

	deps.doctorRepo.On("GetByID", mock.Anything, doctorID).Return(&models.Doctor{
		ID:         doctorID,
		Name:       "Asha Rao",
		IsApproved: models.ApprovalApproved,
	}, nil)

	_, err := svc.Checkout(context.Background(), primitive.NewObjectID(), doctorID, time.Now().AddDate(0, 0, 1), "10:00")

	assert.ErrorIs(t, err, ErrValidation)
	deps.provider.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
}

func TestBookingService_Checkout_ProviderFailureKeepsMessage(t *testing.T) {
	svc, deps := newBookingTestService(t)
	doctorID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	deps.doctorRepo.On("GetByID", mock.Anything, doctorID).Return(approvedDoctor(doctorID), nil)
	deps.userRepo.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID, Email: "pat@example.com"}, nil)
	deps.bookingRepo.On("CountForDoctorOnDay", mock.Anything, doctorID, mock.Anything).Return(int64(0), nil)
	deps.provider.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Return(nil, errors.New("Invalid API Key provided"))

	_, err := svc.Checkout(context.Background(), userID, doctorID, time.Now().AddDate(0, 0, 1), "10:00")

	assert.ErrorIs(t, err, ErrExternal)
	assert.Contains(t, err.Error(), "Invalid API Key provided")
}

func TestBookingService_Checkout_UnknownDoctor(t *testing.T) {
	svc, deps := newBookingTestService(t)
	doctorID := primitive.NewObjectID()

	deps.doctorRepo.On("GetByID", mock.Anything, doctorID).Return(nil, mongo.ErrNoDocuments)

	_, err := svc.Checkout(context.Background(), primitive.NewObjectID(), doctorID, time.Now().AddDate(0, 0, 1), "10:00")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingService_Webhook_CompletedMarksPaidAndNotifies(t *testing.T) {
	svc, deps := newBookingTestService(t)
	bookingID := primitive.NewObjectID()
	doctorID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	booking := &models.Booking{
		ID:        bookingID,
		DoctorID:  doctorID,
		UserID:    userID,
		Status:    models.BookingPendingPayment,
		SessionID: "cs_done",
	}

	deps.provider.On("ParseWebhookEvent", mock.Anything, "sig").Return(&payment.WebhookEvent{
		Type:      payment.EventCheckoutCompleted,
		SessionID: "cs_done",
	}, nil)
	deps.bookingRepo.On("GetBySessionID", mock.Anything, "cs_done").Return(booking, nil)
	deps.bookingRepo.On("UpdateStatus", mock.Anything, bookingID, models.BookingPaid, true).Return(nil)
	deps.userRepo.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID, Email: "p@x.com"}, nil)
	deps.doctorRepo.On("GetByID", mock.Anything, doctorID).Return(approvedDoctor(doctorID), nil)
	deps.notifier.On("SendBookingConfirmation", mock.Anything, mock.Anything, mock.Anything).Return()

	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "sig")

	require.NoError(t, err)
	deps.bookingRepo.AssertExpectations(t)
	deps.notifier.AssertCalled(t, "SendBookingConfirmation", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_Webhook_ReplayedCompletionIsIdempotent(t *testing.T) {
	svc, deps := newBookingTestService(t)

	booking := &models.Booking{
		ID:        primitive.NewObjectID(),
		Status:    models.BookingPaid,
		IsPaid:    true,
		SessionID: "cs_replay",
	}

	deps.provider.On("ParseWebhookEvent", mock.Anything, "sig").Return(&payment.WebhookEvent{
		Type:      payment.EventCheckoutCompleted,
		SessionID: "cs_replay",
	}, nil)
	deps.bookingRepo.On("GetBySessionID", mock.Anything, "cs_replay").Return(booking, nil)

	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "sig")

	require.NoError(t, err)
	deps.bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	deps.notifier.AssertNotCalled(t, "SendBookingConfirmation", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_Webhook_ExpiredReleasesSlot(t *testing.T) {
	svc, deps := newBookingTestService(t)
	bookingID := primitive.NewObjectID()

	booking := &models.Booking{
		ID:        bookingID,
		Status:    models.BookingPendingPayment,
		SessionID: "cs_late",
	}

	deps.provider.On("ParseWebhookEvent", mock.Anything, "sig").Return(&payment.WebhookEvent{
		Type:      payment.EventCheckoutExpired,
		SessionID: "cs_late",
	}, nil)
	deps.bookingRepo.On("GetBySessionID", mock.Anything, "cs_late").Return(booking, nil)
	deps.bookingRepo.On("UpdateStatus", mock.Anything, bookingID, models.BookingExpired, false).Return(nil)

	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "sig")

	require.NoError(t, err)
	deps.bookingRepo.AssertExpectations(t)
}

func TestBookingService_Webhook_PremiumUpgradeSetsFlag(t *testing.T) {
	svc, deps := newBookingTestService(t)
	userID := primitive.NewObjectID()

	deps.provider.On("ParseWebhookEvent", mock.Anything, "sig").Return(&payment.WebhookEvent{
		Type:      payment.EventCheckoutCompleted,
		SessionID: "cs_prem",
		Metadata:  map[string]string{"purpose": "premium_upgrade", "user_id": userID.Hex()},
	}, nil)
	deps.userRepo.On("Update", mock.Anything, userID, map[string]interface{}{"is_premium": true}).
		Return(&models.User{ID: userID, IsPremium: true}, nil)

	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "sig")

	require.NoError(t, err)
	deps.userRepo.AssertExpectations(t)
	deps.bookingRepo.AssertNotCalled(t, "GetBySessionID", mock.Anything, mock.Anything)
}

func TestBookingService_PremiumCheckout_RefusesExistingPremium(t *testing.T) {
	svc, deps := newBookingTestService(t)
	userID := primitive.NewObjectID()

	deps.userRepo.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID, IsPremium: true}, nil)

	_, err := svc.PremiumCheckout(context.Background(), userID)

	assert.ErrorIs(t, err, ErrConflict)
	deps.provider.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
}

func TestBookingService_Webhook_UnknownSessionIsNoOp(t *testing.T) {
	svc, deps := newBookingTestService(t)

	deps.provider.On("ParseWebhookEvent", mock.Anything, "sig").Return(&payment.WebhookEvent{
		Type:      payment.EventCheckoutCompleted,
		SessionID: "cs_missing",
	}, nil)
	deps.bookingRepo.On("GetBySessionID", mock.Anything, "cs_missing").Return(nil, mongo.ErrNoDocuments)

	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "sig")

	assert.NoError(t, err)
}

func TestBookingService_Webhook_BadSignature(t *testing.T) {
	svc, deps := newBookingTestService(t)

	deps.provider.On("ParseWebhookEvent", mock.Anything, "bad").Return(nil, payment.ErrInvalidSignature)

	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "bad")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestBookingService_Cancel_OnlyOwner(t *testing.T) {
	svc, deps := newBookingTestService(t)
	bookingID := primitive.NewObjectID()
	owner := primitive.NewObjectID()

	deps.bookingRepo.On("GetByID", mock.Anything, bookingID).Return(&models.Booking{
		ID:     bookingID,
		UserID: owner,
		Status: models.BookingPaid,
		IsPaid: true,
	}, nil)

	_, err := svc.Cancel(context.Background(), bookingID, primitive.NewObjectID())

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestBookingService_Approve_RequiresPaidBooking(t *testing.T) {
	svc, deps := newBookingTestService(t)
	bookingID := primitive.NewObjectID()
	doctorID := primitive.NewObjectID()

	deps.bookingRepo.On("GetByID", mock.Anything, bookingID).Return(&models.Booking{
		ID:       bookingID,
		DoctorID: doctorID,
		Status:   models.BookingPendingPayment,
	}, nil)

	_, err := svc.Approve(context.Background(), bookingID, doctorID)

	assert.ErrorIs(t, err, ErrValidation)
}
