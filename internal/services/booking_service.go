package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"lifeline/internal/models"
	"lifeline/internal/repositories/interfaces"
	"lifeline/internal/utils"
	"lifeline/pkg/cache"
	"lifeline/pkg/logger"
	"lifeline/pkg/payment"
)

type CheckoutResult struct {
	Booking    *models.Booking `json:"booking"`
	SessionID  string          `json:"session_id"`
	SessionURL string          `json:"session_url"`
}

type BookingService interface {
	// Checkout reserves a slot, opens a hosted checkout session and
	// records the booking as pending payment.
	Checkout(ctx context.Context, userID, doctorID primitive.ObjectID, date time.Time, timeSlot string) (*CheckoutResult, error)

	// PremiumCheckout opens a checkout session for the premium account
	// upgrade. The upgrade itself is applied by the payment webhook.
	PremiumCheckout(ctx context.Context, userID primitive.ObjectID) (*CheckoutResult, error)

	// HandleWebhook applies a verified provider event to the record it
	// references. Unknown sessions and replayed events are no-ops.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error

	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	ListByDoctor(ctx context.Context, doctorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)

	Approve(ctx context.Context, id primitive.ObjectID, doctorID primitive.ObjectID) (*models.Booking, error)
	Reject(ctx context.Context, id primitive.ObjectID, doctorID primitive.ObjectID) (*models.Booking, error)
	Cancel(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) (*models.Booking, error)
}

// SlotLocker serializes concurrent slot checks. *cache.RedisClient
// satisfies it.
type SlotLocker interface {
	Lock(ctx context.Context, key, owner string, ttl time.Duration) (func(), error)
}

type bookingService struct {
	bookingRepo  interfaces.BookingRepository
	doctorRepo   interfaces.DoctorRepository
	userRepo     interfaces.UserRepository
	provider     payment.Provider
	locker       SlotLocker
	notifier     NotificationService
	successURL   string
	cancelURL    string
	currency     string
	premiumPrice float64
	logger       *logger.Logger
}

func NewBookingService(
	bookingRepo interfaces.BookingRepository,
	doctorRepo interfaces.DoctorRepository,
	userRepo interfaces.UserRepository,
	provider payment.Provider,
	locker SlotLocker,
	notifier NotificationService,
	successURL, cancelURL, currency string,
	premiumPrice float64,
	log *logger.Logger,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		doctorRepo:   doctorRepo,
		userRepo:     userRepo,
		provider:     provider,
		locker:       locker,
		notifier:     notifier,
		successURL:   successURL,
		cancelURL:    cancelURL,
		currency:     currency,
		premiumPrice: premiumPrice,
		logger:       log,
	}
}

// checkout session purposes carried in provider metadata
const (
	purposeAppointment    = "appointment"
	purposePremiumUpgrade = "premium_upgrade"
)

func slotLockKey(doctorID primitive.ObjectID, date time.Time) string {
	return fmt.Sprintf("booking_slot:%s:%s", doctorID.Hex(), utils.FormatAppointmentDate(date))
}

func (s *bookingService) Checkout(ctx context.Context, userID, doctorID primitive.ObjectID, date time.Time, timeSlot string) (*CheckoutResult, error) {
	if utils.StartOfDay(date).Before(utils.StartOfDay(time.Now())) {
		return nil, fmt.Errorf("%w: appointment date is in the past", ErrValidation)
	}

	doctor, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: doctor", ErrNotFound)
		}
		return nil, err
	}
	if doctor.IsApproved != models.ApprovalApproved {
		return nil, fmt.Errorf("%w: doctor is not accepting appointments", ErrValidation)
	}
	if doctor.TicketPrice <= 0 {
		return nil, fmt.Errorf("%w: doctor has not set a ticket price yet", ErrValidation)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}

	release := s.acquireSlotLock(ctx, doctorID, date)
	if release != nil {
		defer release()
	}

	count, err := s.bookingRepo.CountForDoctorOnDay(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	if count >= utils.DailyBookingCapacity {
		return nil, ErrSlotsFull
	}

	session, err := s.provider.CreateCheckoutSession(ctx, &payment.CheckoutRequest{
		Amount:        doctor.TicketPrice,
		Currency:      s.currency,
		ProductName:   fmt.Sprintf("Appointment with Dr. %s", doctor.Name),
		ProductImage:  doctor.Photo,
		CustomerEmail: user.Email,
		SuccessURL:    s.successURL,
		CancelURL:     s.cancelURL,
		Metadata: map[string]string{
			"purpose":   purposeAppointment,
			"doctor_id": doctorID.Hex(),
			"user_id":   userID.Hex(),
		},
	})
	if err != nil {
		s.logger.WithError(err).WithDoctorID(doctorID).Error("Failed to create checkout session")
		return nil, fmt.Errorf("%w: %v", ErrExternal, err)
	}

	booking := &models.Booking{
		DoctorID:        doctorID,
		UserID:          userID,
		TicketPrice:     doctor.TicketPrice,
		Status:          models.BookingPendingPayment,
		IsPaid:          false,
		AppointmentDate: utils.StartOfDay(date),
		AppointmentTime: timeSlot,
		SessionID:       session.ID,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"booking_id": booking.ID.Hex(),
		"doctor_id":  doctorID.Hex(),
		"session_id": session.ID,
	}).Info("Booking created, awaiting payment")

	return &CheckoutResult{
		Booking:    booking,
		SessionID:  session.ID,
		SessionURL: session.URL,
	}, nil
}

// acquireSlotLock serializes slot checks per doctor and day. When Redis is
// unavailable the check degrades to the unguarded count rather than
// refusing bookings outright.
func (s *bookingService) acquireSlotLock(ctx context.Context, doctorID primitive.ObjectID, date time.Time) func() {
	key := slotLockKey(doctorID, date)
	owner := uuid.New().String()

	for attempt := 0; attempt < 5; attempt++ {
		release, err := s.locker.Lock(ctx, key, owner, utils.SlotLockExpiry)
		if err == nil {
			return release
		}
		if !errors.Is(err, cache.ErrLockNotAcquired) {
			s.logger.WithError(err).WithField("key", key).Warn("Slot lock unavailable, proceeding unguarded")
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(100 * time.Millisecond):
		}
	}

	s.logger.WithField("key", key).Warn("Slot lock contended, proceeding unguarded")
	return nil
}

func (s *bookingService) PremiumCheckout(ctx context.Context, userID primitive.ObjectID) (*CheckoutResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	if user.IsPremium {
		return nil, fmt.Errorf("%w: account is already premium", ErrConflict)
	}

	session, err := s.provider.CreateCheckoutSession(ctx, &payment.CheckoutRequest{
		Amount:        s.premiumPrice,
		Currency:      s.currency,
		ProductName:   "Lifeline Premium Membership",
		CustomerEmail: user.Email,
		SuccessURL:    s.successURL,
		CancelURL:     s.cancelURL,
		Metadata: map[string]string{
			"purpose": purposePremiumUpgrade,
			"user_id": userID.Hex(),
		},
	})
	if err != nil {
		s.logger.WithError(err).WithUserID(userID).Error("Failed to create premium checkout session")
		return nil, fmt.Errorf("%w: %v", ErrExternal, err)
	}

	return &CheckoutResult{SessionID: session.ID, SessionURL: session.URL}, nil
}

func (s *bookingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.ParseWebhookEvent(payload, signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if event.Type == payment.EventIgnored {
		return nil
	}

	if event.Metadata["purpose"] == purposePremiumUpgrade {
		return s.applyPremiumUpgrade(ctx, event)
	}

	booking, err := s.bookingRepo.GetBySessionID(ctx, event.SessionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.WithField("session_id", event.SessionID).Warn("Webhook for unknown session")
			return nil
		}
		return err
	}

	switch event.Type {
	case payment.EventCheckoutCompleted:
		return s.markPaid(ctx, booking)
	case payment.EventCheckoutExpired:
		return s.transition(ctx, booking, models.BookingExpired, false)
	}

	return nil
}

// applyPremiumUpgrade flips the premium flag once payment is confirmed.
// Setting an already-set flag is harmless, so replays need no guard.
func (s *bookingService) applyPremiumUpgrade(ctx context.Context, event *payment.WebhookEvent) error {
	if event.Type != payment.EventCheckoutCompleted {
		return nil
	}

	userID, err := primitive.ObjectIDFromHex(event.Metadata["user_id"])
	if err != nil {
		s.logger.WithField("session_id", event.SessionID).Warn("Premium webhook without a valid user id")
		return nil
	}

	if _, err := s.userRepo.Update(ctx, userID, map[string]interface{}{"is_premium": true}); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.WithUserID(userID).Warn("Premium webhook for unknown user")
			return nil
		}
		return err
	}

	s.logger.WithUserID(userID).Info("Premium upgrade applied")
	return nil
}

func (s *bookingService) markPaid(ctx context.Context, booking *models.Booking) error {
	if booking.Status == models.BookingPaid {
		return nil // replayed webhook
	}
	if !booking.Status.CanTransitionTo(models.BookingPaid) {
		s.logger.WithBookingID(booking.ID).WithField("status", booking.Status).Warn("Ignoring payment confirmation in invalid state")
		return nil
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, models.BookingPaid, true); err != nil {
		return err
	}
	booking.Status = models.BookingPaid
	booking.IsPaid = true

	s.logger.WithBookingID(booking.ID).Info("Booking paid")

	user, uerr := s.userRepo.GetByID(ctx, booking.UserID)
	doctor, derr := s.doctorRepo.GetByID(ctx, booking.DoctorID)
	if uerr == nil && derr == nil {
		s.notifier.SendBookingConfirmation(user, doctor, booking)
	} else {
		s.logger.WithBookingID(booking.ID).Warn("Skipping booking confirmation, party lookup failed")
	}

	return nil
}

func (s *bookingService) transition(ctx context.Context, booking *models.Booking, next models.BookingStatus, isPaid bool) error {
	if booking.Status == next {
		return nil
	}
	if !booking.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: booking cannot move from %s to %s", ErrValidation, booking.Status, next)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, next, isPaid); err != nil {
		return err
	}
	booking.Status = next
	booking.IsPaid = isPaid

	s.logger.WithBookingID(booking.ID).WithField("status", next).Info("Booking status updated")
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: booking", ErrNotFound)
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.ListByUser(ctx, userID, params)
}

func (s *bookingService) ListByDoctor(ctx context.Context, doctorID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.ListByDoctor(ctx, doctorID, params)
}

func (s *bookingService) Approve(ctx context.Context, id primitive.ObjectID, doctorID primitive.ObjectID) (*models.Booking, error) {
	return s.doctorTransition(ctx, id, doctorID, models.BookingApproved)
}

func (s *bookingService) Reject(ctx context.Context, id primitive.ObjectID, doctorID primitive.ObjectID) (*models.Booking, error) {
	return s.doctorTransition(ctx, id, doctorID, models.BookingRejected)
}

func (s *bookingService) doctorTransition(ctx context.Context, id, doctorID primitive.ObjectID, next models.BookingStatus) (*models.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.DoctorID != doctorID {
		return nil, ErrForbidden
	}

	// rejection keeps is_paid as-is, refunds are handled out of band
	if err := s.transition(ctx, booking, next, booking.IsPaid); err != nil {
		return nil, err
	}

	if user, uerr := s.userRepo.GetByID(ctx, booking.UserID); uerr == nil {
		if doctor, derr := s.doctorRepo.GetByID(ctx, booking.DoctorID); derr == nil {
			s.notifier.SendBookingStatusUpdate(user, doctor, booking)
		}
	}

	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}

	if err := s.transition(ctx, booking, models.BookingCancelled, booking.IsPaid); err != nil {
		return nil, err
	}

	return booking, nil
}
