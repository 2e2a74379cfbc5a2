package services

import (
	"fmt"

	"lifeline/internal/models"
	"lifeline/internal/utils"
	"lifeline/pkg/logger"
	"lifeline/pkg/mail"
	"lifeline/pkg/sms"
)

// NotificationService delivers transactional email and SMS. Every send is
// best-effort: failures are logged and never propagated, so a broken SMTP
// relay cannot fail a payment webhook.
type NotificationService interface {
	SendWelcomeEmail(email, name string)
	SendVerificationEmail(email, name, verifyURL string)
	SendPasswordResetEmail(email, name, resetURL string)
	SendBookingConfirmation(user *models.User, doctor *models.Doctor, booking *models.Booking)
	SendBookingStatusUpdate(user *models.User, doctor *models.Doctor, booking *models.Booking)
	SendPrescriptionIssued(patient *models.User, doctor *models.Doctor)
	SendDoctorQuery(doctor *models.Doctor, from *models.User, subject, message string)
}

type notificationService struct {
	mailer mail.Mailer
	sender sms.Sender
	logger *logger.Logger
}

func NewNotificationService(mailer mail.Mailer, sender sms.Sender, log *logger.Logger) NotificationService {
	return &notificationService{
		mailer: mailer,
		sender: sender,
		logger: log,
	}
}

func (s *notificationService) SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`
		<h2>Welcome to Lifeline, %s!</h2>
		<p>Your account has been created. You can now browse doctors and book appointments.</p>
		<p>Team Lifeline Hospital</p>`, name)

	s.sendEmail(email, "Welcome to Lifeline", body)
}

func (s *notificationService) SendVerificationEmail(email, name, verifyURL string) {
	body := fmt.Sprintf(`
		<h2>Welcome to Lifeline, %s!</h2>
		<p>Please confirm your email address to activate your account.</p>
		<p><a href="%s">Verify your email</a></p>
		<p>Team Lifeline Hospital</p>`, name, verifyURL)

	s.sendEmail(email, "Verify your email", body)
}

func (s *notificationService) SendPasswordResetEmail(email, name, resetURL string) {
	body := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>We received a request to reset your password. The link below is valid for one hour.</p>
		<p><a href="%s">Reset your password</a></p>
		<p>If you did not request this, you can safely ignore this email.</p>
		<p>Team Lifeline Hospital</p>`, name, resetURL)

	s.sendEmail(email, "Password Reset Request", body)
}

func (s *notificationService) SendBookingConfirmation(user *models.User, doctor *models.Doctor, booking *models.Booking) {
	date := utils.FormatAppointmentDate(booking.AppointmentDate)

	body := fmt.Sprintf(`
		<h2>Appointment Confirmed</h2>
		<p>Hello %s, your payment was received and your appointment is confirmed.</p>
		<ul>
			<li>Doctor: Dr. %s</li>
			<li>Date: %s</li>
			<li>Time: %s</li>
			<li>Fee: %.2f</li>
		</ul>
		<p>Team Lifeline Hospital</p>`,
		user.Name, doctor.Name, date, booking.AppointmentTime, booking.TicketPrice)

	s.sendEmail(user.Email, "Your appointment is confirmed", body)

	if doctor.Phone != "" {
		text := fmt.Sprintf("New paid appointment: %s on %s at %s", user.Name, date, booking.AppointmentTime)
		if err := s.sender.Send(doctor.Phone, text); err != nil {
			s.logger.WithError(err).WithBookingID(booking.ID).Warn("Failed to send booking SMS")
		}
	}
}

func (s *notificationService) SendBookingStatusUpdate(user *models.User, doctor *models.Doctor, booking *models.Booking) {
	date := utils.FormatAppointmentDate(booking.AppointmentDate)

	body := fmt.Sprintf(`
		<h2>Appointment Update</h2>
		<p>Hello %s, your appointment with Dr. %s on %s is now <strong>%s</strong>.</p>
		<p>Team Lifeline Hospital</p>`,
		user.Name, doctor.Name, date, booking.Status)

	s.sendEmail(user.Email, "Appointment status update", body)
}

func (s *notificationService) SendPrescriptionIssued(patient *models.User, doctor *models.Doctor) {
	body := fmt.Sprintf(`
		<h2>New Prescription</h2>
		<p>Hello %s, Dr. %s has issued you a new prescription. Log in to view the details.</p>
		<p>Team Lifeline Hospital</p>`, patient.Name, doctor.Name)

	s.sendEmail(patient.Email, "A new prescription has been issued", body)
}

func (s *notificationService) SendDoctorQuery(doctor *models.Doctor, from *models.User, subject, message string) {
	body := fmt.Sprintf(`
		<h2>Patient Query: %s</h2>
		<p>%s</p>
		<p>From %s (%s)</p>
		<p>Team Lifeline Hospital</p>`, subject, message, from.Name, from.Email)

	s.sendEmail(doctor.Email, "Patient query: "+subject, body)
}

func (s *notificationService) sendEmail(to, subject, body string) {
	if err := s.mailer.Send(to, subject, body); err != nil {
		s.logger.WithError(err).WithField("to", to).Warn("Failed to send email")
	}
}
