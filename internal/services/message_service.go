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
	"lifeline/pkg/logger"
	"lifeline/pkg/ws"
)

type MessageService interface {
	// Send stores a message after trimming it. Blank messages are
	// rejected in both directions.
	Send(ctx context.Context, senderID, receiverID primitive.ObjectID, senderRole models.SenderRole, text string) (*models.Message, error)

	GetConversation(ctx context.Context, a, b primitive.ObjectID) ([]*models.Message, error)

	// GetDoctorPatients lists the public profiles of patients who have
	// messaged the doctor.
	GetDoctorPatients(ctx context.Context, doctorID primitive.ObjectID) ([]*models.PatientProfile, error)
}

type messageService struct {
	messageRepo interfaces.MessageRepository
	userRepo    interfaces.UserRepository
	doctorRepo  interfaces.DoctorRepository
	hub         *ws.Hub
	logger      *logger.Logger
}

func NewMessageService(
	messageRepo interfaces.MessageRepository,
	userRepo interfaces.UserRepository,
	doctorRepo interfaces.DoctorRepository,
	hub *ws.Hub,
	log *logger.Logger,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		doctorRepo:  doctorRepo,
		hub:         hub,
		logger:      log,
	}
}

func (s *messageService) Send(ctx context.Context, senderID, receiverID primitive.ObjectID, senderRole models.SenderRole, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message must not be empty", ErrValidation)
	}
	if len(text) > utils.MaxMessageLength {
		return nil, fmt.Errorf("%w: message too long", ErrValidation)
	}

	// the receiver lives in the opposite collection from the sender
	if senderRole == models.SenderRolePatient {
		if _, err := s.doctorRepo.GetByID(ctx, receiverID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, fmt.Errorf("%w: doctor", ErrNotFound)
			}
			return nil, err
		}
	} else {
		if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, fmt.Errorf("%w: patient", ErrNotFound)
			}
			return nil, err
		}
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		SenderRole: senderRole,
		Message:    text,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.SendToUser(receiverID, "new_message", message)
	}

	return message, nil
}

func (s *messageService) GetConversation(ctx context.Context, a, b primitive.ObjectID) ([]*models.Message, error) {
	return s.messageRepo.GetConversation(ctx, a, b)
}

func (s *messageService) GetDoctorPatients(ctx context.Context, doctorID primitive.ObjectID) ([]*models.PatientProfile, error) {
	ids, err := s.messageRepo.GetPatientSenders(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	return s.userRepo.GetProfilesByIDs(ctx, ids)
}
