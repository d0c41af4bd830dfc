package service

import (
	"context"
	"fmt"
	"strings"

	"cabanas-backoffice/internal/cache"
	"cabanas-backoffice/internal/domain"
	"cabanas-backoffice/internal/events"
	"cabanas-backoffice/internal/logger"
	"cabanas-backoffice/internal/repository"
	"cabanas-backoffice/internal/security"

	"github.com/google/uuid"
)

// MessageInput is the public contact form
type MessageInput struct {
	GuestName  string `json:"guest_name" validate:"required,max=200"`
	GuestEmail string `json:"guest_email" validate:"required_without=GuestPhone,omitempty,email"`
	GuestPhone string `json:"guest_phone" validate:"omitempty,max=50"`
	Message    string `json:"message" validate:"required,max=5000"`
	Source     string `json:"source" validate:"omitempty,max=50"`
}

type messageService struct {
	msgRepo    repository.MessageRepository
	identity   security.Identity
	emailSvc   EmailService
	pushSvc    PushService
	publisher  events.Publisher
	cache      cache.Cache
	staffEmail string
}

func NewMessageService(
	msgRepo repository.MessageRepository,
	identity security.Identity,
	emailSvc EmailService,
	pushSvc PushService,
	publisher events.Publisher,
	c cache.Cache,
	staffEmail string,
) MessageService {
	return &messageService{
		msgRepo:    msgRepo,
		identity:   identity,
		emailSvc:   emailSvc,
		pushSvc:    pushSvc,
		publisher:  publisher,
		cache:      c,
		staffEmail: staffEmail,
	}
}

func (s *messageService) SubmitMessage(ctx context.Context, input MessageInput) (*domain.Message, error) {
	logger.EnterMethod("messageService.SubmitMessage", "guestName", input.GuestName)

	input.GuestName = strings.TrimSpace(input.GuestName)
	input.GuestEmail = strings.TrimSpace(input.GuestEmail)
	input.GuestPhone = strings.TrimSpace(input.GuestPhone)
	input.Message = strings.TrimSpace(input.Message)
	if err := validateInput(input); err != nil {
		logger.ExitMethodWithError("messageService.SubmitMessage", err, true)
		return nil, err
	}

	msg := &domain.Message{
		ID:         uuid.NewString(),
		GuestName:  input.GuestName,
		GuestEmail: optional(input.GuestEmail),
		GuestPhone: optional(input.GuestPhone),
		Body:       input.Message,
		Source:     optional(input.Source),
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		err = backendError("save message", err)
		logger.ExitMethodWithError("messageService.SubmitMessage", err, false)
		return nil, err
	}
	invalidateDashboard(ctx, s.cache)

	// Notifications are best effort; the message is already stored
	if s.staffEmail != "" {
		if err := s.emailSvc.SendNewMessageNotification(ctx, s.staffEmail, msg); err != nil {
			logger.Warn("Failed to email staff about new message", "messageID", msg.ID, "error", err)
		}
	}
	title := fmt.Sprintf("New message from %s", msg.GuestName)
	if err := s.pushSvc.NotifyStaff(ctx, title, preview(msg.Body, 120), map[string]string{"message_id": msg.ID}); err != nil {
		logger.Warn("Failed to push new message notification", "messageID", msg.ID, "error", err)
	}
	if err := s.publisher.Publish(ctx, events.MessageReceived, msg.ID, "", msg); err != nil {
		logger.Warn("Failed to publish message event", "messageID", msg.ID, "error", err)
	}

	logger.ExitMethod("messageService.SubmitMessage", "messageID", msg.ID)
	return msg, nil
}

func (s *messageService) ListMessages(ctx context.Context, filter domain.MessageFilter) ([]domain.Message, error) {
	list, err := s.msgRepo.List(ctx, filter)
	if err != nil {
		return nil, backendError("list messages", err)
	}
	return list, nil
}

func (s *messageService) MarkRead(ctx context.Context, id string) error {
	msg, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.msgRepo.UpdateFlags(ctx, id, true, msg.Archived); err != nil {
		return backendError("update message", err)
	}
	invalidateDashboard(ctx, s.cache)
	return nil
}

// Archive sets the read and archived flags. Both default to true.
func (s *messageService) Archive(ctx context.Context, id string, isRead, archived *bool) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	read, arch := true, true
	if isRead != nil {
		read = *isRead
	}
	if archived != nil {
		arch = *archived
	}
	if err := s.msgRepo.UpdateFlags(ctx, id, read, arch); err != nil {
		return backendError("update message", err)
	}
	invalidateDashboard(ctx, s.cache)
	logger.Info("Message archived", "messageID", id, "isRead", read, "archived", arch)
	return nil
}

func (s *messageService) load(ctx context.Context, id string) (*domain.Message, error) {
	if _, err := s.identity.CurrentUserID(ctx); err != nil {
		return nil, err
	}
	msg, err := s.msgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, backendError("load message", err)
	}
	return msg, nil
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
