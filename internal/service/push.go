package service

import (
	"context"
	"fmt"

	"cabanas-backoffice/internal/logger"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type pushService struct {
	client *messaging.Client
	topic  string
}

// NewPushService sends staff notifications through Firebase Cloud Messaging
func NewPushService(ctx context.Context, credentialsFile, topic string) (PushService, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize messaging client: %w", err)
	}
	return &pushService{client: client, topic: topic}, nil
}

func (s *pushService) NotifyStaff(ctx context.Context, title, body string, data map[string]string) error {
	logger.ExternalServiceCall("fcm", "Send", "topic", s.topic, "title", title)
	id, err := s.client.Send(ctx, &messaging.Message{
		Topic: s.topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})
	logger.ExternalServiceResult("fcm", "Send", err, "topic", s.topic, "messageID", id)
	if err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	return nil
}

type noopPushService struct{}

// NewNoopPushService is used when Firebase is not configured
func NewNoopPushService() PushService {
	return noopPushService{}
}

func (noopPushService) NotifyStaff(ctx context.Context, title, body string, data map[string]string) error {
	logger.Debug("Push notifications disabled", "title", title)
	return nil
}
