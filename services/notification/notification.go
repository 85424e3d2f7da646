package notification

import (
	"context"
	"fmt"

	profileRepo "havenstay/database/repository/profile"

	"firebase.google.com/go/v4/messaging"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// NotificationService sends push messages to a profile's registered device.
type NotificationService interface {
	SendPushNotification(ctx context.Context, profileID, title, body string, data map[string]string) error
}

// Sender is the subset of the FCM client used here.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMNotificationService is the production implementation.
type FCMNotificationService struct {
	profiles profileRepo.ProfileRepository
	client   Sender
	logger   *zap.Logger
}

func NewFCMNotificationService(profiles profileRepo.ProfileRepository, client Sender, logger *zap.Logger) (*FCMNotificationService, error) {
	if profiles == nil || client == nil {
		return nil, fmt.Errorf("notification service initialization error: profile repository or FCM client is nil")
	}
	return &FCMNotificationService{profiles: profiles, client: client, logger: logger}, nil
}

// SendPushNotification looks up a profile's FCM token and sends a push.
// Profiles without a token are skipped silently.
func (s *FCMNotificationService) SendPushNotification(ctx context.Context, profileID, title, body string, data map[string]string) error {
	p, err := s.profiles.GetByIDWithProjection(ctx, profileID, bson.M{"id": 1, "fcmToken": 1})
	if err != nil {
		return fmt.Errorf("SendPushNotification: could not find profile %s: %w", profileID, err)
	}
	if p.FCMToken == "" {
		s.logger.Debug("SendPushNotification: profile has no FCM token", zap.String("profile", profileID))
		return nil
	}

	msg := &messaging.Message{
		Token: p.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "bookings",
				Sound:     "default",
			},
		},
	}

	response, err := s.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendPushNotification: failed to send FCM message: %w", err)
	}
	s.logger.Info("push sent", zap.String("profile", profileID), zap.String("message", response))
	return nil
}

// LogNotificationService only logs. It stands in when FCM is not configured.
type LogNotificationService struct {
	Logger *zap.Logger
}

func (s LogNotificationService) SendPushNotification(_ context.Context, profileID, title, body string, _ map[string]string) error {
	s.Logger.Info("push skipped, FCM disabled", zap.String("profile", profileID), zap.String("title", title), zap.String("body", body))
	return nil
}
