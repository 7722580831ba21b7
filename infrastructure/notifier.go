package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"

	"pointdesk/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

const notificationSubject = "pointdesk.notifications.wager_won"

// NATSNotifier delivers win notifications over NATS
type NATSNotifier struct {
	client *NATSClient
}

// NewNATSNotifier creates a new NATS-backed notification sink
func NewNATSNotifier(client *NATSClient) *NATSNotifier {
	return &NATSNotifier{client: client}
}

// NotifyWagerWon publishes a win notice
func (n *NATSNotifier) NotifyWagerWon(ctx context.Context, notice interfaces.WagerWonNotice) error {
	data, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("failed to marshal win notice: %w", err)
	}
	return n.client.Publish(ctx, notificationSubject, data)
}

// EnsureNotificationStream creates the notification stream if needed
func (n *NATSNotifier) EnsureNotificationStream() error {
	return n.client.EnsureStream("pointdesk_notifications", []string{notificationSubject})
}

// LogNotifier records win notifications in the application log. Used when
// no message bus is configured.
type LogNotifier struct{}

// NewLogNotifier creates a log-only notification sink
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// NotifyWagerWon logs the win notice
func (n *LogNotifier) NotifyWagerWon(ctx context.Context, notice interfaces.WagerWonNotice) error {
	log.WithFields(log.Fields{
		"memberID": notice.MemberID,
		"gameID":   notice.GameID,
		"itemID":   notice.ItemID,
		"odds":     notice.Odds,
		"payout":   notice.Payout,
	}).Info("Wager won")
	return nil
}
