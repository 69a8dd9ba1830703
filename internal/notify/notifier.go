// internal/notify/notifier.go

// Package notify fans out gate assignment events to the operations
// team over SNS and email. Notification failures never fail the
// assignment itself.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VivekSamant23/Gate-Reassignment/internal/common/config"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/logger"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/metrics"
	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
)

// TopicPublisher is the SNS side of a notifier.
type TopicPublisher interface {
	PublishToTopic(ctx context.Context, topicARN, subject, message string) error
}

// EmailSender is the SES side of a notifier.
type EmailSender interface {
	SendPlainEmail(ctx context.Context, from string, to []string, subject, body string) error
}

// AssignmentEvent is the published payload for one confirmed
// assignment.
type AssignmentEvent struct {
	NotificationID string    `json:"notification_id"`
	FlightID       int64     `json:"flight_id"`
	FlightNumber   string    `json:"flight_number"`
	GateNumber     string    `json:"gate_number"`
	PreviousGate   string    `json:"previous_gate,omitempty"`
	ScheduledDate  string    `json:"scheduled_date"`
	ScheduledTime  string    `json:"scheduled_time"`
	AssignedAt     time.Time `json:"assigned_at"`
}

// Notifier publishes assignment events. Either channel may be absent;
// a nil publisher or empty recipient list simply skips that channel.
type Notifier struct {
	topics   TopicPublisher
	email    EmailSender
	topicARN string
	from     string
	opsList  []string
	logger   logger.Logger
}

func NewNotifier(topics TopicPublisher, email EmailSender, cfg config.NotificationConfig, log logger.Logger) *Notifier {
	opsList := []string{}
	for _, addr := range strings.Split(cfg.OpsEmailList, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			opsList = append(opsList, addr)
		}
	}
	return &Notifier{
		topics:   topics,
		email:    email,
		topicARN: cfg.SNSTopicARN,
		from:     cfg.EmailFrom,
		opsList:  opsList,
		logger:   log.WithFields(map[string]interface{}{"component": "assignment-notifier"}),
	}
}

// GateAssigned notifies both channels about a confirmed assignment.
// Each channel failure is logged and counted; neither stops the other.
func (n *Notifier) GateAssigned(ctx context.Context, flight *models.Flight, gateNumber, previousGate string) {
	if n == nil {
		return
	}

	event := AssignmentEvent{
		NotificationID: uuid.New().String(),
		FlightID:       flight.ID,
		FlightNumber:   flight.FlightNumber,
		GateNumber:     gateNumber,
		PreviousGate:   previousGate,
		ScheduledDate:  flight.ScheduledDate,
		ScheduledTime:  flight.ScheduledTime,
		AssignedAt:     time.Now().UTC(),
	}

	subject := fmt.Sprintf("Gate assignment: %s -> %s", flight.FlightNumber, gateNumber)

	n.publishTopic(ctx, subject, event)
	n.sendEmail(ctx, subject, event)
}

func (n *Notifier) publishTopic(ctx context.Context, subject string, event AssignmentEvent) {
	if n.topics == nil || n.topicARN == "" {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	if err := n.topics.PublishToTopic(ctx, n.topicARN, subject, string(payload)); err != nil {
		metrics.NotificationsSent.WithLabelValues("sns", "error").Inc()
		n.logger.Warn("SNS publish failed", map[string]interface{}{
			"notificationId": event.NotificationID,
			"error":          err.Error(),
		})
		return
	}
	metrics.NotificationsSent.WithLabelValues("sns", "ok").Inc()
}

func (n *Notifier) sendEmail(ctx context.Context, subject string, event AssignmentEvent) {
	if n.email == nil || n.from == "" || len(n.opsList) == 0 {
		return
	}

	body := fmt.Sprintf(
		"Flight %s (%s %s) has been assigned to gate %s.",
		event.FlightNumber, event.ScheduledDate, event.ScheduledTime, event.GateNumber)
	if event.PreviousGate != "" {
		body += fmt.Sprintf(" Previous gate: %s.", event.PreviousGate)
	}
	body += fmt.Sprintf("\n\nNotification ID: %s", event.NotificationID)

	if err := n.email.SendPlainEmail(ctx, n.from, n.opsList, subject, body); err != nil {
		metrics.NotificationsSent.WithLabelValues("email", "error").Inc()
		n.logger.Warn("assignment email failed", map[string]interface{}{
			"notificationId": event.NotificationID,
			"error":          err.Error(),
		})
		return
	}
	metrics.NotificationsSent.WithLabelValues("email", "ok").Inc()
}
