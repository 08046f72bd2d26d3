package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mpcbarbosa/SeniorCare/internal/dto"
	"github.com/mpcbarbosa/SeniorCare/internal/metrics"
	"github.com/mpcbarbosa/SeniorCare/internal/model"
	"github.com/mpcbarbosa/SeniorCare/internal/notify"
	"github.com/mpcbarbosa/SeniorCare/internal/repository"
	"github.com/mpcbarbosa/SeniorCare/pkg/clock"
	"github.com/mpcbarbosa/SeniorCare/pkg/logger"
)

// Event is something about a user that caregivers may need to hear about.
type Event struct {
	Type          string
	Severity      string
	UserID        string
	ReferenceType string
	ReferenceID   string
	Subject       string
	Body          string
}

// Dispatcher fans an event out to the user's caregivers. Delivery errors
// are recorded, never returned.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev Event)
}

// NotificationService dispatches events and exposes the delivery log.
type NotificationService interface {
	Dispatcher
	ListLog(ctx context.Context, userID string, limit int) ([]dto.NotificationLogResponse, error)
}

type notificationService struct {
	repo     *repository.Repository
	channels map[string]notify.Channel
	clock    clock.Clock
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewNotificationService registers the available channels by name. A
// channel missing here is skipped even when the alert config enables it.
func NewNotificationService(
	repo *repository.Repository,
	channels []notify.Channel,
	clk clock.Clock,
	m *metrics.Metrics,
	logger *zap.Logger,
) NotificationService {
	byName := make(map[string]notify.Channel, len(channels))
	for _, ch := range channels {
		byName[ch.Name()] = ch
	}
	return &notificationService{
		repo:     repo,
		channels: byName,
		clock:    clk,
		metrics:  m,
		logger:   logger,
	}
}

// ────────────────────── Dispatch ──────────────────────

func (s *notificationService) Dispatch(ctx context.Context, ev Event) {
	cfg, err := s.repo.Alert.GetGlobalConfig(ctx, ev.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("load alert config failed", zap.String("user_id", ev.UserID), zap.Error(err))
			return
		}
		cfg = model.DefaultAlertConfig(ev.UserID)
	}
	if !cfg.IsActive || !cfg.NotifyCaregivers {
		return
	}

	recipients, err := s.recipients(ctx, ev.UserID, cfg)
	if err != nil {
		s.logger.Error("resolve recipients failed", zap.String("user_id", ev.UserID), zap.Error(err))
		return
	}

	channels := s.channelsFor(cfg, ev.Severity)
	if len(recipients) == 0 || len(channels) == 0 {
		return
	}

	msg := notify.Message{
		Event:       ev.Type,
		UserID:      ev.UserID,
		ReferenceID: ev.ReferenceID,
		Subject:     ev.Subject,
		Body:        ev.Body,
		Data:        map[string]any{"severity": ev.Severity, "reference_type": ev.ReferenceType},
	}

	for _, r := range recipients {
		for _, ch := range channels {
			addr := ch.Address(r)
			if addr == "" {
				continue
			}
			entry := &model.NotificationLog{
				UserID:           ev.UserID,
				NotificationType: ev.Type,
				ReferenceType:    ev.ReferenceType,
				ReferenceID:      ev.ReferenceID,
				Message:          ev.Body,
				Channel:          ch.Name(),
				SentTo:           addr,
				Status:           model.DeliverySent,
				SentAt:           s.clock.Now().UTC(),
			}
			if err := ch.Send(ctx, r, msg); err != nil {
				entry.Status = model.DeliveryFailed
				entry.Error = err.Error()
				s.logger.Warn("notification delivery failed",
					zap.String("channel", ch.Name()),
					zap.String("caregiver_id", r.CaregiverID),
					logger.Address("sent_to", addr),
					zap.Error(err))
			}
			s.metrics.IncNotification(ch.Name(), entry.Status)
			if err := s.repo.Notification.Create(ctx, entry); err != nil {
				s.logger.Error("save notification log failed", zap.Error(err))
			}
		}
	}
}

// recipients returns the caregivers to notify. When the config lists
// caregivers, only those are used, in that order; otherwise every linked
// caregiver with alerts enabled.
func (s *notificationService) recipients(ctx context.Context, userID string, cfg *model.AlertConfig) ([]notify.Recipient, error) {
	links, err := s.repo.Caregiver.ListLinksByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.Caregiver, len(links))
	var ordered []string
	for _, l := range links {
		if !l.NotifyAlerts || l.Caregiver == nil {
			continue
		}
		byID[l.CaregiverID] = l.Caregiver
		ordered = append(ordered, l.CaregiverID)
	}
	if len(cfg.Caregivers) > 0 {
		ordered = ordered[:0]
		for _, c := range cfg.Caregivers {
			ordered = append(ordered, c.CaregiverID)
		}
	}

	out := make([]notify.Recipient, 0, len(ordered))
	for _, id := range ordered {
		cg, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, notify.Recipient{
			CaregiverID: cg.CaregiverID,
			Name:        cg.Name,
			Phone:       cg.Phone,
			Email:       cg.Email,
		})
	}
	return out, nil
}

// channelsFor returns the enabled channels in push, sms, email order.
// Informational events only go out as push.
func (s *notificationService) channelsFor(cfg *model.AlertConfig, severity string) []notify.Channel {
	wanted := []struct {
		name string
		on   bool
	}{
		{model.ChannelPush, cfg.NotifyViaPush},
		{model.ChannelSMS, cfg.NotifyViaSMS && severity != model.SeverityInfo},
		{model.ChannelEmail, cfg.NotifyViaEmail && severity != model.SeverityInfo},
	}
	var out []notify.Channel
	for _, w := range wanted {
		if ch, ok := s.channels[w.name]; ok && w.on {
			out = append(out, ch)
		}
	}
	return out
}

// ────────────────────── Log ──────────────────────

func (s *notificationService) ListLog(ctx context.Context, userID string, limit int) ([]dto.NotificationLogResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	logs, err := s.repo.Notification.ListByUser(ctx, userID, limit)
	if err != nil {
		s.logger.Error("list notification log failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.NotificationLogResponse, 0, len(logs))
	for _, l := range logs {
		result = append(result, dto.NotificationLogResponse{
			ID:               l.NotificationID,
			NotificationType: l.NotificationType,
			ReferenceType:    l.ReferenceType,
			ReferenceID:      l.ReferenceID,
			Message:          l.Message,
			Channel:          l.Channel,
			SentTo:           l.SentTo,
			Status:           l.Status,
			Error:            l.Error,
			SentAt:           dto.FormatTime(l.SentAt),
		})
	}
	return result, nil
}
