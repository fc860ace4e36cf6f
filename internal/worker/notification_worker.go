package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/service"
)

// StartNotificationWorker registers notification handlers and, when a Redis
// publisher is supplied, the event fan-out.
func StartNotificationWorker(dispatcher events.Dispatcher, notificationService *service.NotificationService, publisher *events.RedisPublisher, logger *zap.Logger) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if publisher != nil && dispatcher != nil {
		publisher.SubscribeAll(dispatcher)
		if logger != nil {
			logger.Info("event fan-out to redis enabled")
		}
	}
}
