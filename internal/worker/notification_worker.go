package worker

import (
	"github.com/spec-kit/citizenloop/internal/events"
	"github.com/spec-kit/citizenloop/internal/service"
)

// StartNotificationWorker registers event subscribers: complaint
// notifications and, when a cache is configured, stats invalidation.
func StartNotificationWorker(dispatcher events.Dispatcher, notifications *service.NotificationService, dashboard *service.DashboardService) {
	if dashboard != nil {
		dashboard.RegisterCacheInvalidation(dispatcher)
	}
	if notifications != nil {
		notifications.RegisterHandlers()
	}
}
