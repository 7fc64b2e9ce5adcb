package worker

import (
	"context"

	"github.com/ijpettengill/jobly/internal/service"
)

// StartNotificationWorker registers notification handlers and delivers events in the
// background until ctx is cancelled.
func StartNotificationWorker(ctx context.Context, notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	go notificationService.Run(ctx)
}
