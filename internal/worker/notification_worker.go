package worker

import (
	"github.com/campus-helpdesk/grievance-service/internal/service"
)

// StartNotificationWorker registers event handlers for notifications.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
