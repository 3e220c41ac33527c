package worker

import (
	"github.com/spec-kit/lead-capture-service/internal/service"
)

// StartWebhookRelay registers the outbound relay handlers.
func StartWebhookRelay(webhookService *service.WebhookService) {
	if webhookService == nil {
		return
	}
	webhookService.RegisterHandlers()
}
