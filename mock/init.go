package mock_vendor

import (
	"github.com/gin-gonic/gin"

	"github.com/vloex/vloex-go/application/ports/outbound"
)

// Init mounts a fake of the VLOEX API onto the router. pollsToComplete sets
// how many status reads a job survives before completing.
func Init(g *gin.Engine, workerPool outbound.TaskDispatcher, logger outbound.LoggerPort, pollsToComplete int) {
	registry := newJobRegistry(pollsToComplete)
	dispatcher := newWebhookDispatcher(logger, workerPool)
	controller := NewMockVendorController(logger, registry, dispatcher)

	controller.RegisterRoutes(g)
}
