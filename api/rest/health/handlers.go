package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// creates the health handler; 503 until resources are loaded
func Handler(status StatusFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := status()

		if !s.Ready {
			c.JSON(http.StatusServiceUnavailable, Response{
				Status:  statusInitializing,
				Service: serviceName,
				Version: version,
			})

			return
		}

		c.JSON(http.StatusOK, Response{
			Status:        statusHealthy,
			Service:       serviceName,
			Version:       version,
			CatalogueSize: s.CatalogueSize,
			Source:        s.Source,
			Degraded:      s.Degraded,
		})
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
