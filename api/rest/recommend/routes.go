package recommend

import "github.com/gin-gonic/gin"

// registers recommendation routes
func RegisterRoutes(router gin.IRoutes, svc Recommender) {
	router.POST("/recommend", Handler(svc))
}
