package main

import (
	"codeberg.org/talentmatch/server/api/rest/health"
	"codeberg.org/talentmatch/server/api/rest/recommend"
	apierrors "codeberg.org/talentmatch/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware(server.config.CORSOrigins))
	router.Use(RequestIDMiddleware())

	router.GET("/health", health.Handler(server.healthStatus))

	// unversioned path kept for existing clients
	recommend.RegisterRoutes(router, server.services.Recommender)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		recommend.RegisterRoutes(v1, server.services.Recommender)
	}

	router.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c, "route")
	})
}

func (s *Server) healthStatus() health.Status {
	res := s.holder.Load()
	if res == nil {
		return health.Status{}
	}

	return health.Status{
		Ready:         true,
		CatalogueSize: res.Index.Len(),
		Source:        res.Source,
		Degraded:      res.Degraded,
	}
}
