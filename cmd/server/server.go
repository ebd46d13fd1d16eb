package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codeberg.org/talentmatch/server/internal/bootstrap"
	"codeberg.org/talentmatch/server/internal/config"
	"codeberg.org/talentmatch/server/internal/logger"
	"codeberg.org/talentmatch/server/internal/recommender"
	"github.com/gin-gonic/gin"
)

// bounds one catalogue load including embedding every item
const loadTimeout = 10 * time.Minute

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	holder := recommender.NewHolder()

	services, err := InitializeServices(cfg, holder)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		config:   cfg,
		services: services,
		holder:   holder,
		router:   router,
	}

	RegisterRoutes(router, server)

	return server, nil
}

// builds fresh resources and publishes them; the previous set keeps serving
// in-flight requests until they finish
func (s *Server) LoadResources(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	start := time.Now()

	res, err := bootstrap.LoadResources(ctx, s.config, s.services.Embedder, s.services.Extractor)
	if err != nil {
		return fmt.Errorf("failed to load resources: %w", err)
	}

	previous := s.holder.Swap(res)

	logger.Info("recommendation resources ready",
		"items", res.Index.Len(),
		"source", res.Source,
		"degraded", res.Degraded,
		"reload", previous != nil,
		"duration", time.Since(start),
	)

	return nil
}

// runs the startup load; an error means the process must not keep serving.
// A load interrupted by shutdown is not an error.
func (s *Server) LoadInitialResources(ctx context.Context) error {
	err := s.LoadResources(ctx)
	if err != nil && errors.Is(ctx.Err(), context.Canceled) {
		logger.Info("initial resource load interrupted by shutdown")
		return nil
	}

	return err
}
