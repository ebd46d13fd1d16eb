package main

import (
	"codeberg.org/talentmatch/server/internal/config"
	"codeberg.org/talentmatch/server/internal/embedder"
	"codeberg.org/talentmatch/server/internal/extractor"
	"codeberg.org/talentmatch/server/internal/recommender"
	"github.com/gin-gonic/gin"
)

// holds all dependencies and state for the API server
type Server struct {
	config   *config.Config
	services *Services
	holder   *recommender.Holder
	router   *gin.Engine
}

// holds the long-lived clients requests share
type Services struct {
	Embedder    embedder.Embedder
	Extractor   extractor.Extractor
	Recommender *recommender.Service
}
