package main

import (
	"fmt"

	"codeberg.org/talentmatch/server/internal/bootstrap"
	"codeberg.org/talentmatch/server/internal/config"
	"codeberg.org/talentmatch/server/internal/recommender"
)

// creates and configures all service clients
func InitializeServices(cfg *config.Config, holder *recommender.Holder) (*Services, error) {
	emb, err := bootstrap.NewEmbedder(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Services{
		Embedder:    emb,
		Extractor:   bootstrap.NewExtractor(cfg),
		Recommender: recommender.NewService(holder, bootstrap.Options(cfg)),
	}, nil
}
