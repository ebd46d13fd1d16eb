package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/talentmatch/server/internal/bootstrap"
	"codeberg.org/talentmatch/server/internal/config"
	"codeberg.org/talentmatch/server/internal/logger"
	"codeberg.org/talentmatch/server/internal/recommender"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: recommend <command> [options]")
		fmt.Println("Commands:")
		fmt.Println("  query     - recommend assessments for a job description or URL")
		fmt.Println("  predict   - write Query,Assessment_url predictions for a query CSV")
		fmt.Println("  evaluate  - compute Mean Recall@K against a labeled CSV")
		fmt.Println("\nExamples:")
		fmt.Println("  recommend query --max-duration 40 \"Java developer who collaborates\"")
		fmt.Println("  recommend predict --queries data/queries.csv --out predictions.csv")
		fmt.Println("  recommend evaluate --labels data/train.csv --k 10")
		os.Exit(1)
	}

	command := os.Args[1]

	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := newService(ctx, cfg)
	if err != nil {
		logger.FatalErr(err, "failed to load recommendation resources")
	}

	switch command {
	case "query":
		err = RunQuery(ctx, svc, config.ParseQueryFlags(os.Args[2:]))
	case "predict":
		err = RunPredict(ctx, svc, config.ParsePredictFlags(os.Args[2:]))
	case "evaluate":
		err = RunEvaluate(ctx, svc, config.ParseEvaluateFlags(os.Args[2:]))
	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}

	if err != nil {
		logger.FatalErr(err, "command failed", "command", command)
	}
}

func newService(ctx context.Context, cfg *config.Config) (*recommender.Service, error) {
	emb, err := bootstrap.NewEmbedder(cfg)
	if err != nil {
		return nil, err
	}

	res, err := bootstrap.LoadResources(ctx, cfg, emb, bootstrap.NewExtractor(cfg))
	if err != nil {
		return nil, err
	}

	holder := recommender.NewHolder()
	holder.Swap(res)

	return recommender.NewService(holder, bootstrap.Options(cfg)), nil
}
