package config

import (
	"flag"
	"strings"
)

// parses CLI flags for the ingester catalogue subcommand
func ParseCatalogueFlags(args []string) Flags {
	fs := flag.NewFlagSet("catalogue", flag.ExitOnError)
	path := fs.String("path", defaultCataloguePath, "path to catalogue CSV file")
	clearFlag := fs.Bool("clear", false, "clear existing catalogue rows before ingesting")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{Path: *path, Clear: *clearFlag}
}

// parses CLI flags for the predict subcommand
func ParsePredictFlags(args []string) PredictFlags {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	queries := fs.String("queries", "data/queries.csv", "CSV file with a Query column")
	out := fs.String("out", "predictions.csv", "output CSV path")
	topK := fs.Int("k", defaultTopK, "recommendations per query")
	concurrency := fs.Int("concurrency", 4, "queries processed in parallel")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return PredictFlags{Queries: *queries, Out: *out, TopK: *topK, Concurrency: *concurrency}
}

// parses CLI flags for the evaluate subcommand
func ParseEvaluateFlags(args []string) EvaluateFlags {
	fs := flag.NewFlagSet("evaluate", flag.ExitOnError)
	labels := fs.String("labels", "data/train.csv", "CSV file with Query and Assessment_url columns")
	k := fs.Int("k", defaultTopK, "cut-off for Recall@K")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return EvaluateFlags{Labels: *labels, K: *k}
}

// parses CLI flags for the query subcommand; remaining args form the query
func ParseQueryFlags(args []string) QueryFlags {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	maxDuration := fs.Int("max-duration", -1, "maximum assessment duration in minutes")
	preferredType := fs.String("type", "", "preferred test type, e.g. \"Technical Skill\"")
	raw := fs.Bool("raw", false, "show the balanced selection without reconciling to the result bounds")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return QueryFlags{
		Query:         strings.Join(fs.Args(), " "),
		MaxDuration:   *maxDuration,
		PreferredType: *preferredType,
		Raw:           *raw,
	}
}
