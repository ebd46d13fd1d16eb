package main

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/talentmatch/server/internal/config"
	"codeberg.org/talentmatch/server/internal/evaluation"
	"codeberg.org/talentmatch/server/internal/recommender"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// catalogues smaller than this cannot be evaluated meaningfully
const minEvaluableCatalogue = 10

// computes Mean Recall@K over a labeled CSV and prints the report
func RunEvaluate(ctx context.Context, svc *recommender.Service, flags config.EvaluateFlags) error {
	res := svc.Resources()
	if res == nil {
		return recommender.ErrNotReady
	}

	if res.Index.Len() < minEvaluableCatalogue {
		return fmt.Errorf("catalogue too small for evaluation: %d items", res.Index.Len())
	}

	in, err := os.Open(flags.Labels)
	if err != nil {
		return fmt.Errorf("failed to open labels: %w", err)
	}

	defer in.Close()

	labels, err := evaluation.ReadLabels(in)
	if err != nil {
		return err
	}

	report, err := evaluation.Evaluate(ctx, recommendURLs(svc, flags.K), labels, flags.K)
	if err != nil {
		return err
	}

	fmt.Println(renderReport(report, res.Degraded))

	return nil
}

func renderReport(report *evaluation.Report, degraded bool) string {
	rows := make([][]string, len(report.Queries))
	for i, q := range report.Queries {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			truncateName(q.Query),
			fmt.Sprintf("%d/%d", q.RelevantInTopK, q.RelevantCount),
			fmt.Sprintf("%.4f", q.Recall),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorGray)).
		Headers("#", "Query", "Hits", fmt.Sprintf("Recall@%d", report.K)).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})

	parts := []string{
		titleStyle.Render(fmt.Sprintf("Mean Recall@%d: %.4f", report.K, report.Mean)),
		t.Render(),
		infoStyle.Render(fmt.Sprintf("queries: %d  min: %.4f  max: %.4f  failed: %d",
			len(report.Queries), report.Min, report.Max, report.Failed)),
	}

	if degraded {
		parts = append(parts, warnStyle.Render("catalogue is smaller than expected; scores are not representative"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
