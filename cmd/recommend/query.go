package main

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/talentmatch/server/internal/config"
	"codeberg.org/talentmatch/server/internal/recommender"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const maxNameWidth = 48

// recommends for one query and prints a table
func RunQuery(ctx context.Context, svc *recommender.Service, flags config.QueryFlags) error {
	if strings.TrimSpace(flags.Query) == "" {
		return fmt.Errorf("query text is required")
	}

	req := recommender.Request{Query: flags.Query, PreferredType: flags.PreferredType}
	if flags.MaxDuration >= 0 {
		req.MaxDuration = &flags.MaxDuration
	}

	var (
		result *recommender.Result
		err    error
	)

	if flags.Raw {
		req.TopK = svc.Options().DefaultTopK
		result, err = recommender.Recommend(ctx, svc.Resources(), req, svc.Options())
	} else {
		result, err = svc.Recommend(ctx, req)
	}

	if err != nil {
		return err
	}

	fmt.Println(renderResult(result))

	return nil
}

func renderResult(result *recommender.Result) string {
	rows := make([][]string, len(result.Recommendations))
	for i, rec := range result.Recommendations {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			truncateName(rec.Item.Name),
			strings.Join(rec.Item.Categories, ", "),
			fmt.Sprintf("%d", rec.Item.DurationMinutes),
			fmt.Sprintf("%.4f", rec.Score),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorGray)).
		Headers("#", "Assessment", "Test type", "Minutes", "Score").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})

	needed := "none (pure relevance)"
	if len(result.Needed) > 0 {
		needed = strings.Join(result.Needed, ", ")
	}

	trace := make([]string, len(result.Trace))
	for i, s := range result.Trace {
		trace[i] = string(s)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("%d recommendations", len(result.Recommendations))),
		t.Render(),
		infoStyle.Render("needed categories: "+needed),
		infoStyle.Render("path: "+strings.Join(trace, " → ")),
	)
}

func truncateName(name string) string {
	if r := []rune(name); len(r) > maxNameWidth {
		return string(r[:maxNameWidth-1]) + "…"
	}

	return name
}
