package storage

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/talentmatch/server/internal/catalogue"
	"codeberg.org/talentmatch/server/internal/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

// items stored with the model that produced their embeddings
type EmbeddedCatalogue struct {
	Items   []catalogue.Item
	Vectors [][]float32 // nil when any row lacks an embedding from Model
	Model   string
}

// identifies the client as a catalogue source
func (c *Client) Name() string {
	return sourceName
}

// deletes every catalogue item
func (c *Client) ClearAll(ctx context.Context) error {
	_, err := c.pool.Exec(ctx, deleteAllItemsQuery)
	if err != nil {
		return fmt.Errorf("failed to clear catalogue: %w", err)
	}

	return nil
}

// upserts items with their embeddings in a single transaction
func (c *Client) InsertItemsBatch(ctx context.Context, items []catalogue.Item, embeddings [][]float32, model string) error {
	if len(items) != len(embeddings) {
		return fmt.Errorf("items and embeddings length mismatch")
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("failed to rollback transaction", "error", err)
		}
	}()

	batch := &pgx.Batch{}

	for i, item := range items {
		batch.Queue(insertItemQuery,
			itemID(item),
			item.URL,
			item.Name,
			item.Description,
			item.AdaptiveSupport,
			item.RemoteSupport,
			item.DurationMinutes,
			item.Categories,
			item.PrimaryCategory,
			item.Skills,
			item.CombinedText,
			pgvector.NewVector(embeddings[i]),
			model,
		)
	}

	br := tx.SendBatch(ctx, batch)

	for i := range len(items) {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck,gosec // error path cleanup
			return fmt.Errorf("failed to insert item %d: %w", i, err)
		}
	}

	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// returns the number of stored items
func (c *Client) Count(ctx context.Context) (int, error) {
	var count int

	if err := c.pool.QueryRow(ctx, getItemCountQuery).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get item count: %w", err)
	}

	return count, nil
}

// returns every stored item in insertion order
func (c *Client) LoadItems(ctx context.Context) ([]catalogue.Item, error) {
	embedded, err := c.LoadEmbedded(ctx, "")
	if err != nil {
		return nil, err
	}

	return embedded.Items, nil
}

// returns every stored item; Vectors is set only when every row carries an
// embedding produced by model
func (c *Client) LoadEmbedded(ctx context.Context, model string) (*EmbeddedCatalogue, error) {
	rows, err := c.pool.Query(ctx, listItemsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalogue: %w", err)
	}

	defer rows.Close()

	out := &EmbeddedCatalogue{Model: model}
	complete := model != ""

	for rows.Next() {
		var (
			item       catalogue.Item
			id         uuid.UUID
			embedding  *pgvector.Vector
			embedModel string
		)

		err := rows.Scan(
			&id,
			&item.URL,
			&item.Name,
			&item.Description,
			&item.AdaptiveSupport,
			&item.RemoteSupport,
			&item.DurationMinutes,
			&item.Categories,
			&item.PrimaryCategory,
			&item.Skills,
			&item.CombinedText,
			&embedding,
			&embedModel,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalogue item: %w", err)
		}

		item.ID = id.String()
		out.Items = append(out.Items, item)

		if !complete {
			continue
		}

		if embedding == nil || embedModel != model {
			complete = false
			out.Vectors = nil

			continue
		}

		out.Vectors = append(out.Vectors, embedding.Slice())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalogue rows: %w", err)
	}

	if !complete {
		out.Vectors = nil
	}

	return out, nil
}

// a stored id must be a uuid; anything else is derived from the url
func itemID(item catalogue.Item) uuid.UUID {
	if id, err := uuid.Parse(item.ID); err == nil {
		return id
	}

	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(item.URL))
}
