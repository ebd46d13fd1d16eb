package storage

const createSchemaQuery = `
	CREATE EXTENSION IF NOT EXISTS vector;

	CREATE TABLE IF NOT EXISTS catalogue_items (
		id               UUID PRIMARY KEY,
		url              TEXT NOT NULL UNIQUE,
		name             TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		adaptive_support TEXT NOT NULL DEFAULT 'No',
		remote_support   TEXT NOT NULL DEFAULT 'Yes',
		duration_minutes INTEGER NOT NULL DEFAULT 0,
		categories       TEXT[] NOT NULL DEFAULT '{}',
		primary_category TEXT NOT NULL DEFAULT '',
		skills           TEXT NOT NULL DEFAULT '',
		combined_text    TEXT NOT NULL,
		embedding        vector,
		embedding_model  TEXT NOT NULL DEFAULT '',
		position         SERIAL
	)
`

const deleteAllItemsQuery = `DELETE FROM catalogue_items`

const insertItemQuery = `
	INSERT INTO catalogue_items (
		id, url, name, description, adaptive_support, remote_support,
		duration_minutes, categories, primary_category, skills, combined_text,
		embedding, embedding_model
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (url) DO UPDATE SET
		name = EXCLUDED.name,
		description = EXCLUDED.description,
		adaptive_support = EXCLUDED.adaptive_support,
		remote_support = EXCLUDED.remote_support,
		duration_minutes = EXCLUDED.duration_minutes,
		categories = EXCLUDED.categories,
		primary_category = EXCLUDED.primary_category,
		skills = EXCLUDED.skills,
		combined_text = EXCLUDED.combined_text,
		embedding = EXCLUDED.embedding,
		embedding_model = EXCLUDED.embedding_model
`

const getItemCountQuery = `SELECT COUNT(*) FROM catalogue_items`

const listItemsQuery = `
	SELECT id, url, name, description, adaptive_support, remote_support,
		duration_minutes, categories, primary_category, skills, combined_text,
		embedding, embedding_model
	FROM catalogue_items
	ORDER BY position
`
