// ABOUTME: SQLite schema definition for the product catalog
// ABOUTME: Products carry their embedding as a little-endian float64 BLOB
package catalog

// Schema defines the catalog tables and indexes
const Schema = `
CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	image       TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL,
	features    TEXT NOT NULL DEFAULT '[]',
	embedding   BLOB,
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);
`
