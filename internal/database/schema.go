package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the full DDL for the store. Statements are idempotent so it can
// be applied to a fresh database or re-applied safely.
const Schema = `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(150) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		phone_number VARCHAR(32),
		address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS auth_tokens (
		token VARCHAR(128) PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS otps (
		id UUID PRIMARY KEY,
		user_id BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		code VARCHAR(12) NOT NULL,
		verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) NOT NULL UNIQUE,
		parent_id BIGINT REFERENCES categories(id) ON DELETE SET NULL,
		group_name VARCHAR(32) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		position INTEGER NOT NULL DEFAULT 0,
		show_in_menu BOOLEAN NOT NULL DEFAULT TRUE
	);

	CREATE TABLE IF NOT EXISTS bracelets (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price BIGINT NOT NULL CHECK (price >= 0),
		image_url TEXT,
		badge VARCHAR(64) NOT NULL DEFAULT '',
		is_signature_piece BOOLEAN NOT NULL DEFAULT FALSE,
		signature_category VARCHAR(32),
		category_id BIGINT REFERENCES categories(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS chains (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price BIGINT NOT NULL CHECK (price >= 0),
		image_url TEXT,
		category_id BIGINT REFERENCES categories(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		order_number VARCHAR(64) NOT NULL UNIQUE,
		status VARCHAR(20) NOT NULL,
		payment_status VARCHAR(20) NOT NULL,
		total_amount BIGINT NOT NULL CHECK (total_amount >= 0),
		gateway_order_id VARCHAR(64),
		transaction_id VARCHAR(64),
		shipping_address TEXT NOT NULL,
		phone VARCHAR(32) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL,
		payment_method VARCHAR(32) NOT NULL DEFAULT '',
		tracking_number VARCHAR(64),
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);
	CREATE INDEX IF NOT EXISTS idx_orders_gateway_order_id ON orders(gateway_order_id);

	CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_type VARCHAR(20) NOT NULL,
		product_id VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		price BIGINT NOT NULL CHECK (price >= 0),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		subtotal BIGINT NOT NULL CHECK (subtotal >= 0)
	);

	CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);

	CREATE TABLE IF NOT EXISTS cart_items (
		id UUID PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		product_type VARCHAR(20) NOT NULL,
		product_id VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		price BIGINT NOT NULL CHECK (price >= 0),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		image_url TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_cart_items_user_id ON cart_items(user_id);

	CREATE TABLE IF NOT EXISTS wishlist_items (
		id UUID PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		product_type VARCHAR(20) NOT NULL,
		product_id VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		price BIGINT NOT NULL CHECK (price >= 0),
		image_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, product_type, product_id)
	);
`

// ApplySchema creates all tables and indexes.
func ApplySchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
