package main

import (
	"context"
	"fmt"
	"os"

	"reyan-luxe/internal/config"
	"reyan-luxe/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

// seedCatalog applies the schema and loads a small starter catalog so a fresh
// database has something to browse. Safe to re-run: products are keyed by
// name and skipped when already present.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.ApplySchema(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "failed to apply schema: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Schema applied")

	if err := seed(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed catalog: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Catalog seeded successfully")
}

func seed(ctx context.Context, pool *pgxpool.Pool) error {
	categories := []struct {
		name, slug, group string
		position          int
	}{
		{"Fashion Bracelets", "fashion-bracelets", "bracelet", 1},
		{"Trending Bracelets", "trending-bracelets", "bracelet", 2},
		{"Gold Chains", "gold-chains", "chain", 1},
		{"Silver Chains", "silver-chains", "chain", 2},
	}

	categoryIDs := make(map[string]int64, len(categories))
	for _, c := range categories {
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO categories (name, slug, group_name, position)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, c.name, c.slug, c.group, c.position).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.slug, err)
		}
		categoryIDs[c.slug] = id
		fmt.Printf("Category %-20s id=%d\n", c.slug, id)
	}

	// Prices are in paise.
	bracelets := []struct {
		name, description, badge, categorySlug string
		price                                  int64
		signature                              bool
	}{
		{"Aurora Gold Bracelet", "Hand-finished 22k gold plated bracelet", "Bestseller", "fashion-bracelets", 499900, true},
		{"Midnight Charm", "Oxidised silver bracelet with onyx charm", "Modern Classic", "fashion-bracelets", 299900, false},
		{"Rose Cascade", "Rose gold link bracelet", "Limited Edition", "trending-bracelets", 399900, false},
	}

	for _, b := range bracelets {
		tag, err := pool.Exec(ctx, `
			INSERT INTO bracelets (name, description, price, badge, is_signature_piece, category_id)
			SELECT $1, $2, $3, $4, $5, $6
			WHERE NOT EXISTS (SELECT 1 FROM bracelets WHERE name = $1)
		`, b.name, b.description, b.price, b.badge, b.signature, categoryIDs[b.categorySlug])
		if err != nil {
			return fmt.Errorf("failed to seed bracelet %s: %w", b.name, err)
		}
		if tag.RowsAffected() > 0 {
			fmt.Printf("Bracelet %s created\n", b.name)
		}
	}

	chains := []struct {
		name, description, categorySlug string
		price                           int64
	}{
		{"Classic Rope Chain", "18 inch gold rope chain", "gold-chains", 899900},
		{"Figaro Chain", "Sterling silver figaro chain", "silver-chains", 549900},
		{"Box Chain", "Minimal silver box chain", "silver-chains", 449900},
	}

	for _, c := range chains {
		tag, err := pool.Exec(ctx, `
			INSERT INTO chains (name, description, price, category_id)
			SELECT $1, $2, $3, $4
			WHERE NOT EXISTS (SELECT 1 FROM chains WHERE name = $1)
		`, c.name, c.description, c.price, categoryIDs[c.categorySlug])
		if err != nil {
			return fmt.Errorf("failed to seed chain %s: %w", c.name, err)
		}
		if tag.RowsAffected() > 0 {
			fmt.Printf("Chain %s created\n", c.name)
		}
	}

	return nil
}
