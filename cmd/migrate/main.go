// Comando migrate: crea el esquema y normaliza datos heredados.
//
// Uso:
//
//	migrate            # aplica el DDL (idempotente)
//	migrate -backfill  # además rellena product_id en inventario heredado con clave SKU
package main

import (
	"context"
	"flag"

	"github.com/tu-usuario/pos-inventario/internal/infrastructure/postgres"
	"github.com/tu-usuario/pos-inventario/pkg/config"
	"github.com/tu-usuario/pos-inventario/pkg/logger"
)

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id          TEXT PRIMARY KEY,
		sku         TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL,
		price       NUMERIC(14,2) NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		alert_limit BIGINT NOT NULL DEFAULT 5,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_name ON products (name, id)`,

	`CREATE TABLE IF NOT EXISTS inventory (
		product_id   TEXT PRIMARY KEY,
		sku          TEXT NOT NULL,
		product_name TEXT NOT NULL DEFAULT '',
		quantity     BIGINT NOT NULL DEFAULT 0,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS sales (
		id            TEXT PRIMARY KEY,
		invoice_no    TEXT NOT NULL UNIQUE,
		date          TIMESTAMPTZ NOT NULL,
		customer_id   TEXT NOT NULL DEFAULT '',
		customer_name TEXT NOT NULL DEFAULT '',
		items         JSONB NOT NULL DEFAULT '[]',
		total         NUMERIC(14,2) NOT NULL DEFAULT 0,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_date ON sales (date)`,

	`CREATE TABLE IF NOT EXISTS customers (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		company    TEXT NOT NULL DEFAULT '',
		credit     BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_name ON customers (name, id)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id           TEXT PRIMARY KEY,
		message      TEXT NOT NULL,
		ts           TIMESTAMPTZ NOT NULL DEFAULT now(),
		admin_read   BOOLEAN NOT NULL DEFAULT false,
		manager_read BOOLEAN NOT NULL DEFAULT false
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_ts ON notifications (ts DESC, id DESC)`,

	`CREATE TABLE IF NOT EXISTS settings (
		id                           TEXT PRIMARY KEY,
		manager_can_edit_inventory   BOOLEAN NOT NULL DEFAULT true,
		manager_can_edit_description BOOLEAN NOT NULL DEFAULT false,
		manager_can_view_reports     BOOLEAN NOT NULL DEFAULT false,
		manager_can_edit_alert_limit BOOLEAN NOT NULL DEFAULT false,
		alert_email                  TEXT NOT NULL DEFAULT '',
		updated_at                   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL DEFAULT 'manager',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// backfill normaliza inventario heredado que usaba el SKU como clave:
// filas cuyo product_id coincide con un SKU del catálogo se re-clavean al id
// canónico del producto, y se refrescan las copias denormalizadas.
var backfill = []string{
	`UPDATE inventory i
	 SET product_id = p.id, sku = p.sku, product_name = p.name
	 FROM products p
	 WHERE i.product_id = p.sku AND i.product_id <> p.id`,
	`UPDATE inventory i
	 SET sku = p.sku, product_name = p.name
	 FROM products p
	 WHERE i.product_id = p.id AND (i.sku <> p.sku OR i.product_name <> p.name)`,
}

func main() {
	runBackfill := flag.Bool("backfill", false, "re-clavear inventario heredado con clave SKU al id de producto")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	for _, stmt := range ddl {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatal().Err(err).Msg("aplicar DDL")
		}
	}
	log.Info().Int("statements", len(ddl)).Msg("esquema aplicado")

	if *runBackfill {
		for _, stmt := range backfill {
			tag, err := pool.Exec(ctx, stmt)
			if err != nil {
				log.Fatal().Err(err).Msg("backfill de inventario")
			}
			log.Info().Int64("rows", tag.RowsAffected()).Msg("backfill aplicado")
		}
	}

	log.Info().Msg("migración completa")
}
