package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/kass/geocell-index/pkg/geocell"
)

// PostgresStore persists places in Postgres and answers geocell queries with
// the "cell_ids && $1" array-overlap operator, rather than a PostGIS
// geometry index: the cell ids already encode everything a bounding query
// needs, so no spatial extension is required.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a pooled connection to dbname on host:port.
func NewPostgresStore(host, user, password, dbname string, port int) (*PostgresStore, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgresStore{db: db}, nil
}

// InitSchema creates the places table and its GIN index over cell_ids.
func (p *PostgresStore) InitSchema() error {
	queries := []string{
		`DROP TABLE IF EXISTS places;`,
		`CREATE TABLE places (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			lon DOUBLE PRECISION NOT NULL,
			cell_ids TEXT[] NOT NULL
		);`,
		`CREATE INDEX idx_places_cell_ids ON places USING GIN(cell_ids);`,
	}

	for _, query := range queries {
		if _, err := p.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}

	return nil
}

// BulkInsert inserts places in transactional batches.
func (p *PostgresStore) BulkInsert(places []Place) error {
	const batchSize = 10000

	stmt, err := p.db.Prepare(`
		INSERT INTO places (id, name, lat, lon, cell_ids)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	txStmt := tx.Stmt(stmt)

	for i, place := range places {
		if _, err := txStmt.Exec(place.PlaceID, place.Name, place.Point.Lat(), place.Point.Lon(), pq.Array(place.Cells)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert place %s: %w", place.PlaceID, err)
		}

		if (i+1)%batchSize == 0 {
			if err := tx.Commit(); err != nil {
				return fmt.Errorf("failed to commit batch: %w", err)
			}
			tx, err = p.db.Begin()
			if err != nil {
				return fmt.Errorf("failed to begin new transaction: %w", err)
			}
			txStmt = tx.Stmt(stmt)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit final batch: %w", err)
	}

	return nil
}

// Query implements geocell.QueryRunner: it returns every place whose
// cell_ids array overlaps the requested cell set.
func (p *PostgresStore) Query(cells []string) ([]geocell.Entity, error) {
	if len(cells) == 0 {
		return nil, nil
	}

	rows, err := p.db.Query(`
		SELECT id, name, lat, lon, cell_ids
		FROM places
		WHERE cell_ids && $1
	`, pq.Array(cells))
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var results []geocell.Entity
	for rows.Next() {
		var id, name string
		var lat, lon float64
		var cellArr []string

		if err := rows.Scan(&id, &name, &lat, &lon, pq.Array(&cellArr)); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		point, err := geocell.NewPoint(lat, lon)
		if err != nil {
			return nil, fmt.Errorf("invalid stored point for place %s: %w", id, err)
		}

		results = append(results, Place{
			PlaceID: id,
			Name:    name,
			Point:   point,
			Cells:   cellArr,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return results, nil
}

// Count returns the number of places in the store.
func (p *PostgresStore) Count() (int64, error) {
	var count int64
	if err := p.db.QueryRow("SELECT COUNT(*) FROM places").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count places: %w", err)
	}
	return count, nil
}

// Close closes the underlying connection pool.
func (p *PostgresStore) Close() error {
	return p.db.Close()
}
