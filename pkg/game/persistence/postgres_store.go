package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore handles floor persistence using PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL storage manager
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}

	// Initialize the database schema
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema initializes the database schema
func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS floors (
		name TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		params JSONB NOT NULL,
		rooms JSONB NOT NULL,
		stairs JSONB NOT NULL,
		secret_doors JSONB NOT NULL,
		packed BYTEA NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`

	_, err := ps.db.Exec(schema)
	return err
}

type stairsJSON struct {
	Up   json.RawMessage `json:"up"`
	Down json.RawMessage `json:"down"`
}

// SaveFloor saves or replaces a floor record
func (ps *PostgresStore) SaveFloor(rec *FloorRecord) error {
	if rec == nil || rec.Name == "" {
		return fmt.Errorf("floor record needs a name")
	}

	paramsJSON, err := json.Marshal(rec.Params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}
	roomsJSON, err := json.Marshal(rec.Rooms)
	if err != nil {
		return fmt.Errorf("failed to marshal rooms: %w", err)
	}
	stairs, err := json.Marshal(map[string]any{"up": rec.Up, "down": rec.Down})
	if err != nil {
		return fmt.Errorf("failed to marshal stairs: %w", err)
	}
	secretsJSON, err := json.Marshal(rec.SecretDoors)
	if err != nil {
		return fmt.Errorf("failed to marshal secret doors: %w", err)
	}

	query := `
	INSERT INTO floors (name, seed, width, height, params, rooms, stairs, secret_doors, packed)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (name)
	DO UPDATE SET
		seed = $2, width = $3, height = $4, params = $5, rooms = $6,
		stairs = $7, secret_doors = $8, packed = $9,
		updated_at = NOW()
	`

	_, err = ps.db.Exec(query,
		rec.Name, int(rec.Seed), rec.Params.Width, rec.Params.Height,
		string(paramsJSON), string(roomsJSON), string(stairs), string(secretsJSON),
		rec.Packed)
	if err != nil {
		return fmt.Errorf("failed to save floor: %w", err)
	}

	return nil
}

// LoadFloor loads a floor record by name
func (ps *PostgresStore) LoadFloor(name string) (*FloorRecord, error) {
	query := `SELECT name, seed, params, rooms, stairs, secret_doors, packed, created_at FROM floors WHERE name = $1`

	var rec FloorRecord
	var seed int
	var paramsJSON, roomsJSON, stairsRaw, secretsJSON string

	err := ps.db.QueryRow(query, name).Scan(
		&rec.Name, &seed, &paramsJSON, &roomsJSON, &stairsRaw, &secretsJSON,
		&rec.Packed, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to load floor: %w", err)
	}
	rec.Seed = uint16(seed)

	if err := json.Unmarshal([]byte(paramsJSON), &rec.Params); err != nil {
		return nil, fmt.Errorf("failed to unmarshal params: %w", err)
	}
	if err := json.Unmarshal([]byte(roomsJSON), &rec.Rooms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rooms: %w", err)
	}
	var stairs stairsJSON
	if err := json.Unmarshal([]byte(stairsRaw), &stairs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stairs: %w", err)
	}
	if err := json.Unmarshal(stairs.Up, &rec.Up); err != nil {
		return nil, fmt.Errorf("failed to unmarshal up stairs: %w", err)
	}
	if err := json.Unmarshal(stairs.Down, &rec.Down); err != nil {
		return nil, fmt.Errorf("failed to unmarshal down stairs: %w", err)
	}
	if err := json.Unmarshal([]byte(secretsJSON), &rec.SecretDoors); err != nil {
		return nil, fmt.Errorf("failed to unmarshal secret doors: %w", err)
	}

	return &rec, nil
}

// ListFloors returns the stored floor names in order
func (ps *PostgresStore) ListFloors() ([]string, error) {
	rows, err := ps.db.Query(`SELECT name FROM floors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list floors: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DeleteFloor removes a floor record
func (ps *PostgresStore) DeleteFloor(name string) error {
	res, err := ps.db.Exec(`DELETE FROM floors WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete floor: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// Close closes the database connection
func (ps *PostgresStore) Close() error {
	log.Println("Closing database connection...")
	return ps.db.Close()
}
