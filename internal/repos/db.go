package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"beerservice/internal/domain"
)

// ErrOptimisticLock is returned when a versioned UPDATE matched no row.
var ErrOptimisticLock = errors.New("optimistic lock conflict")

// OpenDB connects with one of the registered drivers (sqlite, postgres, mysql),
// creates the schema and seeds the built-in users.
func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	driver = strings.ToLower(driver)
	if driver == "" {
		driver = "sqlite"
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// One connection keeps :memory: databases alive and serialises writers.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db, driver); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	if err := seedUsers(db); err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB, driver string) error {
	ts := "TIMESTAMP"
	if driver == "mysql" {
		ts = "DATETIME(6)"
	}
	tables := []string{
		`CREATE TABLE IF NOT EXISTS beer(
  id VARCHAR(36) PRIMARY KEY,
  version INTEGER NOT NULL DEFAULT 0,
  beer_name VARCHAR(50) NOT NULL,
  beer_style VARCHAR(20) NOT NULL,
  upc VARCHAR(255) NOT NULL,
  price DECIMAL(19,2) NOT NULL,
  quantity_on_hand INTEGER,
  created_date {{ts}} NOT NULL,
  updated_date {{ts}} NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS customer(
  id VARCHAR(36) PRIMARY KEY,
  version INTEGER NOT NULL DEFAULT 0,
  name VARCHAR(255) NOT NULL,
  email VARCHAR(255) NOT NULL DEFAULT '',
  created_date {{ts}} NOT NULL,
  updated_date {{ts}} NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS beer_order(
  id VARCHAR(36) PRIMARY KEY,
  version INTEGER NOT NULL DEFAULT 0,
  customer_ref VARCHAR(255) NOT NULL DEFAULT '',
  customer_id VARCHAR(36) NOT NULL REFERENCES customer(id),
  created_date {{ts}} NOT NULL,
  updated_date {{ts}} NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS beer_order_line(
  id VARCHAR(36) PRIMARY KEY,
  version INTEGER NOT NULL DEFAULT 0,
  beer_order_id VARCHAR(36) NOT NULL REFERENCES beer_order(id) ON DELETE CASCADE,
  beer_id VARCHAR(36) NOT NULL REFERENCES beer(id),
  order_quantity INTEGER NOT NULL,
  quantity_allocated INTEGER NOT NULL DEFAULT 0,
  created_date {{ts}} NOT NULL,
  updated_date {{ts}} NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS beer_order_shipment(
  id VARCHAR(36) PRIMARY KEY,
  version INTEGER NOT NULL DEFAULT 0,
  beer_order_id VARCHAR(36) NOT NULL UNIQUE REFERENCES beer_order(id) ON DELETE CASCADE,
  tracking_number VARCHAR(50) NOT NULL DEFAULT '',
  created_date {{ts}} NOT NULL,
  updated_date {{ts}} NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS category(
  id VARCHAR(36) PRIMARY KEY,
  version INTEGER NOT NULL DEFAULT 0,
  description VARCHAR(50) NOT NULL,
  created_date {{ts}} NOT NULL,
  updated_date {{ts}} NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS beer_category(
  beer_id VARCHAR(36) NOT NULL REFERENCES beer(id) ON DELETE CASCADE,
  category_id VARCHAR(36) NOT NULL REFERENCES category(id) ON DELETE CASCADE,
  PRIMARY KEY (beer_id, category_id)
)`,
		`CREATE TABLE IF NOT EXISTS app_user(
  username VARCHAR(50) PRIMARY KEY,
  password_hash VARCHAR(100) NOT NULL,
  role VARCHAR(20) NOT NULL
)`,
	}
	// MySQL has no CREATE INDEX IF NOT EXISTS.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_beer_name ON beer(beer_name)`,
		`CREATE INDEX IF NOT EXISTS idx_beer_style ON beer(beer_style)`,
		`CREATE INDEX IF NOT EXISTS idx_order_customer ON beer_order(customer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_order_line_order ON beer_order_line(beer_order_id)`,
	}

	var stmts []string
	if driver == "sqlite" {
		stmts = append(stmts, `PRAGMA foreign_keys = ON`)
	}
	for _, t := range tables {
		stmts = append(stmts, strings.ReplaceAll(t, "{{ts}}", ts))
	}
	if driver != "mysql" {
		stmts = append(stmts, indexes...)
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// seedUsers ensures the admin, user and actuator principals exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	users := []struct{ name, role string }{
		{"admin", domain.RoleAdmin},
		{"user", domain.RoleUser},
		{"actuator", domain.RoleActuator},
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, u := range users {
		var n int
		if err := tx.Get(&n, tx.Rebind(`SELECT COUNT(*) FROM app_user WHERE username = ?`), u.name); err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		h, err := bcrypt.GenerateFromPassword([]byte(u.name), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(tx.Rebind(`INSERT INTO app_user(username, password_hash, role) VALUES(?, ?, ?)`),
			u.name, string(h), u.role); err != nil {
			return err
		}
		log.Printf("[seed] user %s (%s)", u.name, u.role)
	}
	return tx.Commit()
}

// now is the single clock for created/updated columns. Microseconds survive
// every supported driver unchanged.
func now() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

// Ping is used by the health endpoint.
func Ping(ctx context.Context, db *sqlx.DB) error { return db.PingContext(ctx) }

func noRows(err error) bool { return errors.Is(err, sql.ErrNoRows) }
