package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	driver "github.com/go-sql-driver/mysql"
)

const (
	defaultTimeout = 5 * time.Second

	errDuplicateEntry = 1062
)

// Config captures the pool settings for the MySQL connection.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Timeout         time.Duration
}

// Open parses the DSN, forces parseTime and UTC so DATE/DATETIME columns scan
// into time.Time, sizes the pool and pings the server.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	dsn, err := driver.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mysql dsn: %w", err)
	}
	dsn.ParseTime = true
	dsn.Loc = time.UTC

	db, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("mysql open: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mysql ping: %w", err)
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(32)  NOT NULL DEFAULT 'user',
		created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS accommodations (
		id          BIGINT AUTO_INCREMENT PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		location    VARCHAR(255) NOT NULL,
		price       INT          NOT NULL,
		description TEXT         NULL,
		owner_id    BIGINT       NOT NULL,
		KEY ix_accommodations_location (location),
		CONSTRAINT fk_accommodations_owner FOREIGN KEY (owner_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS flights (
		id                BIGINT AUTO_INCREMENT PRIMARY KEY,
		departure_airport VARCHAR(16)  NOT NULL,
		arrival_airport   VARCHAR(16)  NOT NULL,
		departure_time    VARCHAR(64)  NOT NULL,
		arrival_time      VARCHAR(64)  NOT NULL,
		price             INT          NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS accommodation_bookings (
		id               BIGINT AUTO_INCREMENT PRIMARY KEY,
		start_date       DATE        NOT NULL,
		end_date         DATE        NOT NULL,
		status           VARCHAR(32) NOT NULL DEFAULT 'pending',
		user_id          BIGINT      NOT NULL,
		accommodation_id BIGINT      NOT NULL,
		KEY ix_acc_bookings_user (user_id),
		CONSTRAINT fk_acc_bookings_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_acc_bookings_accommodation FOREIGN KEY (accommodation_id) REFERENCES accommodations (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS flight_bookings (
		id           BIGINT AUTO_INCREMENT PRIMARY KEY,
		booking_date DATE        NOT NULL,
		status       VARCHAR(32) NOT NULL DEFAULT 'pending',
		user_id      BIGINT      NOT NULL,
		flight_id    BIGINT      NOT NULL,
		KEY ix_flight_bookings_user (user_id),
		CONSTRAINT fk_flight_bookings_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_flight_bookings_flight FOREIGN KEY (flight_id) REFERENCES flights (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables. Existing tables are left as they are.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func isDuplicate(err error) bool {
	var me *driver.MySQLError
	return errors.As(err, &me) && me.Number == errDuplicateEntry
}
