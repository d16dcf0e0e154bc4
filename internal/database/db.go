package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the tables this platform writes if they do not
// exist.  The (institution_id, room_id, day) index on schedules is what the
// conflict-checking transaction locks; without it FOR UPDATE degrades to
// table scans under concurrent creation.  Attendances intentionally have no
// uniqueness constraint beyond the primary key: repeated check-ins append.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS schedules (
			id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			institution_id VARCHAR(64)  NOT NULL,
			room_id        VARCHAR(64)  NOT NULL,
			room_name      VARCHAR(255) NOT NULL,
			class_id       VARCHAR(64)  NOT NULL,
			class_name     VARCHAR(255) NOT NULL,
			day            TINYINT      NOT NULL,
			start_time     SMALLINT     NOT NULL,
			end_time       SMALLINT     NOT NULL,
			created_at     DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			KEY idx_schedules_slot (institution_id, room_id, day)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS attendances (
			id                CHAR(36)     NOT NULL,
			institution_id    VARCHAR(64)  NOT NULL,
			class_attendee_id VARCHAR(64)  NOT NULL,
			schedule_id       BIGINT UNSIGNED NOT NULL,
			class_name        VARCHAR(255) NOT NULL,
			room_name         VARCHAR(255) NOT NULL,
			present_time      DATETIME     NOT NULL,
			PRIMARY KEY (id),
			KEY idx_attendances_institution (institution_id, present_time)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
