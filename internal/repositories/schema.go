package repositories

import "database/sql"

// EnsureSchema creates the tables the gateway needs when they are missing.
// The unique key on (schedule_id, seat_number) is the storage-level backstop
// for seat allocation: two writers racing for the same seat cannot both land.
func EnsureSchema(db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			identifier VARCHAR(255) NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(32) NOT NULL,
			student_id VARCHAR(64),
			UNIQUE KEY uniq_identifier (identifier)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
		`CREATE TABLE IF NOT EXISTS destinations (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			address VARCHAR(512),
			map_url VARCHAR(512),
			lat DECIMAL(10,6) DEFAULT 0,
			lng DECIMAL(10,6) DEFAULT 0,
			is_campus TINYINT(1) DEFAULT 0
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
		`CREATE TABLE IF NOT EXISTS buses (
			id VARCHAR(64) PRIMARY KEY,
			plate_number VARCHAR(64) NOT NULL,
			capacity INT NOT NULL,
			driver_name VARCHAR(255),
			driver_phone VARCHAR(64),
			driver_age INT,
			status VARCHAR(32)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
		`CREATE TABLE IF NOT EXISTS schedules (
			id VARCHAR(64) PRIMARY KEY,
			bus_id VARCHAR(64),
			origin_id VARCHAR(64),
			destination_id VARCHAR(64),
			departure_time VARCHAR(16),
			type VARCHAR(16),
			stops TEXT
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id VARCHAR(64) PRIMARY KEY,
			schedule_id VARCHAR(64),
			student_id VARCHAR(64),
			seat_number INT,
			date VARCHAR(16),
			status VARCHAR(16),
			timestamp BIGINT,
			boarding_point VARCHAR(255),
			UNIQUE KEY uniq_schedule_seat (schedule_id, seat_number),
			KEY idx_schedule (schedule_id),
			KEY idx_student (student_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	}
	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
