package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "github.com/Th3UrBanGuy/versity-bms/internal/config"
	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
)

type BusesRepo struct {
	DB *sql.DB
}

func (r BusesRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BusesRepo) ListAll() ([]models.Bus, error) {
	rows, err := r.db().Query(`
		SELECT id, plate_number, capacity,
		       COALESCE(driver_name, ''), COALESCE(driver_phone, ''),
		       COALESCE(driver_age, 0), COALESCE(status, '')
		FROM buses
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Bus{}
	for rows.Next() {
		var b models.Bus
		if err := rows.Scan(&b.ID, &b.PlateNumber, &b.Capacity, &b.DriverName, &b.DriverPhone, &b.DriverAge, &b.Status); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Upsert overwrites every field on id conflict, matching admin edit flows.
func (r BusesRepo) Upsert(b models.Bus) error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("bus id is empty")
	}
	_, err := r.db().Exec(`
		INSERT INTO buses (id, plate_number, capacity, driver_name, driver_phone, driver_age, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			plate_number = VALUES(plate_number),
			capacity = VALUES(capacity),
			driver_name = VALUES(driver_name),
			driver_phone = VALUES(driver_phone),
			driver_age = VALUES(driver_age),
			status = VALUES(status)
	`, b.ID, b.PlateNumber, b.Capacity, b.DriverName, b.DriverPhone, b.DriverAge, b.Status)
	return err
}
