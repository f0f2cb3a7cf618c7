package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "github.com/Th3UrBanGuy/versity-bms/internal/config"
	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
)

type DestinationsRepo struct {
	DB *sql.DB
}

func (r DestinationsRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r DestinationsRepo) ListAll() ([]models.Destination, error) {
	rows, err := r.db().Query(`
		SELECT id, name, COALESCE(address, ''), COALESCE(map_url, ''),
		       COALESCE(lat, 0), COALESCE(lng, 0), COALESCE(is_campus, 0)
		FROM destinations
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Destination{}
	for rows.Next() {
		var d models.Destination
		if err := rows.Scan(&d.ID, &d.Name, &d.Address, &d.MapURL, &d.Lat, &d.Lng, &d.IsCampus); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Upsert overwrites every field on id conflict.
func (r DestinationsRepo) Upsert(d models.Destination) error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("destination id is empty")
	}
	_, err := r.db().Exec(`
		INSERT INTO destinations (id, name, address, map_url, lat, lng, is_campus)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name),
			address = VALUES(address),
			map_url = VALUES(map_url),
			lat = VALUES(lat),
			lng = VALUES(lng),
			is_campus = VALUES(is_campus)
	`, d.ID, d.Name, d.Address, d.MapURL, d.Lat, d.Lng, d.IsCampus)
	return err
}

// Delete removes the destination row only. Cascading dependent schedules out
// of the cache is the store's job, not the gateway's.
func (r DestinationsRepo) Delete(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("destination id is empty")
	}
	_, err := r.db().Exec(`DELETE FROM destinations WHERE id = ?`, id)
	return err
}
