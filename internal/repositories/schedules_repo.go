package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	intconfig "github.com/Th3UrBanGuy/versity-bms/internal/config"
	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
)

type SchedulesRepo struct {
	DB *sql.DB
}

func (r SchedulesRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListAll returns schedules with their stop sequences parsed back out of the
// serialized column, preserving insertion order. A row with an unparsable
// stops blob is kept with an empty sequence rather than dropped.
func (r SchedulesRepo) ListAll() ([]models.Schedule, error) {
	rows, err := r.db().Query(`
		SELECT id, COALESCE(bus_id, ''), COALESCE(origin_id, ''), COALESCE(destination_id, ''),
		       COALESCE(departure_time, ''), COALESCE(type, ''), COALESCE(stops, '')
		FROM schedules
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Schedule{}
	for rows.Next() {
		var s models.Schedule
		var rawStops string
		if err := rows.Scan(&s.ID, &s.BusID, &s.OriginID, &s.DestinationID, &s.DepartureTime, &s.Type, &rawStops); err != nil {
			return nil, err
		}
		s.Stops = parseStops(s.ID, rawStops)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Insert publishes a schedule. Schedules are immutable once published, so
// there is no update-on-conflict path.
func (r SchedulesRepo) Insert(s models.Schedule) error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("schedule id is empty")
	}
	stops := s.Stops
	if stops == nil {
		stops = []models.RouteStop{}
	}
	raw, err := json.Marshal(stops)
	if err != nil {
		return err
	}
	_, err = r.db().Exec(`
		INSERT INTO schedules (id, bus_id, origin_id, destination_id, departure_time, type, stops)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.BusID, s.OriginID, s.DestinationID, s.DepartureTime, string(s.Type), string(raw))
	return err
}

func parseStops(scheduleID, raw string) []models.RouteStop {
	if strings.TrimSpace(raw) == "" {
		return []models.RouteStop{}
	}
	var stops []models.RouteStop
	if err := json.Unmarshal([]byte(raw), &stops); err != nil {
		log.Printf("schedule %s: unparsable stops payload, treating as empty: %v", scheduleID, err)
		return []models.RouteStop{}
	}
	return stops
}
