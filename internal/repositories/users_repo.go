package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "github.com/Th3UrBanGuy/versity-bms/internal/config"
	"github.com/Th3UrBanGuy/versity-bms/internal/domain/models"
)

type UsersRepo struct {
	DB *sql.DB
}

func (r UsersRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UsersRepo) ListAll() ([]models.User, error) {
	rows, err := r.db().Query(`SELECT id, name, identifier, password, role, COALESCE(student_id, '') FROM users`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Identifier, &u.Password, &u.Role, &u.StudentID); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Upsert inserts the user; on id conflict only name and password are
// overwritten, identifier and role stay as first registered.
func (r UsersRepo) Upsert(u models.User) error {
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user id is empty")
	}
	_, err := r.db().Exec(`
		INSERT INTO users (id, name, identifier, password, role, student_id)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name),
			password = VALUES(password)
	`, u.ID, u.Name, u.Identifier, u.Password, string(u.Role), nullIfEmpty(u.StudentID))
	return err
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
