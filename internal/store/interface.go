package store

import (
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/bitesys/registrar/internal/models"
)

// RegistrationStore is the persistence boundary of the service. The
// submission flow only ever calls AppendRegistration: registrations are
// append-only, there is no update or delete path. List and Count exist for
// organizer tooling (bot, exporter).
type RegistrationStore interface {
	Close() error
	ApplyMigrations(dir string) error

	AppendRegistration(rec *models.RegistrationRecord) error
	ListRegistrations(event string) ([]models.RegistrationRecord, error)
	CountByEvent() (map[string]int64, error)
}

// BaseStore provides common functionality for the SQL-backed implementations
type BaseStore struct {
	DB        *sqlx.DB
	Converter func(string) string
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// ApplyMigrations applies SQL migrations from a directory, translating dialect if needed
func (s *BaseStore) ApplyMigrations(dir string, translateSQL func(string) string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		content, err := os.ReadFile(fmt.Sprintf("%s/%s", dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}

		sql := string(content)
		if translateSQL != nil {
			sql = translateSQL(sql)
		}

		if _, err := s.DB.Exec(sql); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file.Name(), err)
		}
	}

	return nil
}

func (s *BaseStore) AppendRegistration(rec *models.RegistrationRecord) error {
	_, err := s.DB.NamedExec(`
		INSERT INTO registrations (
			first_name, last_name, email, phone, event_type, team_name,
			member2_name, member2_email, member2_phone,
			member3_name, member3_email, member3_phone,
			timestamp
		) VALUES (
			:first_name, :last_name, :email, :phone, :event_type, :team_name,
			:member2_name, :member2_email, :member2_phone,
			:member3_name, :member3_email, :member3_phone,
			:timestamp
		)
	`, rec)
	if err != nil {
		return fmt.Errorf("failed to append registration: %w", err)
	}
	return nil
}

func (s *BaseStore) ListRegistrations(event string) ([]models.RegistrationRecord, error) {
	var recs []models.RegistrationRecord
	query := s.Converter(`
		SELECT
			first_name, last_name, email, phone, event_type, team_name,
			member2_name, member2_email, member2_phone,
			member3_name, member3_email, member3_phone,
			timestamp
		FROM registrations
		WHERE event_type = ?
		ORDER BY timestamp ASC
	`)

	err := s.DB.Select(&recs, query, event)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registrations: %w", err)
	}

	return recs, nil
}

func (s *BaseStore) CountByEvent() (map[string]int64, error) {
	var rows []EventCount
	err := s.DB.Select(&rows, `
		SELECT event_type, COUNT(*) AS n
		FROM registrations
		GROUP BY event_type
		ORDER BY event_type
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Event] = r.Count
	}
	return counts, nil
}
