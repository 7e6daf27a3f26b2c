package firebase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/bitesys/registrar/internal/models"
)

// FirebaseStore appends registrations to a hosted realtime database over its
// REST interface. The database assigns each entry a server-side key and
// orders entries by write arrival, which is exactly the append-only semantics
// the submission flow needs.
type FirebaseStore struct {
	databaseURL string
	path        string
	authToken   string
	http        *http.Client
}

func NewFirebaseStore(databaseURL, path, authToken string) (*FirebaseStore, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("firebase database URL is required")
	}
	return &FirebaseStore{
		databaseURL: strings.TrimSuffix(databaseURL, "/"),
		path:        strings.Trim(path, "/"),
		authToken:   authToken,
		http:        &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func (s *FirebaseStore) collectionURL() string {
	url := fmt.Sprintf("%s/%s.json", s.databaseURL, s.path)
	if s.authToken != "" {
		url += "?auth=" + s.authToken
	}
	return url
}

func (s *FirebaseStore) AppendRegistration(rec *models.RegistrationRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode registration: %w", err)
	}

	resp, err := s.http.Post(s.collectionURL(), "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to reach realtime database: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("realtime database rejected write: status %d", resp.StatusCode)
	}

	// The push response carries the server-assigned key. We don't keep it:
	// records are never addressed individually after the append.
	var pushed struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&pushed); err != nil {
		return fmt.Errorf("failed to decode push response: %w", err)
	}
	if pushed.Name == "" {
		return fmt.Errorf("realtime database returned no entry key")
	}

	return nil
}

func (s *FirebaseStore) fetchAll() ([]models.RegistrationRecord, error) {
	resp, err := s.http.Get(s.collectionURL())
	if err != nil {
		return nil, fmt.Errorf("failed to reach realtime database: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("realtime database read failed: status %d", resp.StatusCode)
	}

	// Keyed by push id; push ids sort chronologically.
	var entries map[string]models.RegistrationRecord
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode registrations: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	recs := make([]models.RegistrationRecord, 0, len(entries))
	for _, k := range keys {
		recs = append(recs, entries[k])
	}
	return recs, nil
}

func (s *FirebaseStore) ListRegistrations(event string) ([]models.RegistrationRecord, error) {
	all, err := s.fetchAll()
	if err != nil {
		return nil, err
	}

	var recs []models.RegistrationRecord
	for _, r := range all {
		if r.EventType == event {
			recs = append(recs, r)
		}
	}
	return recs, nil
}

func (s *FirebaseStore) CountByEvent() (map[string]int64, error) {
	all, err := s.fetchAll()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, r := range all {
		counts[r.EventType]++
	}
	return counts, nil
}

// ApplyMigrations is a no-op: the realtime database is schemaless.
func (s *FirebaseStore) ApplyMigrations(dir string) error {
	return nil
}

func (s *FirebaseStore) Close() error {
	return nil
}
