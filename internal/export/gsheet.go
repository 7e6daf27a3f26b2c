package export

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/bitesys/registrar/internal/app"
	"github.com/bitesys/registrar/internal/store"
)

var headerRow = []interface{}{
	"First Name", "Last Name", "Email", "Phone", "Team Name",
	"Member 2 Name", "Member 2 Email", "Member 2 Phone",
	"Member 3 Name", "Member 3 Email", "Member 3 Phone",
	"Submitted At",
}

// GSheetExporter mirrors registrations into the organizers' spreadsheet on a
// schedule, one sheet tab per event.
type GSheetExporter struct {
	store     store.RegistrationStore
	scheduler *gocron.Scheduler
	services  map[string]*sheets.Service
}

func NewGSheetExporter(config *app.Config, regStore store.RegistrationStore) (*GSheetExporter, error) {
	ctx := context.Background()

	e := &GSheetExporter{
		store:     regStore,
		scheduler: gocron.NewScheduler(time.UTC),
		services:  make(map[string]*sheets.Service),
	}

	for eventName, cfg := range config.GSheet {
		svc, err := sheets.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath))
		if err != nil {
			return nil, fmt.Errorf("failed to create sheets service: %w", err)
		}
		e.services[eventName] = svc

		eventName, cfg := eventName, cfg
		_, err = e.scheduler.Cron(cfg.Schedule).Do(func() {
			if err := e.Export(eventName, &cfg); err != nil {
				logger.Error.Printf("Export failed for %s: %v", eventName, err)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("failed to schedule export: %w", err)
		}
	}

	e.scheduler.StartAsync()
	return e, nil
}

// Export rewrites the event's sheet tab from scratch: header, one row per
// registration in submission order, and an update stamp.
func (e *GSheetExporter) Export(eventName string, cfg *app.GSheetConfig) error {
	svc, ok := e.services[eventName]
	if !ok {
		return fmt.Errorf("no sheets service configured for %s", eventName)
	}

	recs, err := e.store.ListRegistrations(eventName)
	if err != nil {
		return fmt.Errorf("failed to read registrations: %w", err)
	}

	rows := [][]interface{}{headerRow}
	for _, r := range recs {
		rows = append(rows, []interface{}{
			r.FirstName, r.LastName, r.Email, r.Phone, r.TeamName,
			r.Member2Name, r.Member2Email, r.Member2Phone,
			r.Member3Name, r.Member3Email, r.Member3Phone,
			r.Timestamp,
		})
	}

	writeRange := fmt.Sprintf("'%s'!A1", eventName)
	_, err = svc.Spreadsheets.Values.Update(cfg.SpreadsheetID, writeRange,
		&sheets.ValueRange{Values: rows}).ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}

	stamp := fmt.Sprintf("UPD: %s UTC", time.Now().UTC().Format("2 January 15:04"))
	stampRange := fmt.Sprintf("'%s'!N1", eventName)
	_, err = svc.Spreadsheets.Values.Update(cfg.SpreadsheetID, stampRange,
		&sheets.ValueRange{Values: [][]interface{}{{stamp}}}).ValueInputOption("RAW").Do()

	return err
}
