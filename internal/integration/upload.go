// internal/integration/upload.go
package integration

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	apperrors "github.com/VivekSamant23/Gate-Reassignment/internal/common/errors"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/logger"
	"github.com/VivekSamant23/Gate-Reassignment/internal/common/validation"
	"github.com/VivekSamant23/Gate-Reassignment/internal/models"
)

// FlightCreator is the storage side of an upload run.
type FlightCreator interface {
	Create(ctx context.Context, f *models.Flight) error
}

// UploadResult summarizes one processed file.
type UploadResult struct {
	Rows     int      `json:"rows"`
	Created  int      `json:"created"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	RowError []string `json:"row_errors,omitempty"`
}

// Uploader ingests operator-provided CSV flight schedules. Rows are
// validated individually; a bad or duplicate row is reported and
// skipped, never aborting the rest of the file.
type Uploader struct {
	store  FlightCreator
	logger logger.Logger
}

func NewUploader(store FlightCreator, log logger.Logger) *Uploader {
	return &Uploader{
		store:  store,
		logger: log.WithFields(map[string]interface{}{"component": "flight-upload"}),
	}
}

// csvHeaderAliases maps accepted header spellings onto canonical field
// names.
var csvHeaderAliases = map[string]string{
	"flight_number":         "flight_number",
	"flight":                "flight_number",
	"scheduled_date":        "scheduled_date",
	"date":                  "scheduled_date",
	"scheduled_time":        "scheduled_time",
	"time":                  "scheduled_time",
	"aircraft_registration": "aircraft_registration",
	"registration":          "aircraft_registration",
	"aircraft_type":         "aircraft_type",
	"flight_type":           "flight_type",
	"type":                  "flight_type",
	"status":                "status",
	"assigned_gate":         "assigned_gate",
	"gate":                  "assigned_gate",
}

// Process parses and stores the uploaded file. Only CSV is supported;
// spreadsheet formats are rejected up front.
func (u *Uploader) Process(ctx context.Context, filename string, file io.Reader) (*UploadResult, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", "":
	default:
		return nil, apperrors.NewUploadUnsupportedError(filename)
	}

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewUploadParseError("missing header row: " + err.Error())
	}

	fields := make([]string, len(header))
	for i, name := range header {
		fields[i] = csvHeaderAliases[strings.ToLower(strings.TrimSpace(name))]
	}

	result := &UploadResult{}
	schema := validation.FlightSchema()

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewUploadParseError(fmt.Sprintf("line %d: %s", line, err))
		}
		result.Rows++

		row := map[string]interface{}{}
		for i, value := range record {
			if i < len(fields) && fields[i] != "" && strings.TrimSpace(value) != "" {
				row[fields[i]] = strings.TrimSpace(value)
			}
		}

		if vr := validation.ValidateInput(row, schema); !vr.Valid {
			result.Failed++
			result.RowError = append(result.RowError,
				fmt.Sprintf("line %d: %s", line, strings.Join(vr.GetErrorMessages(), "; ")))
			continue
		}

		flight := flightFromRow(row)
		if err := u.store.Create(ctx, flight); err != nil {
			if errors.Is(err, &apperrors.StandardError{Code: apperrors.ErrCodeDuplicateFlight}) {
				result.Skipped++
				continue
			}
			return nil, err
		}
		result.Created++
	}

	u.logger.Info("flight upload processed", map[string]interface{}{
		"filename": filename,
		"rows":     result.Rows,
		"created":  result.Created,
		"skipped":  result.Skipped,
		"failed":   result.Failed,
	})
	return result, nil
}

func flightFromRow(row map[string]interface{}) *models.Flight {
	str := func(key string) string {
		v, _ := row[key].(string)
		return v
	}
	return &models.Flight{
		FlightNumber:         str("flight_number"),
		ScheduledDate:        str("scheduled_date"),
		ScheduledTime:        str("scheduled_time"),
		AircraftRegistration: str("aircraft_registration"),
		AircraftType:         str("aircraft_type"),
		FlightType:           str("flight_type"),
		Status:               str("status"),
		AssignedGate:         str("assigned_gate"),
	}
}
