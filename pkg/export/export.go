// Package export writes a page of leads to CSV or XLSX and optionally
// uploads the file to S3.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/logger"
	"github.com/jordanlanch/leadmanager/pkg/models"
	"github.com/xuri/excelize/v2"
)

// Format is an export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat parses "csv", "xlsx" or "excel"
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", domain.NewValidationError(fmt.Sprintf("unsupported export format %q", raw))
}

const sheetName = "Leads"

var headers = []string{
	"ID", "Name", "Email", "Phone", "Company", "Job Title", "Status",
	"Source", "Value", "Assigned To", "Last Contacted", "Created At",
}

func timestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func record(lead models.Lead) []string {
	return []string{
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Company,
		lead.JobTitle,
		string(lead.Status),
		string(lead.Source),
		strconv.FormatFloat(lead.Value, 'f', 2, 64),
		lead.AssignedTo,
		timestamp(lead.LastContacted),
		timestamp(&lead.CreatedAt),
	}
}

// WriteCSV writes leads as CSV with a header row
func WriteCSV(w io.Writer, leads []models.Lead) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, lead := range leads {
		if err := writer.Write(record(lead)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes leads as a single-sheet workbook
func WriteXLSX(w io.Writer, leads []models.Lead) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, lead := range leads {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			lead.ID, lead.Name, lead.Email, lead.Phone, lead.Company, lead.JobTitle,
			string(lead.Status), string(lead.Source), lead.Value, lead.AssignedTo,
			timestamp(lead.LastContacted), timestamp(&lead.CreatedAt),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetColWidth(sheetName, "A", lastCol, 18); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	return f.Write(w)
}

// Write writes leads in the given format
func Write(w io.Writer, format Format, leads []models.Lead) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, leads)
	case FormatXLSX:
		return WriteXLSX(w, leads)
	}
	return domain.NewValidationError(fmt.Sprintf("unsupported export format %q", format))
}

// Uploader stores an export file remotely
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// Result describes a written export
type Result struct {
	Path     string
	Rows     int
	Location string // remote location when uploaded
}

// Service writes exports into a local directory
type Service struct {
	dir      string
	uploader Uploader
	log      logger.Logger
	now      func() time.Time
}

// NewService creates an export service. uploader may be nil.
func NewService(dir string, uploader Uploader, log logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{dir: dir, uploader: uploader, log: log, now: time.Now}
}

// Export writes leads to a new file and uploads it when an uploader is configured
func (s *Service) Export(ctx context.Context, format Format, leads []models.Lead) (*Result, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	name := fmt.Sprintf("leads_%s.%s", s.now().UTC().Format("20060102_150405"), format)
	path := filepath.Join(s.dir, name)

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(file, format, leads); err != nil {
		file.Close()
		return nil, err
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}

	result := &Result{Path: path, Rows: len(leads)}
	s.log.Info("export written", "path", path, "rows", len(leads), "format", string(format))

	if s.uploader == nil {
		return result, nil
	}

	upload, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer upload.Close()

	location, err := s.uploader.Upload(ctx, "exports/"+name, upload, contentType(format))
	if err != nil {
		return result, fmt.Errorf("failed to upload export: %w", err)
	}
	result.Location = location
	s.log.Info("export uploaded", "location", location)
	return result, nil
}

func contentType(format Format) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}
