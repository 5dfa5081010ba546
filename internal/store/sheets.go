package store

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"fjacquet/spendlens/internal/models"
)

// SheetsBackend keeps the record set on one tab of a Google spreadsheet,
// header row first. An empty tab counts as no data yet.
type SheetsBackend struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsBackend creates the Sheets service with opts and returns a backend
// for the named tab.
func NewSheetsBackend(ctx context.Context, spreadsheetID, sheetName string, opts ...option.ClientOption) (*SheetsBackend, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("missing spreadsheet id")
	}
	if sheetName == "" {
		sheetName = DefaultWorksheet
	}

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetsBackend{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

// SheetsCredentialOptions returns the client options for a service-account
// credentials file. Without a file only the scope is set and the client uses
// application default credentials.
func SheetsCredentialOptions(credentialsFile string) ([]option.ClientOption, error) {
	if credentialsFile == "" {
		return []option.ClientOption{option.WithScopes(gsheet.SpreadsheetsScope)}, nil
	}
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	return []option.ClientOption{
		option.WithCredentialsJSON(data),
		option.WithScopes(gsheet.SpreadsheetsScope),
	}, nil
}

// Name implements Backend.
func (b *SheetsBackend) Name() string { return BackendSheets }

// Location implements Backend.
func (b *SheetsBackend) Location() string {
	return fmt.Sprintf("%s/%s", b.spreadsheetID, b.sheetName)
}

func (b *SheetsBackend) rng(cells string) string {
	return fmt.Sprintf("'%s'!%s", b.sheetName, cells)
}

// Read implements Backend.
func (b *SheetsBackend) Read(ctx context.Context) ([]models.Expense, error) {
	resp, err := b.svc.Spreadsheets.Values.Get(b.spreadsheetID, b.rng("A:D")).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", b.Location(), err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("sheet %s is empty: %w", b.Location(), os.ErrNotExist)
	}

	table := make([][]string, 0, len(resp.Values))
	for _, line := range resp.Values {
		table = append(table, toStrings(line))
	}
	return decodeRows(BackendSheets, rowsFromTable(table))
}

// Write implements Backend. The tab is cleared, then the header and rows are
// written raw from A1.
func (b *SheetsBackend) Write(ctx context.Context, records []models.Expense) error {
	if _, err := b.svc.Spreadsheets.Values.Clear(b.spreadsheetID, b.rng("A:D"), &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet %s: %w", b.Location(), err)
	}

	values := make([][]interface{}, 0, len(records)+1)
	header := make([]interface{}, 0, 4)
	for _, h := range models.Headers() {
		header = append(header, h)
	}
	values = append(values, header)
	for _, r := range records {
		row := encodeRow(r)
		values = append(values, []interface{}{row.Date, row.Category, r.Amount.Round(2).InexactFloat64(), row.Notes})
	}

	vr := &gsheet.ValueRange{Values: values}
	if _, err := b.svc.Spreadsheets.Values.Update(b.spreadsheetID, b.rng("A1"), vr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("write sheet %s: %w", b.Location(), err)
	}
	return nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		switch val := v.(type) {
		case float64:
			out[i] = strconv.FormatFloat(val, 'f', -1, 64)
		case string:
			out[i] = val
		default:
			out[i] = fmt.Sprint(val)
		}
	}
	return out
}
