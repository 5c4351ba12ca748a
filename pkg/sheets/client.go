// Package sheets wraps the Google Sheets API as the row store backing ticket
// registrations: ordered rows of string cells, append with a written-range
// acknowledgement, targeted range writes, and tab management.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Client performs row operations against a single spreadsheet.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// New creates a Sheets client authenticated with a service-account key.
func New(ctx context.Context, spreadsheetID, serviceAccountJSON string, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	if strings.TrimSpace(serviceAccountJSON) == "" {
		return nil, fmt.Errorf("google service account credentials are required")
	}
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON([]byte(serviceAccountJSON)),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	logger.Info("sheets client ready", zap.String("spreadsheet_id", spreadsheetID))
	return &Client{svc: svc, spreadsheetID: spreadsheetID, logger: logger}, nil
}

// ReadRange returns the values of an A1 range as rows of string cells.
// Trailing empty cells are absent, mirroring the API response.
func (c *Client) ReadRange(ctx context.Context, a1 string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, a1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", a1, err)
	}
	return toStringRows(resp.Values), nil
}

// AppendRow appends one row after the last data row of the range's sheet and
// returns the range the API reports as written, from which the caller derives
// the inserted row position.
func (c *Client) AppendRow(ctx context.Context, a1 string, row []string) (string, error) {
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{toInterfaceRow(row)}}
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, a1, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append %s: %w", a1, err)
	}
	if resp.Updates == nil {
		return "", nil
	}
	return resp.Updates.UpdatedRange, nil
}

// WriteRange overwrites the cells of an A1 range.
func (c *Client) WriteRange(ctx context.Context, a1 string, values [][]string) error {
	rows := make([][]interface{}, len(values))
	for i, r := range values {
		rows[i] = toInterfaceRow(r)
	}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, a1, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write %s: %w", a1, err)
	}
	return nil
}

// SheetTitles lists the tab titles of the spreadsheet.
func (c *Client) SheetTitles(ctx context.Context) ([]string, error) {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("spreadsheet metadata: %w", err)
	}
	titles := make([]string, 0, len(meta.Sheets))
	for _, s := range meta.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}
	return titles, nil
}

// CreateSheet adds a new tab with the given title.
func (c *Client) CreateSheet(ctx context.Context, title string) error {
	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add sheet %q: %w", title, err)
	}
	c.logger.Info("sheet created", zap.String("title", title))
	return nil
}

func toStringRows(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}
		rows[i] = cells
	}
	return rows
}

func toInterfaceRow(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
