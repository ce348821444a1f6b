package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"brushquote/internal/domain"
	"brushquote/internal/form"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row for line-item export.
var columns = []string{
	"Field",
	"Item",
	"Description",
	"Quantity",
	"Unit Price",
	"Line Total",
	"Selected",
}

// Entry is one exportable line item together with the field it came from.
type Entry struct {
	FieldLabel string
	Item       domain.LineItem
}

// CollectLineItems extracts line items from every quote-table, upsell-table
// and scope-of-work field of a submitted proposal. The schema snapshot on the
// proposal record drives which values are item lists.
func CollectLineItems(p *domain.Proposal) ([]Entry, error) {
	fields, err := domain.ParseFieldConfigs(p.FieldSchema)
	if err != nil {
		return nil, fmt.Errorf("export.CollectLineItems: %w", err)
	}

	var values map[string]any
	if len(p.FieldValues) > 0 {
		if err := json.Unmarshal(p.FieldValues, &values); err != nil {
			return nil, fmt.Errorf("export.CollectLineItems values: %w", err)
		}
	}

	var entries []Entry
	for i := range fields {
		f := &fields[i]
		if !f.Type.ItemList() {
			continue
		}
		for _, item := range form.ToLineItems(values[f.ID]) {
			entries = append(entries, Entry{FieldLabel: f.DisplayLabel(), Item: item})
		}
	}
	return entries, nil
}

// Writer wraps csv.Writer for exporting proposal line items as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteEntries converts line-item entries to CSV rows and writes them.
func (w *Writer) WriteEntries(entries []Entry) error {
	for i := range entries {
		if err := w.csv.Write(entryToRow(&entries[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func entryToRow(e *Entry) []string {
	item := &e.Item
	row := make([]string, len(columns))
	row[0] = e.FieldLabel
	row[1] = item.DisplayName()
	row[2] = item.Description
	row[3] = formatQuantity(item.Quantity)
	row[4] = formatMoney(item.Price)
	row[5] = formatMoney(lineTotal(item))
	row[6] = formatSelected(item.Selected)
	return row
}

// lineTotal treats a zero quantity as one so priced items without an
// explicit quantity still total correctly.
func lineTotal(item *domain.LineItem) float64 {
	qty := item.Quantity
	if qty == 0 {
		qty = 1
	}
	return qty * item.Price
}

func formatQuantity(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatSelected(v *bool) string {
	if v == nil || *v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a client name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	sanitized := SanitizeFilename(name)
	if sanitized == "" {
		sanitized = "proposal"
	}
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
