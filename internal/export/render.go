package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	// Zone data is compiled in so timestamps render correctly even where the
	// host has no tz database (scratch containers, minimal CI images).
	_ "time/tzdata"

	"github.com/dcarrillo/splitser-export/internal/splitser"
)

// exportTimeZone is the wall-clock zone timestamps are rendered in. The CSV
// is pasted into a spreadsheet maintained in this zone.
const exportTimeZone = "America/Mexico_City"

const listURLTemplate = "https://app.splitser.com/lists/%s/expenses/%s"

// Renderer turns normalized transactions into CSV text. Renderers are total
// over decoded data: type enforcement happened at the API boundary, so no
// cell can fail at render time.
type Renderer struct {
	loc *time.Location
}

// NewRenderer creates a Renderer for the fixed export timezone.
func NewRenderer() (*Renderer, error) {
	loc, err := time.LoadLocation(exportTimeZone)
	if err != nil {
		return nil, fmt.Errorf("NewRenderer: load timezone %s: %w", exportTimeZone, err)
	}
	return &Renderer{loc: loc}, nil
}

// column couples an output column name with its cell renderer. A nil cell
// means the column is declared but excluded from output.
type column struct {
	name string
	cell func(r *Renderer, tx *Transaction) string
}

// columns lists every declared column in output order. The order and the set
// of excluded columns (nil cell) are part of the output contract; downstream
// spreadsheets reference cells by position.
var columns = []column{
	{name: "id", cell: func(r *Renderer, tx *Transaction) string { return tx.ID }},
	{name: "name", cell: func(r *Renderer, tx *Transaction) string { return tx.Name }},
	{name: "payed_by_id", cell: func(r *Renderer, tx *Transaction) string { return actorCell(tx.PayedByID) }},
	{name: "created_at", cell: func(r *Renderer, tx *Transaction) string { return r.formatTimestamp(tx.CreatedAt) }},
	{name: "updated_at", cell: func(r *Renderer, tx *Transaction) string { return r.formatTimestamp(tx.UpdatedAt) }},
	{name: "source_amount", cell: func(r *Renderer, tx *Transaction) string { return formatAmount(tx.SourceAmount) }},
	{name: "shares", cell: func(r *Renderer, tx *Transaction) string { return formatShares(tx.Shares) }},
	{name: "category", cell: func(r *Renderer, tx *Transaction) string { return formatCategory(tx.Category) }},
	{name: "payed_on", cell: func(r *Renderer, tx *Transaction) string { return stringCell(tx.PayedOn) }},
	{name: "amount", cell: func(r *Renderer, tx *Transaction) string { return formatAmount(tx.Amount) }},
	{name: "status", cell: func(r *Renderer, tx *Transaction) string { return tx.Status }},
	{name: "type", cell: func(r *Renderer, tx *Transaction) string { return string(tx.Kind) }},
	{name: "image", cell: func(r *Renderer, tx *Transaction) string { return formatImage(tx.Image) }},
	{name: "received_by_id", cell: func(r *Renderer, tx *Transaction) string { return actorCell(tx.ReceivedByID) }},
	{name: "received_on", cell: func(r *Renderer, tx *Transaction) string { return stringCell(tx.ReceivedOn) }},
	{name: "recurring_task"},
	{name: "list_id"},
	{name: "settle_id"},
	{name: "payed_by_member_instance_id"},
	{name: "received_by_member_instance_id", cell: func(r *Renderer, tx *Transaction) string { return actorCell(tx.ReceivedByMemberInstanceID) }},
	{name: "exchange_rate", cell: func(r *Renderer, tx *Transaction) string { return tx.ExchangeRate }},
	{name: "url", cell: func(r *Renderer, tx *Transaction) string {
		return fmt.Sprintf(listURLTemplate, tx.ListID, tx.ID)
	}},
}

// RenderCSV renders the transactions as CSV text: one header line of the
// active column names plus one line per transaction. Every data cell is
// double-quoted with interior quotes doubled; no other escaping. Rendering is
// deterministic, so equal inputs produce byte-identical output.
func (r *Renderer) RenderCSV(txs []Transaction) string {
	if len(txs) == 0 {
		return ""
	}

	active := make([]column, 0, len(columns))
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		if c.cell == nil {
			continue
		}
		active = append(active, c)
		names = append(names, c.name)
	}

	lines := make([]string, 0, len(txs)+1)
	lines = append(lines, strings.Join(names, ","))

	for i := range txs {
		cells := make([]string, len(active))
		for j, c := range active {
			cells[j] = escapeCell(c.cell(r, &txs[i]))
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n")
}

// escapeCell wraps a rendered value in double quotes, doubling any literal
// quote. Newlines pass through verbatim per CSV convention.
func escapeCell(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// stringCell renders an optional string field; absent values become empty
// cells, never placeholders.
func stringCell(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// actorCell renders an optional actor-id field. Absent ids are empty cells;
// present ids go through the actor table and may come back as the
// unknown-actor placeholder.
func actorCell(id *string) string {
	if id == nil {
		return ""
	}
	return ActorName(*id)
}

func (r *Renderer) formatTimestamp(epochSeconds int64) string {
	return time.Unix(epochSeconds, 0).In(r.loc).Format("2006-01-02 15:04:05")
}

// formatAmount renders minor units as a plain decimal with exactly two
// places, no currency symbol.
func formatAmount(a splitser.CurrencyAmount) string {
	return strconv.FormatFloat(float64(a.Fractional)/100, 'f', 2, 64)
}

func formatCategory(c *splitser.Category) string {
	if c == nil {
		return ""
	}
	if c.MainDescription != "" && c.SubDescription != "" {
		return fmt.Sprintf("%s - %s", c.MainDescription, c.SubDescription)
	}
	return fmt.Sprintf("category: %v Unknown Category or invalid category", *c)
}

func formatImage(env *splitser.ImageEnvelope) string {
	if env == nil {
		return ""
	}
	if env.Image == nil {
		return "image: malformed image"
	}
	return env.Image.Original
}

func formatShares(shares []splitser.ShareEnvelope) string {
	parts := make([]string, len(shares))
	for i, env := range shares {
		parts[i] = fmt.Sprintf("%s %s", ActorName(env.Share.MemberID), formatAmount(env.Share.Amount))
	}
	return strings.Join(parts, ",")
}
