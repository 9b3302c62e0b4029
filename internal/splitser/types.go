// Package splitser contains the wire types and HTTP client for the Splitser
// list-items API. Decoding is strict: a wrong-typed scalar anywhere in the
// response is a contract break and fails the whole fetch.
package splitser

import (
	"encoding/json"
	"fmt"
)

// Record lifecycle statuses as they appear on the wire.
const (
	StatusActivate = "activate"
	StatusDeleted  = "deleted"
)

// Pagination describes the page window of a list-items response.
type Pagination struct {
	TotalPages   int `json:"total_pages"`
	Offset       int `json:"offset"`
	PerPage      int `json:"per_page"`
	TotalEntries int `json:"total_entries"`
	CurrentPage  int `json:"current_page"`
}

// Sorting echoes the sort spec the server applied.
type Sorting struct {
	Fields         []map[string]string `json:"fields"`
	SortableFields []string            `json:"sortable_fields"`
}

// CurrencyAmount is a monetary value in integer minor units (e.g. cents).
type CurrencyAmount struct {
	Currency   string `json:"currency"`
	Fractional int64  `json:"fractional"`
}

// Category is an optional expense/income classification.
type Category struct {
	ID              int64  `json:"id"`
	SubID           int64  `json:"sub_id"`
	MainID          int64  `json:"main_id"`
	Icon            string `json:"icon"`
	CategorySource  string `json:"category_source"`
	MainDescription string `json:"main_description"`
	SubDescription  string `json:"sub_description"`
}

// Image holds the four resolution variants of an attached receipt image.
type Image struct {
	Original string `json:"original"`
	Large    string `json:"large"`
	Small    string `json:"small"`
	Micro    string `json:"micro"`
}

// ImageEnvelope is the nesting the API wraps images in. Image stays a pointer
// so a broken nesting is observable downstream instead of decoding to zero.
type ImageEnvelope struct {
	Image *Image `json:"image"`
}

// ShareMeta carries share bookkeeping the exporter passes through untouched.
type ShareMeta struct {
	Type       string  `json:"type"`
	Multiplier float64 `json:"multiplier"`
}

// Share is one member's portion of a transaction amount.
type Share struct {
	ID               string          `json:"id"`
	Meta             ShareMeta       `json:"meta"`
	MemberInstanceID *string         `json:"member_instance_id"`
	MemberID         string          `json:"member_id"`
	MemberInstance   json.RawMessage `json:"member_instance"`
	SourceAmount     CurrencyAmount  `json:"source_amount"`
	Amount           CurrencyAmount  `json:"amount"`
}

// ShareEnvelope is the nesting the API wraps each share in.
type ShareEnvelope struct {
	Share Share `json:"share"`
}

// Expense is a cost record paid by one member and shared across the list.
type Expense struct {
	ID                      string          `json:"id"`
	Name                    string          `json:"name"`
	ListID                  string          `json:"list_id"`
	SettleID                *string         `json:"settle_id"`
	PayedByMemberInstanceID *string         `json:"payed_by_member_instance_id"`
	Status                  string          `json:"status"`
	PayedOn                 string          `json:"payed_on"`
	ExchangeRate            string          `json:"exchange_rate"`
	PayedByID               string          `json:"payed_by_id"`
	Category                *Category       `json:"category"`
	CreatedAt               int64           `json:"created_at"`
	UpdatedAt               int64           `json:"updated_at"`
	SourceAmount            CurrencyAmount  `json:"source_amount"`
	Amount                  CurrencyAmount  `json:"amount"`
	Shares                  []ShareEnvelope `json:"shares"`
	RecurringTask           json.RawMessage `json:"recurring_task"`
	Image                   *ImageEnvelope  `json:"image"`
}

// Income is a received-funds record; the mirror image of Expense.
type Income struct {
	ID                         string          `json:"id"`
	Name                       string          `json:"name"`
	ListID                     string          `json:"list_id"`
	SettleID                   *string         `json:"settle_id"`
	Status                     string          `json:"status"`
	ExchangeRate               string          `json:"exchange_rate"`
	ReceivedByID               string          `json:"received_by_id"`
	ReceivedByMemberInstanceID *string         `json:"received_by_member_instance_id"`
	ReceivedOn                 string          `json:"received_on"`
	CreatedAt                  int64           `json:"created_at"`
	UpdatedAt                  int64           `json:"updated_at"`
	Category                   *Category       `json:"category"`
	SourceAmount               CurrencyAmount  `json:"source_amount"`
	Amount                     CurrencyAmount  `json:"amount"`
	Shares                     []ShareEnvelope `json:"shares"`
	RecurringTask              json.RawMessage `json:"recurring_task"`
	Image                      *ImageEnvelope  `json:"image"`
}

// ListPayment is a settlement record. The exporter never emits these.
type ListPayment struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// DataItem is one envelope from the page's data array. The source contract is
// that at most one of the three record kinds is present.
type DataItem struct {
	Permissions json.RawMessage `json:"permissions"`
	Expense     *Expense        `json:"expense"`
	Income      *Income         `json:"income"`
	ListPayment *ListPayment    `json:"list_payment"`
}

// Page is one fetched batch of list items. RawData keeps the verbatim bytes
// of the data array so the raw dump and schema discovery see exactly what the
// server sent, not a re-marshaled version.
type Page struct {
	Pagination  Pagination
	Sorting     Sorting
	Filter      json.RawMessage
	Permissions json.RawMessage
	Data        []DataItem
	RawData     json.RawMessage
}

func (p *Page) UnmarshalJSON(b []byte) error {
	var raw struct {
		Pagination  Pagination      `json:"pagination"`
		Sorting     Sorting         `json:"sorting"`
		Filter      json.RawMessage `json:"filter"`
		Permissions json.RawMessage `json:"permissions"`
		Data        json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode page: %w", err)
	}

	p.Pagination = raw.Pagination
	p.Sorting = raw.Sorting
	p.Filter = raw.Filter
	p.Permissions = raw.Permissions
	p.RawData = raw.Data
	p.Data = nil

	if len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, &p.Data); err != nil {
			return fmt.Errorf("decode page data: %w", err)
		}
	}
	return nil
}
