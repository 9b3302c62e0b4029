package export

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/dcarrillo/splitser-export/internal/logger"
	"github.com/dcarrillo/splitser-export/internal/splitser"
)

// Kind tags a normalized transaction with its originating record kind.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// Transaction is the unioned output row: the merge of the expense and income
// record shapes plus the kind tag. Fields that exist on only one of the two
// variants are pointers and stay nil on the other.
type Transaction struct {
	Kind         Kind
	ID           string
	Name         string
	ListID       string
	SettleID     *string
	Status       string
	ExchangeRate string
	CreatedAt    int64
	UpdatedAt    int64
	SourceAmount splitser.CurrencyAmount
	Amount       splitser.CurrencyAmount
	Category     *splitser.Category
	Shares       []splitser.ShareEnvelope
	Image        *splitser.ImageEnvelope

	RecurringTask json.RawMessage

	// Expense-only fields.
	PayedOn                 *string
	PayedByID               *string
	PayedByMemberInstanceID *string

	// Income-only fields.
	ReceivedOn                 *string
	ReceivedByID               *string
	ReceivedByMemberInstanceID *string
}

// Normalize converts the data items of one page into ordered transactions.
//
// Settlement (list_payment) records are dropped regardless of status: deleted
// ones silently, anything else with a warning. The warning marks a known gap,
// not an error condition; the upstream source never emitted settlements
// either. Unrecognized envelopes are dropped with a warning too. Normalize
// performs no I/O beyond logging and never fails.
func Normalize(ctx context.Context, items []splitser.DataItem) []Transaction {
	log := logger.FromContext(ctx)

	txs := make([]Transaction, 0, len(items))
	for _, item := range items {
		switch {
		case item.Expense != nil:
			txs = append(txs, fromExpense(item.Expense))
		case item.Income != nil:
			txs = append(txs, fromIncome(item.Income))
		case item.ListPayment != nil:
			if item.ListPayment.Status == splitser.StatusDeleted {
				log.Info().
					Str("id", item.ListPayment.ID).
					Msg("Disregarding deleted list payment")
			} else {
				log.Warn().
					Str("id", item.ListPayment.ID).
					Str("status", item.ListPayment.Status).
					Msg("Disregarding non-deleted list payment")
			}
		default:
			log.Warn().Msg("Disregarding data item with no recognized record kind")
		}
	}

	// Newest first; stable so same-second records keep their page order.
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].CreatedAt > txs[j].CreatedAt
	})
	return txs
}

func fromExpense(e *splitser.Expense) Transaction {
	return Transaction{
		Kind:                    KindExpense,
		ID:                      e.ID,
		Name:                    e.Name,
		ListID:                  e.ListID,
		SettleID:                e.SettleID,
		Status:                  e.Status,
		ExchangeRate:            e.ExchangeRate,
		CreatedAt:               e.CreatedAt,
		UpdatedAt:               e.UpdatedAt,
		SourceAmount:            e.SourceAmount,
		Amount:                  e.Amount,
		Category:                e.Category,
		Shares:                  e.Shares,
		Image:                   e.Image,
		RecurringTask:           e.RecurringTask,
		PayedOn:                 &e.PayedOn,
		PayedByID:               &e.PayedByID,
		PayedByMemberInstanceID: e.PayedByMemberInstanceID,
	}
}

func fromIncome(in *splitser.Income) Transaction {
	return Transaction{
		Kind:                       KindIncome,
		ID:                         in.ID,
		Name:                       in.Name,
		ListID:                     in.ListID,
		SettleID:                   in.SettleID,
		Status:                     in.Status,
		ExchangeRate:               in.ExchangeRate,
		CreatedAt:                  in.CreatedAt,
		UpdatedAt:                  in.UpdatedAt,
		SourceAmount:               in.SourceAmount,
		Amount:                     in.Amount,
		Category:                   in.Category,
		Shares:                     in.Shares,
		Image:                      in.Image,
		RecurringTask:              in.RecurringTask,
		ReceivedOn:                 &in.ReceivedOn,
		ReceivedByID:               &in.ReceivedByID,
		ReceivedByMemberInstanceID: in.ReceivedByMemberInstanceID,
	}
}
