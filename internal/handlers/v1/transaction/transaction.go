package transaction

import (
	"time"

	"github.com/carson-networks/trackease/internal/domain"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID        string  `json:"id" doc:"Transaction UUID"`
	Type      string  `json:"type" enum:"income,expense" doc:"Transaction type"`
	Category  string  `json:"category" doc:"Category label"`
	Amount    float64 `json:"amount" doc:"Amount in pesos, two decimal places"`
	Note      string  `json:"note" doc:"Free-text note"`
	Date      string  `json:"date" doc:"RFC3339 transaction date, empty when unknown"`
	CreatedAt string  `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromDomain(tx domain.Transaction) Transaction {
	return Transaction{
		ID:        tx.ID.String(),
		Type:      string(tx.Type),
		Category:  tx.Category,
		Amount:    tx.Amount.Float64(),
		Note:      tx.Note,
		Date:      formatTime(tx.Date),
		CreatedAt: formatTime(tx.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
