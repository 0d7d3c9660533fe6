package filestore

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/trackease/internal/domain"
)

// legacyIDNamespace derives stable UUIDs for records written with non-UUID ids.
var legacyIDNamespace = uuid.Must(uuid.FromString("6f1c3c52-3f0e-4b7e-9d55-2b8f0e6a4d10"))

type document struct {
	Transactions []transactionRecord `json:"transactions"`
	Users        []userRecord        `json:"users,omitempty"`
}

type transactionRecord struct {
	ID        string          `json:"id"`
	UserID    *uuid.UUID      `json:"userId,omitempty"`
	Type      string          `json:"type"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
	Date      fileTime        `json:"date"`
	CreatedAt fileTime        `json:"createdAt"`
}

type userRecord struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt fileTime  `json:"createdAt"`
}

func (d *document) clone() *document {
	return &document{
		Transactions: append([]transactionRecord(nil), d.Transactions...),
		Users:        append([]userRecord(nil), d.Users...),
	}
}

func recordID(id string) uuid.UUID {
	if parsed, err := uuid.FromString(id); err == nil {
		return parsed
	}
	return uuid.NewV5(legacyIDNamespace, id)
}

func (r *transactionRecord) owner() uuid.UUID {
	if r.UserID == nil {
		return uuid.Nil
	}
	return *r.UserID
}

func (d *document) resolveDates(loc *time.Location) {
	for i := range d.Transactions {
		d.Transactions[i].Date.resolve(loc)
		d.Transactions[i].CreatedAt.resolve(loc)
	}
	for i := range d.Users {
		d.Users[i].CreatedAt.resolve(loc)
	}
}

// fileTime tolerates whatever a hand-edited file holds: RFC3339, datetime-local,
// epoch milliseconds. Anything unreadable decodes as the zero time.
// Strings are kept raw until resolve so zone-less values use the store location.
type fileTime struct {
	time.Time
	raw string
}

func (t fileTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

func (t *fileTime) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.raw = s
		return nil
	}

	var millis int64
	if err := json.Unmarshal(data, &millis); err == nil {
		t.Time = time.UnixMilli(millis)
	}
	return nil
}

func (t *fileTime) resolve(loc *time.Location) {
	if t.raw == "" {
		return
	}
	if parsed, err := domain.ParseDate(t.raw, loc); err == nil {
		t.Time = parsed
	}
	t.raw = ""
}
