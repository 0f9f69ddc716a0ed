package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryEntry is the display record kept for one completed projection.
type HistoryEntry struct {
	ID            string          `json:"id"`
	Timestamp     time.Time       `json:"timestamp"`
	Label         string          `json:"result"`
	TotalInvested decimal.Decimal `json:"totalInvested"`
	TotalValue    decimal.Decimal `json:"value"`
}
