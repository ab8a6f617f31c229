package models

import (
	"time"

	"github.com/avlebedev/carservice-admin/internal/domain"
)

// Request модели

// AccrueRequest запрос на начисление баллов клиенту
type AccrueRequest struct {
	CompanyID      int64   `json:"-"`
	ClientID       int64   `json:"-"`
	Points         int     `json:"points"`
	Comment        *string `json:"comment,omitempty"`
	IdempotencyKey string  `json:"idempotencyKey,omitempty"` // uuid; пустой - сгенерируется
}

// RedeemRequest запрос на списание баллов клиента
type RedeemRequest struct {
	CompanyID      int64   `json:"-"`
	ClientID       int64   `json:"-"`
	Points         int     `json:"points"`
	Comment        *string `json:"comment,omitempty"`
	IdempotencyKey string  `json:"idempotencyKey,omitempty"`
}

// Response модели

// BalanceResponse ответ с новым балансом клиента
type BalanceResponse struct {
	ClientID int64 `json:"clientId"`
	Balance  int   `json:"balance"`
}

// TransactionResponse движение баллов в истории
type TransactionResponse struct {
	ID        string    `json:"id"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
	BookingID *int64    `json:"bookingId,omitempty"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// HistoryResponse ответ с историей движений баллов
type HistoryResponse struct {
	ClientID     int64                 `json:"clientId"`
	Balance      int                   `json:"balance"`
	Transactions []TransactionResponse `json:"transactions"`
}

// FromDomainTransactions конвертирует движения баллов в DTO
func FromDomainTransactions(transactions []domain.LoyaltyTransaction) []TransactionResponse {
	resp := make([]TransactionResponse, len(transactions))
	for i, tx := range transactions {
		resp[i] = TransactionResponse{
			ID:        tx.ID,
			Delta:     tx.Delta,
			Reason:    string(tx.Reason),
			BookingID: tx.BookingID,
			Comment:   tx.Comment,
			CreatedAt: tx.CreatedAt,
		}
	}
	return resp
}
