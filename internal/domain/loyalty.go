package domain

import "time"

// LoyaltyReason причина движения баллов
type LoyaltyReason string

const (
	LoyaltyReasonAccrual    LoyaltyReason = "accrual"
	LoyaltyReasonRedemption LoyaltyReason = "redemption"
	LoyaltyReasonBooking    LoyaltyReason = "booking_completed"
	LoyaltyReasonAdjustment LoyaltyReason = "manual_adjustment"
)

// LoyaltyAccrualPercent процент от суммы чека, начисляемый баллами
// за завершенное бронирование
const LoyaltyAccrualPercent = 5

// LoyaltyPointsForTotal считает баллы за завершенное бронирование
func LoyaltyPointsForTotal(total float64) int {
	return int(total) * LoyaltyAccrualPercent / 100
}

// LoyaltyTransaction движение баллов лояльности клиента
// ID - uuid, выдаваемый вызывающей стороной; повторная запись с тем же ID
// отклоняется, что делает начисления идемпотентными
type LoyaltyTransaction struct {
	ID        string // uuid
	ClientID  int64
	Delta     int // Положительное - начисление, отрицательное - списание
	Reason    LoyaltyReason
	BookingID *int64
	Comment   *string
	CreatedAt time.Time
}
