package get_schedule

import (
	"time"

	"github.com/avlebedev/carservice-admin/internal/domain"
)

// Request модель запроса дневной сетки расписания
type Request struct {
	CompanyID int64     // ID компании
	Date      time.Time // Дата (без времени)
}

// SlotPayload слот сетки с аннотацией занятости
// У занятого слота ровно один из флагов IsStart/IsContinuation истинен
type SlotPayload struct {
	StartTime      string   `json:"startTime"` // "10:00"
	EndTime        string   `json:"endTime"`   // "10:30"
	Available      bool     `json:"available"`
	BookingID      *int64   `json:"bookingId,omitempty"`
	ClientName     *string  `json:"clientName,omitempty"`
	ServiceNames   []string `json:"serviceNames,omitempty"`
	IsStart        bool     `json:"isStart,omitempty"`
	IsContinuation bool     `json:"isContinuation,omitempty"`
}

// Response модель ответа с дневной сеткой
type Response struct {
	Date                string        `json:"date"` // "2025-10-15"
	SlotDurationMinutes int           `json:"slotDurationMinutes"`
	WorkStart           string        `json:"workStart"` // "08:00"
	WorkEnd             string        `json:"workEnd"`   // "18:00"
	Slots               []SlotPayload `json:"slots"`
}

func fromDomainSlots(slots []domain.ScheduleSlot) []SlotPayload {
	payload := make([]SlotPayload, len(slots))
	for i, s := range slots {
		payload[i] = SlotPayload{
			StartTime:      s.StartTime.String(),
			EndTime:        s.EndTime.String(),
			Available:      s.Available,
			BookingID:      s.BookingID,
			ClientName:     s.ClientName,
			ServiceNames:   s.ServiceNames,
			IsStart:        s.IsStart,
			IsContinuation: s.IsContinuation,
		}
	}
	return payload
}
