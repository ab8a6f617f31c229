package get_available_slots

import (
	"time"

	"github.com/avlebedev/carservice-admin/pkg/types"
)

// Request модель запроса свободных времен начала
type Request struct {
	CompanyID  int64     // ID компании
	Date       time.Time // Дата (без времени)
	ServiceIDs []int64   // Услуги; их суммарная длительность должна уместиться
}

// Response модель ответа со свободными временами начала
type Response struct {
	Date            string   `json:"date"` // "2025-10-15"
	DurationMinutes int      `json:"durationMinutes"`
	Slots           []string `json:"slots"` // ["10:00", "10:30", ...]
}

func buildResponse(date time.Time, dateFormat string, duration int, starts []types.TimeString) *Response {
	slots := make([]string, len(starts))
	for i, s := range starts {
		slots[i] = s.String()
	}

	return &Response{
		Date:            date.Format(dateFormat),
		DurationMinutes: duration,
		Slots:           slots,
	}
}
