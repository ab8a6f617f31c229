package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlebedev/carservice-admin/internal/api/middleware"
	authmodels "github.com/avlebedev/carservice-admin/internal/service/auth/models"
	createBooking "github.com/avlebedev/carservice-admin/internal/usecase/create_booking"
	"github.com/avlebedev/carservice-admin/pkg/types"
)

type fakeUseCase struct {
	resp *createBooking.Response
	err  error

	gotReq *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc CreateBookingUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	// Сессию кладем так же, как это делает Auth middleware
	session := &authmodels.Session{UserID: 1, CompanyID: 3, Role: "admin"}
	req = req.WithContext(middleware.ContextWithSession(req.Context(), session))

	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	created := time.Date(2025, 10, 28, 12, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{
		resp: &createBooking.Response{
			ID:              42,
			ClientID:        10,
			VehicleID:       20,
			BookingDate:     time.Date(2025, 10, 29, 0, 0, 0, 0, time.UTC),
			StartTime:       types.TimeString("10:00"),
			EndTime:         types.TimeString("11:00"),
			DurationMinutes: 60,
			Services: []createBooking.ServicePayload{
				{ServiceID: 5, Name: "Замена масла", DurationMinutes: 60, Price: 3000},
			},
			TotalPrice:   3000,
			Status:       "pending",
			ScheduledAt:  "2025-10-29T10:00:00+03:00",
			ClientName:   "Иван Петров",
			ClientPhone:  "+79990001122",
			VehiclePlate: "А123БВ77",
			CreatedAt:    created,
			UpdatedAt:    created,
		},
	}

	body := `{"clientId":10,"vehicleId":20,"serviceIds":[5],"bookingDate":"2025-10-29","startTime":"10:00"}`
	rec := doRequest(t, uc, body)

	assert.Equal(t, http.StatusCreated, rec.Code)

	// Company ID берется из сессии, а не из тела запроса
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(3), uc.gotReq.CompanyID)
	assert.Equal(t, types.TimeString("10:00"), uc.gotReq.StartTime)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "2025-10-29", resp.BookingDate)
	assert.Equal(t, "11:00", resp.EndTime)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "Замена масла", resp.Services[0].Name)
}

func TestHandle_ISOStartTimeNormalized(t *testing.T) {
	cases := []struct {
		name      string
		startTime string
	}{
		{"iso_with_zone", "2025-10-29T10:00:00Z"},
		{"iso_with_offset", "2025-10-29T10:00:00+03:00"},
		{"date_and_time", "2025-10-29 10:00:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &fakeUseCase{err: createBooking.ErrSlotNotAvailable}
			body := `{"clientId":10,"vehicleId":20,"serviceIds":[5],"bookingDate":"2025-10-29","startTime":"` + tc.startTime + `"}`
			rec := doRequest(t, uc, body)

			// До use case дошло нормализованное "HH:MM"
			require.NotNil(t, uc.gotReq)
			assert.Equal(t, types.TimeString("10:00"), uc.gotReq.StartTime)
			assert.Equal(t, http.StatusConflict, rec.Code)
		})
	}
}

func TestHandle_MalformedJSON(t *testing.T) {
	uc := &fakeUseCase{}
	rec := doRequest(t, uc, `{"clientId":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.gotReq)
}

func TestHandle_UnknownField(t *testing.T) {
	uc := &fakeUseCase{}
	body := `{"clientId":10,"vehicleId":20,"serviceIds":[5],"bookingDate":"2025-10-29","startTime":"10:00","companyId":99}`
	rec := doRequest(t, uc, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.gotReq)
}

func TestHandle_BadDateFormat(t *testing.T) {
	uc := &fakeUseCase{}
	body := `{"clientId":10,"vehicleId":20,"serviceIds":[5],"bookingDate":"29.10.2025","startTime":"10:00"}`
	rec := doRequest(t, uc, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "YYYY-MM-DD")
	assert.Nil(t, uc.gotReq)
}

func TestHandle_SlotConflict(t *testing.T) {
	uc := &fakeUseCase{err: createBooking.ErrSlotNotAvailable}
	body := `{"clientId":10,"vehicleId":20,"serviceIds":[5],"bookingDate":"2025-10-29","startTime":"10:00"}`
	rec := doRequest(t, uc, body)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), msgSlotNotAvailable)
}

func TestHandle_ClientNotFound(t *testing.T) {
	uc := &fakeUseCase{err: createBooking.ErrClientNotFound}
	body := `{"clientId":10,"vehicleId":20,"serviceIds":[5],"bookingDate":"2025-10-29","startTime":"10:00"}`
	rec := doRequest(t, uc, body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_NoSession(t *testing.T) {
	handler := NewHandler(&fakeUseCase{}, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	handler.Handle(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
