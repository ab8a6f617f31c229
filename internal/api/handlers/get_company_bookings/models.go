package get_company_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/avlebedev/carservice-admin/internal/domain"
	"github.com/avlebedev/carservice-admin/internal/service/bookings/models"
)

// parseQuery разбирает query-параметры списка бронирований
// Поддерживаются: date, startDate/endDate, clientId, status, includeInactive, page, limit
func parseQuery(companyID int64, query url.Values) (*models.GetCompanyBookingsRequest, error) {
	req := &models.GetCompanyBookingsRequest{CompanyID: companyID}

	// Одиночная дата - синоним периода из одного дня
	if date := query.Get("date"); date != "" {
		parsed, err := time.Parse(domain.DateFormat, date)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		req.StartDate = &parsed
		req.EndDate = &parsed
	} else {
		if start := query.Get("startDate"); start != "" {
			parsed, err := time.Parse(domain.DateFormat, start)
			if err != nil {
				return nil, fmt.Errorf("invalid startDate: %w", err)
			}
			req.StartDate = &parsed
		}
		if end := query.Get("endDate"); end != "" {
			parsed, err := time.Parse(domain.DateFormat, end)
			if err != nil {
				return nil, fmt.Errorf("invalid endDate: %w", err)
			}
			req.EndDate = &parsed
		}
	}

	if clientID := query.Get("clientId"); clientID != "" {
		parsed, err := strconv.ParseInt(clientID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid clientId: %w", err)
		}
		req.ClientID = &parsed
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if query.Get("includeInactive") == "true" {
		req.IncludeInactive = true
	}

	if page := query.Get("page"); page != "" {
		parsed, err := strconv.Atoi(page)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("invalid page")
		}
		req.Page = parsed
	}

	if limit := query.Get("limit"); limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("invalid limit")
		}
		req.Limit = parsed
	}

	return req, nil
}
