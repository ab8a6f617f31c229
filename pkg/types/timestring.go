package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени (ожидается HH:MM)
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrMinutesOutOfRange возвращается, когда значение в минутах выходит за пределы суток
	ErrMinutesOutOfRange = errors.New("minutes out of range")

	// ErrUnsupportedTimestamp возвращается, когда из строки не удаётся извлечь время суток
	ErrUnsupportedTimestamp = errors.New("unsupported timestamp layout")
)

// TimeString время суток в формате "HH:MM" (локальное время бизнеса)
// Единственный тип для работы со временем слотов: вся арифметика и парсинг
// проходят через него, без ad hoc разбора строк по позициям
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString создает TimeString из строки с валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// FromMinutes создает TimeString из количества минут от полуночи
func FromMinutes(mins int) (TimeString, error) {
	if mins < 0 || mins >= minutesPerDay {
		return "", fmt.Errorf("%w: %d", ErrMinutesOutOfRange, mins)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", mins/60, mins%60)), nil
}

// ExtractTimeOfDay извлекает время суток "HH:MM" из строки с временной меткой.
// Поддерживаемые варианты:
//   - "HH:MM" и "HH:MM:SS"
//   - "YYYY-MM-DD HH:MM:SS"
//   - ISO-8601 с разделителем T и опциональным Z или смещением
//
// Конвертация часовых поясов не выполняется - значение считается
// локальным временем бизнеса
func ExtractTimeOfDay(timestamp string) (TimeString, error) {
	s := strings.TrimSpace(timestamp)
	if s == "" {
		return "", fmt.Errorf("%w: empty string", ErrUnsupportedTimestamp)
	}

	// ISO-8601: отрезаем дату до T, затем Z или смещение
	if idx := strings.IndexAny(s, "Tt"); idx >= 0 {
		s = s[idx+1:]
	} else if idx := strings.IndexByte(s, ' '); idx >= 0 {
		// "YYYY-MM-DD HH:MM:SS"
		s = s[idx+1:]
	}

	if idx := strings.IndexAny(s, "Zz+"); idx >= 0 {
		s = s[:idx]
	}
	// Смещение вида "-07:00" начинается после секунд
	if len(s) > 8 {
		if idx := strings.IndexByte(s[8:], '-'); idx >= 0 {
			s = s[:8+idx]
		}
	}

	if len(s) < 5 {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedTimestamp, timestamp)
	}

	ts := TimeString(s[:5])
	if err := ts.Validate(); err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedTimestamp, timestamp)
	}
	return ts, nil
}

// Validate проверяет, что значение имеет формат HH:MM и попадает в сутки
func (t TimeString) Validate() error {
	s := string(t)
	if len(s) != 5 || s[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return nil
}

// IsZero возвращает true, если значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse("15:04", string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает время, сдвинутое на mins минут вперед
// Выход за пределы суток считается ошибкой: слоты не переходят через полночь
func (t TimeString) AddMinutes(mins int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total := current + mins
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("%w: %s + %d min", ErrMinutesOutOfRange, t, mins)
	}
	if total == minutesPerDay {
		// Граница "24:00" допустима только как конец интервала
		return TimeString("24:00"), nil
	}
	return FromMinutes(total)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return compare(t, other) < 0
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return compare(t, other) > 0
}

// compare лексикографическое сравнение корректно для формата HH:MM с ведущими нулями
// Специальный случай "24:00" сортируется после любого времени суток
func compare(a, b TimeString) int {
	return strings.Compare(string(a), string(b))
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Postgres возвращает колонку TIME как time.Time или строку "HH:MM:SS"
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case string:
		ts, err := ExtractTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = ts
		return nil
	case []byte:
		ts, err := ExtractTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = ts
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}
