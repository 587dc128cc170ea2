package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Expense is a single spending record owned by one user.
	Expense struct {
		ID            string
		Owner         string
		Amount        Money
		Category      string
		Date          Date
		PaymentMethod string
		Notes         string
	}

	// Budget is a monthly spending threshold for one category of one user.
	Budget struct {
		ID       string
		Owner    string
		Category string
		Limit    Money
	}

	User struct {
		ID           string
		Email        string
		PasswordHash string
		CreatedAt    time.Time
	}
)

var (
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidLimit         = errors.New("invalid budget limit")
	ErrEmptyCategory        = errors.New("empty category")
	ErrEmptyPaymentMethod   = errors.New("empty payment method")
	ErrEmptyOwner           = errors.New("empty owner")
	ErrCategoryTooLong      = errors.New("category too long (max 64 characters)")
	ErrPaymentMethodTooLong = errors.New("payment method too long (max 64 characters)")
	ErrNotesTooLong         = errors.New("notes too long (max 500 characters)")
)

const (
	maxLabelLength = 64
	maxNotesLength = 500
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t as seen in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// MonthStart returns the first day of the calendar month containing now.
func MonthStart(now time.Time) Date {
	return NewDate(now.Year(), int(now.Month()), 1)
}

// ParseDate accepts either a plain calendar date (2006-01-02) or an RFC 3339
// timestamp, in which case the UTC calendar date is kept.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrInvalidDate
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t.UTC()), nil
	}
	return Date{}, ErrInvalidDate
}

// String formats the date as 2006-01-02.
func (d Date) String() string {
	return d.Format(time.DateOnly)
}

// MarshalJSON writes the date as a UTC midnight timestamp, the shape the
// browser client slices the calendar date from.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.UTC().Format("2006-01-02T15:04:05Z"))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Owner) == "" {
		return ErrEmptyOwner
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if len(e.Category) > maxLabelLength {
		return ErrCategoryTooLong
	}
	if strings.TrimSpace(e.PaymentMethod) == "" {
		return ErrEmptyPaymentMethod
	}
	if len(e.PaymentMethod) > maxLabelLength {
		return ErrPaymentMethodTooLong
	}
	if len(e.Notes) > maxNotesLength {
		return ErrNotesTooLong
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Owner) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if len(b.Category) > maxLabelLength {
		return ErrCategoryTooLong
	}
	if b.Limit.Cents <= 0 {
		return ErrInvalidLimit
	}
	return nil
}

// IsValidationError reports whether err originates from record validation.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidDate, ErrInvalidAmount, ErrInvalidLimit, ErrEmptyCategory,
		ErrEmptyPaymentMethod, ErrEmptyOwner, ErrCategoryTooLong,
		ErrPaymentMethodTooLong, ErrNotesTooLong,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
