package amqp

import (
	"encoding/json"
	"time"

	"fintrack/internal/core"
)

// Routing keys, also used as the Publishing.Type of each message.
const (
	EventExpenseSaved = "expense.saved"
	EventBudgetAlert  = "budget.alert"
)

// ExpenseSavedMessage carries a full expense so consumers never need access
// to the API's record store.
type ExpenseSavedMessage struct {
	ID            string     `json:"id"`
	Owner         string     `json:"owner"`
	Amount        core.Money `json:"amount"`
	Category      string     `json:"category"`
	Date          core.Date  `json:"date"`
	PaymentMethod string     `json:"paymentMethod"`
	Notes         string     `json:"notes,omitempty"`
	Timestamp     time.Time  `json:"timestamp"`
}

func NewExpenseSavedMessage(e core.Expense) *ExpenseSavedMessage {
	return &ExpenseSavedMessage{
		ID:            e.ID,
		Owner:         e.Owner,
		Amount:        e.Amount,
		Category:      e.Category,
		Date:          e.Date,
		PaymentMethod: e.PaymentMethod,
		Notes:         e.Notes,
		Timestamp:     time.Now(),
	}
}

// Expense converts the message back into a domain record.
func (m *ExpenseSavedMessage) Expense() core.Expense {
	return core.Expense{
		ID:            m.ID,
		Owner:         m.Owner,
		Amount:        m.Amount,
		Category:      m.Category,
		Date:          m.Date,
		PaymentMethod: m.PaymentMethod,
		Notes:         m.Notes,
	}
}

// BudgetAlertMessage is emitted when a category reaches warning or alert tier.
type BudgetAlertMessage struct {
	Owner     string    `json:"owner"`
	Category  string    `json:"category"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBudgetAlertMessage(owner, category string, level core.AlertLevel, message string) *BudgetAlertMessage {
	return &BudgetAlertMessage{
		Owner:     owner,
		Category:  category,
		Level:     level.String(),
		Message:   message,
		Timestamp: time.Now(),
	}
}

func toJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

func ExpenseSavedMessageFromJSON(data []byte) (*ExpenseSavedMessage, error) {
	var msg ExpenseSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
