package demo

import (
	"fmt"
	"time"
)

// OrderStatus 訂單狀態，序列化為名稱字串.
type OrderStatus int

const (
	StatusCreated OrderStatus = iota
	StatusPaid
	StatusCancelled
)

var statusNames = [...]string{"CREATED", "PAID", "CANCELLED"}

func (s OrderStatus) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("OrderStatus(%d)", int(s))
	}
	return statusNames[s]
}

// UnmarshalText 由名稱解析狀態.
func (s *OrderStatus) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = OrderStatus(i)
			return nil
		}
	}
	return fmt.Errorf("unknown order status %q", text)
}

// Order 示範用的請求/回應本文.
type Order struct {
	ID         string             `json:"id" binding:"required"`
	Status     OrderStatus        `json:"status"`
	Amount     float64            `json:"amount"`
	CreatedAt  time.Time          `json:"createdAt"`
	Attributes map[string]*string `json:"attributes"`
}
