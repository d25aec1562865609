package domain

import "time"

type OrderEvent struct {
	OrderID     string      `json:"order_id"`
	UserID      string      `json:"user_id"`
	Type        string      `json:"type"` // order.created, order.status_updated
	Status      OrderStatus `json:"status"`
	TotalAmount float64     `json:"total_amount"`
	Occurred    time.Time   `json:"occurred"`
}
