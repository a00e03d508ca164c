package models

import "strings"

// OrderStatus values are stored and returned exactly as clients have always
// seen them, including the mixed casing.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "processing"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists the whitelist in lifecycle order.
var OrderStatuses = []OrderStatus{StatusPending, StatusProcessing, StatusDelivered, StatusCancelled}

// ParseOrderStatus matches s against the whitelist ignoring case and returns
// the canonical spelling.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	s = strings.TrimSpace(s)
	for _, st := range OrderStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}
