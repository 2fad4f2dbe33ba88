package types

import (
	"fmt"
	"strings"
)

// OrderStatus is the closed set of order states.
type OrderStatus string

// Order statuses.
const (
	StatusPending        OrderStatus = "Pending"
	StatusConfirmed      OrderStatus = "Confirmed"
	StatusPreparing      OrderStatus = "Preparing"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

// statusTransitions maps each status to the statuses it may move to. Admins
// correct mistakes by moving orders backwards, so every status may follow
// every other.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:        OrderStatuses,
	StatusConfirmed:      OrderStatuses,
	StatusPreparing:      OrderStatuses,
	StatusOutForDelivery: OrderStatuses,
	StatusDelivered:      OrderStatuses,
	StatusCancelled:      OrderStatuses,
}

// ParseOrderStatus converts raw into an OrderStatus. The match is exact;
// anything outside OrderStatuses yields ErrInvalidStatus.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if _, ok := statusTransitions[s]; !ok {
		return "", &Error{Kind: ErrInvalidStatus, Msg: "Status must be one of: " + statusList()}
	}
	return s, nil
}

// Valid reports whether s is one of OrderStatuses.
func (s OrderStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo reports whether the transition table allows s -> next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next when the table allows it.
func (s OrderStatus) TransitionTo(next OrderStatus) (OrderStatus, error) {
	if !next.Valid() {
		return s, &Error{Kind: ErrInvalidStatus, Msg: "Status must be one of: " + statusList()}
	}
	if !s.CanTransitionTo(next) {
		return s, &Error{Kind: ErrInvalidStatus, Msg: fmt.Sprintf("Cannot move order from %s to %s", s, next)}
	}
	return next, nil
}

func statusList() string {
	names := make([]string, len(OrderStatuses))
	for i, s := range OrderStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
