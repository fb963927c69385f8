package domain

// Tracking is the customer-facing projection of an order's status.
type Tracking struct {
	Progress int    `json:"progress"`
	Message  string `json:"message"`
}

var trackingTable = map[OrderStatus]Tracking{
	OrderStatusPending:        {Progress: 10, Message: "Order received"},
	OrderStatusConfirmed:      {Progress: 25, Message: "Order confirmed"},
	OrderStatusPreparing:      {Progress: 40, Message: "Preparing your order"},
	OrderStatusReady:          {Progress: 60, Message: "Ready for delivery"},
	OrderStatusOutForDelivery: {Progress: 80, Message: "Out for delivery"},
	OrderStatusDelivered:      {Progress: 100, Message: "Delivered"},
	OrderStatusCancelled:      {Progress: 0, Message: "Cancelled"},
}

// TrackingFor is total: any status outside the table maps to (0, "Unknown").
func TrackingFor(status OrderStatus) Tracking {
	if t, ok := trackingTable[status]; ok {
		return t
	}
	return Tracking{Progress: 0, Message: "Unknown"}
}

// CanCancel reports whether an order in the given status may still be
// cancelled by its owner. Only pending and confirmed orders qualify; every
// later status, and cancelled itself, is past the point of no return.
func CanCancel(status OrderStatus) bool {
	return status == OrderStatusPending || status == OrderStatusConfirmed
}

// TerminalStatus reports whether no further transitions are expected.
func TerminalStatus(status OrderStatus) bool {
	return status == OrderStatusDelivered || status == OrderStatusCancelled
}
