package models

// CreateOrderRequest packages the configurator's final state plus a design
// reference for the order-creation endpoint
type CreateOrderRequest struct {
	Selections    []VariantSelection `json:"selections"`
	DesignRef     string             `json:"designRef,omitempty"`
	CustomerName  string             `json:"customerName"`
	CustomerPhone string             `json:"customerPhone,omitempty"`
	Notes         string             `json:"notes,omitempty"`
}

// CreateOrderResponse carries the resulting order identifier for redirect
type CreateOrderResponse struct {
	OrderID       int64 `json:"orderId"`
	TotalPrice    int64 `json:"totalPrice"`
	TotalQuantity int   `json:"totalQuantity"`
}

// OrderLine is one persisted size/color/quantity row with its applied price
type OrderLine struct {
	ID          int64  `json:"id"`
	OrderID     int64  `json:"orderId"`
	ItemID      string `json:"itemId"`
	Gender      string `json:"gender"`
	QualityTier string `json:"qualityTier"`
	PrintSize   string `json:"printSize"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	Qty         int    `json:"qty"`
	UnitPrice   int64  `json:"unitPrice"`
	LineTotal   int64  `json:"lineTotal"`
}

// Order is a persisted POD order header
type Order struct {
	ID            int64  `json:"id"`
	AccountID     string `json:"accountId"`
	Status        string `json:"status"` // received, in_production, shipped, canceled
	DesignRef     string `json:"designRef,omitempty"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	Notes         string `json:"notes,omitempty"`
	TotalPrice    int64  `json:"totalPrice"`
	TotalQty      int    `json:"totalQty"`
	CreatedAt     string `json:"createdAt"`
}

// OrderProof is the data handed to the printable proof sheet template
type OrderProof struct {
	Order Order       `json:"order"`
	Lines []OrderLine `json:"lines"`
}
