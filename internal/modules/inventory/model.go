package inventory

import "time"

// OwnerType identifies who holds the stock.
type OwnerType string

const (
	OwnerVendor    OwnerType = "vendor"
	OwnerFranchise OwnerType = "franchise"
)

// MovementType classifies a ledger entry.
type MovementType string

const (
	MovementPurchase   MovementType = "purchase"
	MovementSale       MovementType = "sale"
	MovementTransfer   MovementType = "transfer"
	MovementReturn     MovementType = "return"
	MovementAdjustment MovementType = "adjustment"
)

// Inventory is one SKU held by an owner, with its append-only movement log.
type Inventory struct {
	ID              string     `json:"id" bson:"_id"`
	OwnerID         string     `json:"ownerId" bson:"ownerId"`
	OwnerType       OwnerType  `json:"ownerType" bson:"ownerType"`
	ProductName     string     `json:"productName" bson:"productName"`
	SKU             string     `json:"sku" bson:"sku"`
	Unit            string     `json:"unit" bson:"unit"`
	InitialQuantity int        `json:"initialQuantity" bson:"initialQuantity"`
	CurrentQuantity int        `json:"currentQuantity" bson:"currentQuantity"`
	ReorderLevel    int        `json:"reorderLevel" bson:"reorderLevel"`
	StockMovements  []Movement `json:"stockMovements,omitempty" bson:"stockMovements"`
	CreatedAt       time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// LowStock reports whether the quantity is at or below the reorder level.
func (i *Inventory) LowStock() bool { return i.CurrentQuantity <= i.ReorderLevel }

// Movement is a ledger entry. Quantity is the signed change it applied.
type Movement struct {
	ID        string       `json:"id" bson:"id"`
	Type      MovementType `json:"type" bson:"type"`
	Quantity  int          `json:"quantity" bson:"quantity"`
	Reference string       `json:"reference,omitempty" bson:"reference,omitempty"`
	Note      string       `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
}

// CreateInventoryRequest opens a stock line for an owner.
type CreateInventoryRequest struct {
	OwnerID         string `json:"ownerId"`
	OwnerType       string `json:"ownerType"`
	ProductName     string `json:"productName"`
	SKU             string `json:"sku"`
	Unit            string `json:"unit"`
	InitialQuantity int    `json:"initialQuantity"`
	ReorderLevel    int    `json:"reorderLevel"`
}

// MovementRequest records stock in or out. Quantity is positive except for
// adjustments, which carry their own sign.
type MovementRequest struct {
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	Reference string `json:"reference"`
	Note      string `json:"note"`
}

// TransferRequest moves stock to another inventory line of the same SKU.
type TransferRequest struct {
	ToInventoryID string `json:"toInventoryId"`
	Quantity      int    `json:"quantity"`
	Reference     string `json:"reference"`
}

// TransferResult holds both sides after a transfer.
type TransferResult struct {
	From *Inventory `json:"from"`
	To   *Inventory `json:"to"`
}

// Reconciliation compares the stored quantity with the one implied by the ledger.
type Reconciliation struct {
	InventoryID string `json:"inventoryId"`
	Expected    int    `json:"expected"`
	Actual      int    `json:"actual"`
	Drift       int    `json:"drift"` // actual - expected
	Movements   int    `json:"movements"`
	Corrected   bool   `json:"corrected"`
}

// LowStockAlert is the payload of the inventory.low_stock event.
type LowStockAlert struct {
	InventoryID     string `json:"inventoryId"`
	OwnerID         string `json:"ownerId"`
	SKU             string `json:"sku"`
	CurrentQuantity int    `json:"currentQuantity"`
	ReorderLevel    int    `json:"reorderLevel"`
}

// ListFilter narrows List results.
type ListFilter struct {
	OwnerID  string
	LowStock bool
	Skip     int
	Limit    int
}
