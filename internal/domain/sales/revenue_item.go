package sales

import (
	"strings"

	"github.com/google/uuid"
	"github.com/salescrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillingType is informational; totals are not annualised
type BillingType string

const (
	BillingOneTime BillingType = "one_time"
	BillingMonthly BillingType = "monthly"
	BillingYearly  BillingType = "yearly"
)

// IsValid reports whether b is a known billing type
func (b BillingType) IsValid() bool {
	switch b {
	case BillingOneTime, BillingMonthly, BillingYearly:
		return true
	}
	return false
}

// RevenueItem is a product or service line on a deal
type RevenueItem struct {
	shared.WorkspaceEntity
	DealID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Billing   BillingType     `gorm:"type:varchar(20);not null;default:'one_time'"`
}

// TableName returns the table name for GORM
func (RevenueItem) TableName() string {
	return "deal_revenue_items"
}

// NewRevenueItem creates a line item for a deal
func NewRevenueItem(deal *Deal, name string, quantity, unitPrice decimal.Decimal, billing BillingType) (*RevenueItem, error) {
	item := &RevenueItem{
		WorkspaceEntity: shared.NewWorkspaceEntity(deal.WorkspaceID),
		DealID:          deal.ID,
	}
	if err := item.Apply(name, quantity, unitPrice, billing); err != nil {
		return nil, err
	}
	return item, nil
}

// Apply overwrites the line's attributes
func (i *RevenueItem) Apply(name string, quantity, unitPrice decimal.Decimal, billing BillingType) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.Validation("Revenue item name is required")
	}
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be greater than zero")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if billing == "" {
		billing = BillingOneTime
	}
	if !billing.IsValid() {
		return shared.NewDomainError("INVALID_BILLING", "Billing must be one_time, monthly or yearly")
	}
	i.Name = name
	i.Quantity = quantity
	i.UnitPrice = unitPrice.Round(2)
	i.Billing = billing
	i.Touch()
	return nil
}

// Total is quantity × unit price
func (i *RevenueItem) Total() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice).Round(2)
}

// SumRevenue totals a set of line items
func SumRevenue(items []RevenueItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].Total())
	}
	return total
}
