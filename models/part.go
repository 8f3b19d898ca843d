package models

import "time"

// Part is an inventory item (stocked spare part or consumable).
type Part struct {
	ID           string    `bson:"id" json:"id"`
	SKU          string    `bson:"sku" json:"sku"`
	Name         string    `bson:"name" json:"name"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	UnitPrice    float64   `bson:"unit_price" json:"unitPrice"`
	Stock        int       `bson:"stock" json:"stock"`
	ReorderLevel int       `bson:"reorder_level" json:"reorderLevel"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// StockAdjustment changes a part's stock by a signed delta.
type StockAdjustment struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}
