package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

// ShopIDKey is the context key for the current shop ID
const ShopIDKey ctxKey = "shop_id"

// ShopScope returns a GORM scope that filters by the shop in the context.
// This should be applied to all queries for shop-owned entities.
func ShopScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		shopID, ok := ctx.Value(ShopIDKey).(uuid.UUID)
		if !ok {
			// Fail-safe: return no results if shop context is missing.
			// This prevents accidental cross-shop data access.
			return db.Where("1 = 0")
		}
		return db.Where("shop_id = ?", shopID)
	}
}

// WithShop adds the shop ID to the context
func WithShop(ctx context.Context, shopID uuid.UUID) context.Context {
	return context.WithValue(ctx, ShopIDKey, shopID)
}

// GetShopID extracts the shop ID from the context
func GetShopID(ctx context.Context) (uuid.UUID, bool) {
	shopID, ok := ctx.Value(ShopIDKey).(uuid.UUID)
	return shopID, ok
}
