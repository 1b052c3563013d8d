package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/domain/enum"
	"github.com/shopmate/shopmate-api/internal/domain/repository"
	infraRepo "github.com/shopmate/shopmate-api/internal/infrastructure/repository"
	"github.com/shopmate/shopmate-api/internal/presentation/http/dto/response"
)

// ShopMiddleware resolves the authenticated user's shop and scopes the
// request to it: the shop they own if any, otherwise the shop of their
// approved membership. Requests from users without a shop are rejected.
func ShopMiddleware(shopRepo repository.ShopRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}
		userID, ok := userIDVal.(uuid.UUID)
		if !ok || userID == uuid.Nil {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		role := enum.MembershipRoleOwner

		shop, err := shopRepo.GetOwnedByUser(ctx, userID)
		if err != nil {
			response.InternalServerError(c, "Failed to resolve shop")
			c.Abort()
			return
		}
		if shop == nil {
			shop, err = shopRepo.GetApprovedShopForUser(ctx, userID)
			if err != nil {
				response.InternalServerError(c, "Failed to resolve shop")
				c.Abort()
				return
			}
			role = enum.MembershipRoleEmployee
		}
		if shop == nil {
			response.NotFound(c, "No shop associated with this account")
			c.Abort()
			return
		}

		c.Set("shop_id", shop.ID)
		c.Set("shop_role", role)

		// Scope the request context so repositories filter by this shop
		c.Request = c.Request.WithContext(infraRepo.WithShop(ctx, shop.ID))

		c.Next()
	}
}

// RequireOwner restricts a route to the shop owner
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("shop_role")
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}
		role, ok := roleVal.(enum.MembershipRole)
		if !ok || role != enum.MembershipRoleOwner {
			response.Forbidden(c, "Only the shop owner can perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetShopID retrieves the shop ID from the gin context
func GetShopID(c *gin.Context) uuid.UUID {
	shopIDVal, exists := c.Get("shop_id")
	if !exists {
		return uuid.Nil
	}
	shopID, ok := shopIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return shopID
}
