package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/application/service"
	"github.com/shopmate/shopmate-api/internal/domain/enum"
	"github.com/shopmate/shopmate-api/internal/presentation/http/dto/request"
	"github.com/shopmate/shopmate-api/internal/presentation/http/dto/response"
)

// ShopHandler handles shop and membership HTTP requests
type ShopHandler struct {
	shopService *service.ShopService
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shopService *service.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

// Create handles shop creation
func (h *ShopHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shop, err := h.shopService.CreateShop(c.Request.Context(), &service.CreateShopInput{
		OwnerID: *userID,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		Logo:    req.Logo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shop created successfully", shop)
}

// GetCurrent returns the shop associated with the current user
func (h *ShopHandler) GetCurrent(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	shop, err := h.shopService.GetCurrentShop(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shop retrieved successfully", shop)
}

// Update handles shop updates
func (h *ShopHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	shopID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shop ID")
		return
	}

	var req request.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shop, err := h.shopService.UpdateShop(c.Request.Context(), &service.UpdateShopInput{
		UserID:  *userID,
		ShopID:  shopID,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		Logo:    req.Logo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shop updated successfully", shop)
}

// Join handles an employee's request to join a shop
func (h *ShopHandler) Join(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.JoinShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	membership, err := h.shopService.RequestToJoin(c.Request.Context(), req.ShopID, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Join request submitted", membership)
}

// ReviewMember approves or rejects a pending join request
func (h *ShopHandler) ReviewMember(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	shopID := GetShopID(c)

	var req request.ReviewMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.shopService.ReviewJoinRequest(c.Request.Context(), *userID, shopID, req.UserID, req.Approve)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Join request rejected"
	if req.Approve {
		message = "Join request approved"
	}
	response.OK(c, message, nil)
}

// ListMembers lists the current shop's members, optionally filtered by status
func (h *ShopHandler) ListMembers(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	shopID := GetShopID(c)

	var status *enum.MembershipStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s, err := enum.ParseMembershipStatus(statusStr)
		if err != nil {
			response.BadRequest(c, "Invalid membership status")
			return
		}
		status = &s
	}

	members, err := h.shopService.ListMembers(c.Request.Context(), *userID, shopID, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Members retrieved successfully", members)
}

// RemoveMember removes an employee from the current shop
func (h *ShopHandler) RemoveMember(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	shopID := GetShopID(c)

	memberID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.shopService.RemoveMember(c.Request.Context(), *userID, shopID, memberID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member removed successfully", nil)
}
