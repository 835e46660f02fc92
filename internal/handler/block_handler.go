package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sportoase/sportoase-api/internal/dto"
	"github.com/sportoase/sportoase-api/internal/middleware"
	"github.com/sportoase/sportoase-api/internal/models"
	appErrors "github.com/sportoase/sportoase-api/pkg/errors"
	"github.com/sportoase/sportoase-api/pkg/response"
)

type blockedSlotService interface {
	Block(ctx context.Context, claims *models.JWTClaims, req *dto.BlockSlotRequest) (*models.BlockedSlot, error)
	Unblock(ctx context.Context, claims *models.JWTClaims, req *dto.UnblockSlotRequest) error
	List(ctx context.Context) ([]models.BlockedSlot, error)
}

// BlockHandler exposes admin slot blocking.
type BlockHandler struct {
	blocked blockedSlotService
}

// NewBlockHandler constructs the block handler.
func NewBlockHandler(blocked blockedSlotService) *BlockHandler {
	return &BlockHandler{blocked: blocked}
}

// Block godoc
// @Summary Block a slot
// @Tags blocks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BlockSlotRequest true "Slot to block"
// @Success 201 {object} response.Envelope{data=models.BlockedSlot}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /block-slot [post]
func (h *BlockHandler) Block(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.BlockSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Ungültiger Anfragetext"))
		return
	}

	blocked, err := h.blocked.Block(c.Request.Context(), claims, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, blocked)
}

// Unblock godoc
// @Summary Release a blocked slot
// @Tags blocks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UnblockSlotRequest true "Slot to release"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /unblock-slot [post]
func (h *BlockHandler) Unblock(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UnblockSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Ungültiger Anfragetext"))
		return
	}

	if err := h.blocked.Unblock(c.Request.Context(), claims, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Slot freigegeben"})
}

// List godoc
// @Summary List blocked slots
// @Tags blocks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=[]models.BlockedSlot}
// @Failure 403 {object} response.Envelope
// @Router /blocked-slots [get]
func (h *BlockHandler) List(c *gin.Context) {
	blocks, err := h.blocked.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, blocks)
}
