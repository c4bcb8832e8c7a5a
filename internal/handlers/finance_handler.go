package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lifeos/internal/models"
	"lifeos/internal/services"
)

// FinanceHandler handles finance entry requests
type FinanceHandler struct {
	financeService services.FinanceServicer
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(financeService services.FinanceServicer) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// GetUserFinances lists the finance entries of a user
// @Summary     List finance entries
// @Tags        finances
// @Produce     json
// @Security    BearerAuth
// @Param       user_id path int true "User ID"
// @Success     200 {array} models.FinanceEntry "Entries"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not your entries"
// @Router      /finances/{user_id} [get]
func (h *FinanceHandler) GetUserFinances(c *gin.Context) {
	userID, err := ownPathUser(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.financeService.GetUserFinances(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// CreateFinance logs an income or expense
// @Summary     Create a finance entry
// @Tags        finances
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body models.FinanceCreate true "Entry"
// @Success     201 {object} models.FinanceEntry "Entry created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "user_id is not the caller"
// @Router      /finances [post]
func (h *FinanceHandler) CreateFinance(c *gin.Context) {
	var req models.FinanceCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	userID, err := ownBodyUser(c, req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.financeService.CreateFinance(userID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// DeleteFinance removes a finance entry
// @Summary     Delete a finance entry
// @Tags        finances
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Entry ID"
// @Success     200 {object} models.MessageResponse "Entry deleted"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Router      /finances/{id} [delete]
func (h *FinanceHandler) DeleteFinance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.financeService.DeleteFinance(userID, entryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Msg: "Entry deleted"})
}
