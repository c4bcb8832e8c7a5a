package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lifeos/internal/models"
	"lifeos/internal/services"
)

// ResourceHandler handles resource and planner requests
type ResourceHandler struct {
	resourceService services.ResourceServicer
}

// NewResourceHandler creates a new ResourceHandler
func NewResourceHandler(resourceService services.ResourceServicer) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// GetUserResources lists the resources of a user, planner entries included
// @Summary     List resources
// @Tags        resources
// @Produce     json
// @Security    BearerAuth
// @Param       user_id path int true "User ID"
// @Success     200 {array} models.Resource "Resources"
// @Failure     403 {object} ErrorResponse "Not your resources"
// @Router      /resources/{user_id} [get]
func (h *ResourceHandler) GetUserResources(c *gin.Context) {
	userID, err := ownPathUser(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	resources, err := h.resourceService.GetUserResources(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resources)
}

// CreateResource adds a resource
// @Summary     Create a resource
// @Tags        resources
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body models.ResourceCreate true "Resource"
// @Success     201 {object} models.Resource "Resource created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "user_id is not the caller"
// @Router      /resources [post]
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	var req models.ResourceCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	userID, err := ownBodyUser(c, req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	res, err := h.resourceService.CreateResource(userID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// UpdateResource replaces the editable fields of a resource
// @Summary     Update a resource
// @Tags        resources
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Resource ID"
// @Param       request body models.ResourceUpdate true "Resource fields"
// @Success     200 {object} models.Resource "Updated resource"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Resource not found"
// @Router      /resources/{id} [put]
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	resourceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req models.ResourceUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	res, err := h.resourceService.UpdateResource(userID, resourceID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// DeleteResource removes a resource
// @Summary     Delete a resource
// @Tags        resources
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Resource ID"
// @Success     200 {object} models.MessageResponse "Resource deleted"
// @Failure     404 {object} ErrorResponse "Resource not found"
// @Router      /resources/{id} [delete]
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	resourceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.resourceService.DeleteResource(userID, resourceID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Msg: "Resource deleted"})
}

// GetUserPlans lists the planner entries of a user
// @Summary     List planner entries
// @Tags        planner
// @Produce     json
// @Security    BearerAuth
// @Param       user_id path int true "User ID"
// @Success     200 {array} models.Resource "Planner entries"
// @Failure     403 {object} ErrorResponse "Not your planner"
// @Router      /planner/{user_id} [get]
func (h *ResourceHandler) GetUserPlans(c *gin.Context) {
	userID, err := ownPathUser(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	plans, err := h.resourceService.GetUserPlans(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

// UpsertPlan creates or updates the planner entry of one weekday
// @Summary     Save a day plan
// @Description Create-or-update keyed by (user, day); saving a day twice updates one entry
// @Tags        planner
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       user_id path int true "User ID"
// @Param       day path string true "Weekday (Mon..Sun)"
// @Param       request body models.PlanUpsert true "Plan text"
// @Success     200 {object} models.Resource "Planner entry"
// @Failure     400 {object} ErrorResponse "Invalid day"
// @Failure     403 {object} ErrorResponse "Not your planner"
// @Router      /planner/{user_id}/{day} [put]
func (h *ResourceHandler) UpsertPlan(c *gin.Context) {
	userID, err := ownPathUser(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req models.PlanUpsert
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	plan, err := h.resourceService.UpsertPlan(userID, c.Param("day"), req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}
