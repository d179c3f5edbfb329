package destinations

import (
	"net/http"

	"voyago/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListDestinations handles GET /api/v1/destinations
func (c *Controller) ListDestinations(ctx *gin.Context) {
	var query DestinationListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.ListDestinations(ctx.Request.Context(), query)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Destinations retrieved successfully", result, nil)
}

// GetDestination handles GET /api/v1/destinations/:id
func (c *Controller) GetDestination(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid destination ID", nil, nil)
		return
	}

	destination, err := c.service.GetDestination(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Destination retrieved successfully", destination, nil)
}

// CreateDestination handles POST /api/v1/destinations (admin)
func (c *Controller) CreateDestination(ctx *gin.Context) {
	adminIDInterface, _ := ctx.Get("user_id")
	adminIDStr, _ := adminIDInterface.(string)
	adminID, err := uuid.Parse(adminIDStr)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid user ID", nil, nil)
		return
	}

	var req CreateDestinationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	destination, err := c.service.CreateDestination(ctx.Request.Context(), adminID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Destination created successfully", destination, nil)
}

// UpdateDestination handles PUT /api/v1/destinations/:id (admin)
func (c *Controller) UpdateDestination(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid destination ID", nil, nil)
		return
	}

	var req UpdateDestinationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	destination, err := c.service.UpdateDestination(ctx.Request.Context(), id, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Destination updated successfully", destination, nil)
}
