package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"voyago/internal/shared/apperrors"
	"voyago/internal/shared/utils/response"
)

type Controller interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	RefreshToken(c *gin.Context)
	ChangePassword(c *gin.Context)
	Me(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apperrors.Validation("body", nil, err.Error()))
		return
	}

	resp, err := ctrl.service.Register(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "User registered successfully", resp, nil)
}

func (ctrl *controller) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apperrors.Validation("body", nil, err.Error()))
		return
	}

	resp, err := ctrl.service.Login(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Login successful", resp, nil)
}

func (ctrl *controller) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apperrors.Validation("body", nil, err.Error()))
		return
	}

	tokens, err := ctrl.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Token refreshed", tokens, nil)
}

func (ctrl *controller) ChangePassword(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.RespondError(c, apperrors.Authorization("authentication required"))
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apperrors.Validation("body", nil, err.Error()))
		return
	}

	if err := ctrl.service.ChangePassword(c.Request.Context(), userID, req); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Password changed successfully", nil, nil)
}

func (ctrl *controller) Me(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.RespondError(c, apperrors.Authorization("authentication required"))
		return
	}

	profile, err := ctrl.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Profile fetched", profile, nil)
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
