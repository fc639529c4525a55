package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sealog-webhooks/internal/controller/apperror"
	"sealog-webhooks/internal/domain/billing"
)

type CheckoutHandler struct {
	service *billing.CheckoutService
}

func NewCheckoutHandler(s *billing.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: s}
}

func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req billing.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	session, err := h.service.CreateSession(c, req)
	if err != nil {
		if errors.Is(err, apperror.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": apperror.ErrPlanNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *CheckoutHandler) GetPlan(c *gin.Context) {
	priceID := c.Param("price_id")
	if priceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing price_id"})
		return
	}

	plan, err := h.service.GetPlan(c, priceID)
	if err != nil {
		if errors.Is(err, apperror.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": apperror.ErrPlanNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, plan)
}
