package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"sealog-webhooks/internal/controller/apperror"
	"sealog-webhooks/internal/domain/subscription"
)

type SubscriptionHandler struct {
	service *subscription.Service
}

func NewSubscriptionHandler(s *subscription.Service) *SubscriptionHandler {
	return &SubscriptionHandler{service: s}
}

func (h *SubscriptionHandler) Get(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user_id"})
		return
	}

	res, err := h.service.GetUserSubscription(c, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": apperror.ErrUserNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *SubscriptionHandler) GetEvents(c *gin.Context) {
	query, err := h.createQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.GetEvents(c, *query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

type eventsFilterParams struct {
	UserIDs   string `form:"user_ids"`
	Kinds     string `form:"kinds"`
	TimeFrom  string `form:"time_from" binding:"omitempty"`
	TimeTo    string `form:"time_to" binding:"omitempty"`
	Limit     int    `form:"limit" binding:"omitempty,min=0" default:"50"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc" default:"desc"`
}

func (h *SubscriptionHandler) createQuery(c *gin.Context) (*subscription.EventQuery, error) {
	var params eventsFilterParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	query := subscription.EventQuery{
		Limit:   params.Limit,
		SortAsc: params.SortOrder == "asc",
	}
	if query.Limit == 0 {
		query.Limit = 50
	}

	if params.UserIDs != "" {
		for _, raw := range strings.Split(params.UserIDs, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad user id %q", apperror.ErrInvalidEventsQuery, raw)
			}
			query.UserIDs = append(query.UserIDs, id)
		}
	}

	if params.Kinds != "" {
		for _, raw := range strings.Split(params.Kinds, ",") {
			kind, err := subscription.NewEventKind(strings.TrimSpace(raw))
			if err != nil {
				return nil, fmt.Errorf("%w: %s", apperror.ErrInvalidEventsQuery, err)
			}
			query.Kinds = append(query.Kinds, kind)
		}
	}

	if params.TimeFrom != "" {
		from, err := time.Parse(time.RFC3339, params.TimeFrom)
		if err != nil {
			return nil, fmt.Errorf("%w: bad time_from", apperror.ErrInvalidEventsQuery)
		}
		query.TimeFrom = &from
	}
	if params.TimeTo != "" {
		to, err := time.Parse(time.RFC3339, params.TimeTo)
		if err != nil {
			return nil, fmt.Errorf("%w: bad time_to", apperror.ErrInvalidEventsQuery)
		}
		query.TimeTo = &to
	}

	return &query, nil
}
