package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"newsboard/internal/middleware"
	"newsboard/internal/store"

	"github.com/gin-gonic/gin"
)

// SuccessResponse is the envelope of every successful reply
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PaginatedResponse is a SuccessResponse carrying a page of items
type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination describes the returned page
type Pagination struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

// ErrorResponse is the envelope of every failed reply
type ErrorResponse struct {
	Success     bool   `json:"success"`
	Error       string `json:"error"`
	IsFormError bool   `json:"isFormError,omitempty"`
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, SuccessResponse{Success: true, Message: message, Data: data})
}

func respondPage[T any](c *gin.Context, message string, page *store.Page[T]) {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, PaginatedResponse{
		Success:    true,
		Message:    message,
		Data:       items,
		Pagination: Pagination{Page: page.Page, TotalPages: page.TotalPages},
	})
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Error: message})
}

func failForm(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: message, IsFormError: true})
}

// handleError maps store errors onto HTTP statuses. Anything unrecognised is
// logged and reported as a generic 500.
func handleError(c *gin.Context, err error) {
	var se *store.Error
	if errors.As(err, &se) {
		switch {
		case errors.Is(err, store.ErrNotFound):
			fail(c, http.StatusNotFound, se.Message)
		case errors.Is(err, store.ErrConflict):
			fail(c, http.StatusConflict, se.Message)
		case errors.Is(err, store.ErrUnauthorized):
			fail(c, http.StatusUnauthorized, se.Message)
		case errors.Is(err, store.ErrValidation):
			if se.Field != "" {
				failForm(c, se.Field+": "+se.Message)
			} else {
				failForm(c, se.Message)
			}
		default:
			fail(c, http.StatusBadRequest, se.Message)
		}
		return
	}

	if errors.Is(err, context.Canceled) {
		// client went away; nobody reads the body
		c.Abort()
		return
	}

	log.Printf("[%s] %s %s: %v", c.GetString(middleware.RequestIDKey), c.Request.Method, c.FullPath(), err)
	fail(c, http.StatusInternalServerError, "Internal server error")
}

// paramID parses a positive numeric path parameter
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		failForm(c, name+": must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
