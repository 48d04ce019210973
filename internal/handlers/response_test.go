package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"newsboard/internal/models"
	"newsboard/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func run(h gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	h(c)
	return w
}

func TestHandleErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", &store.Error{Kind: store.ErrNotFound, Message: "Post not found."}, http.StatusNotFound,
			`{"success":false,"error":"Post not found."}`},
		{"conflict", &store.Error{Kind: store.ErrConflict, Message: "Username already used."}, http.StatusConflict,
			`{"success":false,"error":"Username already used."}`},
		{"unauthorized", &store.Error{Kind: store.ErrUnauthorized, Message: "Incorrect Password"}, http.StatusUnauthorized,
			`{"success":false,"error":"Incorrect Password"}`},
		{"field validation", &store.Error{Kind: store.ErrValidation, Field: "title", Message: "too short"}, http.StatusBadRequest,
			`{"success":false,"error":"title: too short","isFormError":true}`},
		{"wrapped", fmt.Errorf("create: %w", &store.Error{Kind: store.ErrNotFound, Message: "Comment not found."}), http.StatusNotFound,
			`{"success":false,"error":"Comment not found."}`},
		{"internal", errors.New("disk on fire"), http.StatusInternalServerError,
			`{"success":false,"error":"Internal server error"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := run(func(c *gin.Context) { handleError(c, tc.err) })
			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

func TestHandleErrorCanceledWritesNothing(t *testing.T) {
	w := run(func(c *gin.Context) { handleError(c, fmt.Errorf("query: %w", context.Canceled)) })
	assert.Empty(t, w.Body.String())
}

func TestBindingMessage(t *testing.T) {
	RegisterValidators()

	cases := map[string]struct {
		req  models.AuthRequest
		want string
	}{
		"missing":    {models.AuthRequest{Password: "secret"}, "username: is required"},
		"too short":  {models.AuthRequest{Username: "ab", Password: "secret"}, "username: must be at least 3 characters"},
		"characters": {models.AuthRequest{Username: "no spaces", Password: "secret"}, "username: may only contain letters, digits and underscores"},
		"password":   {models.AuthRequest{Username: "valid_name", Password: "ab"}, "password: must be at least 3 characters"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tc.req)
			if assert.Error(t, err) {
				assert.Equal(t, tc.want, bindingMessage(err))
			}
		})
	}

	ok := models.AuthRequest{Username: "valid_name", Password: "secret"}
	assert.NoError(t, binding.Validator.ValidateStruct(&ok))
}

func TestRespondPageEmptyItems(t *testing.T) {
	w := run(func(c *gin.Context) {
		respondPage(c, "Posts Fetched", &store.Page[models.PostView]{Page: 2, TotalPages: 1})
	})
	assert.JSONEq(t, `{"success":true,"message":"Posts Fetched","data":[],"pagination":{"page":2,"totalPages":1}}`, w.Body.String())
}

func TestParamID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for raw, valid := range map[string]bool{"12": true, "0": false, "-3": false, "abc": false} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, ok := paramID(c, "id")
		assert.Equal(t, valid, ok, raw)
		if !valid {
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	}
}
