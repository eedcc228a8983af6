package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"rdm/curations/common/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserID(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  uint
		ok    bool
	}{
		{"uint", uint(7), 7, true},
		{"int", 8, 8, true},
		{"int64", int64(9), 9, true},
		{"float64", float64(10), 10, true},
		{"数字字符串", "11", 11, true},
		{"非数字字符串", "abc", 0, false},
		{"未知类型按匿名处理", struct{}{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseUserID(tt.input)
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetTokenPriority(t *testing.T) {
	app := fiber.New()
	app.Get("/probe", func(c *fiber.Ctx) error {
		return c.SendString(getToken(c))
	})

	readToken := func(t *testing.T, req *http.Request) string {
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(body)
	}

	t.Run("satoken头优先", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/probe?satoken=query-token", nil)
		req.Header.Set("satoken", "header-token")
		req.Header.Set("Authorization", "Bearer bearer-token")
		assert.Equal(t, "header-token", readToken(t, req))
	})

	t.Run("Bearer其次", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/probe?satoken=query-token", nil)
		req.Header.Set("Authorization", "Bearer bearer-token")
		assert.Equal(t, "bearer-token", readToken(t, req))
	})

	t.Run("Authorization无前缀原样使用", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/probe", nil)
		req.Header.Set("Authorization", "raw-token")
		assert.Equal(t, "raw-token", readToken(t, req))
	})

	t.Run("查询参数", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/probe?satoken=query-token", nil)
		assert.Equal(t, "query-token", readToken(t, req))
	})

	t.Run("Cookie兜底", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/probe", nil)
		req.AddCookie(&http.Cookie{Name: "satoken", Value: "cookie-token"})
		assert.Equal(t, "cookie-token", readToken(t, req))
	})

	t.Run("无Token为空", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/probe", nil)
		assert.Equal(t, "", readToken(t, req))
	})
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", AuthMiddleware(), func(c *fiber.Ctx) error {
		return response.Success(c, nil)
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var result response.Response
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, response.CodeUnauthorized, result.Code)
	assert.Equal(t, "请先登录", result.Message)
}

func TestGetCurrentUserID(t *testing.T) {
	app := fiber.New()
	app.Get("/me", func(c *fiber.Ctx) error {
		c.Locals("userId", "42")
		return c.SendString(strconv.FormatUint(uint64(GetCurrentUserID(c)), 10))
	})
	app.Get("/anonymous", func(c *fiber.Ctx) error {
		return c.SendString(strconv.FormatUint(uint64(GetCurrentUserID(c)), 10))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "42", string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/anonymous", nil))
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "0", string(body))
}
