package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestAuth(t *testing.T) {
	app := fiber.New()
	app.Use(New(Config{
		ApiKey: "secret",
		Next:   func(c *fiber.Ctx) bool { return c.Path() == "/public" },
	}))
	app.Get("/*", func(c *fiber.Ctx) error { return c.SendString("ok") })

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"MissingKey", "/sites", "", fiber.StatusUnauthorized},
		{"WrongKey", "/sites", "nope", fiber.StatusUnauthorized},
		{"HeaderKey", "/sites", "secret", fiber.StatusOK},
		{"QueryKey", "/sites?api_key=secret", "", fiber.StatusOK},
		{"Skipped", "/public", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set(Header, tt.header)
			}
			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuth_Disabled(t *testing.T) {
	app := fiber.New()
	app.Use(New(Config{}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
