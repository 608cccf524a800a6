package countries

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func paths(routes []route) []string {
	out := make([]string, len(routes))
	for i, r := range routes {
		out[i] = r.method + " " + r.path
	}
	return out
}

func TestOrderRoutes(t *testing.T) {
	h := NewHandler(nil)
	ordered := paths(orderRoutes(h.routes()))

	assert.Equal(t, []string{
		"GET /countries",
		"POST /countries/refresh",
		"GET /countries/image",
		"GET /countries/:name",
		"DELETE /countries/:name",
	}, ordered)
}

func TestOrderRoutes_Wildcards(t *testing.T) {
	noop := func(c *fiber.Ctx) error { return nil }
	ordered := paths(orderRoutes([]route{
		{"GET", "/files/*", noop},
		{"GET", "/files/:id/meta", noop},
		{"GET", "/files/:id", noop},
		{"GET", "/files/latest", noop},
	}))

	assert.Equal(t, []string{
		"GET /files/latest",
		"GET /files/:id",
		"GET /files/:id/meta",
		"GET /files/*",
	}, ordered)
}

func TestMoreSpecific(t *testing.T) {
	assert.True(t, moreSpecific("/countries/image", "/countries/:name"))
	assert.False(t, moreSpecific("/countries/:name", "/countries/image"))
	assert.False(t, moreSpecific("/countries/image", "/countries/refresh"))
	assert.True(t, moreSpecific("/countries", "/countries/:name"))
}
