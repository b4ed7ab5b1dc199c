package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	// DefaultLimit is the default number of items per page.
	DefaultLimit = 20

	// MaxLimit is the maximum number of items per page.
	MaxLimit = 100
)

// Params represents pagination parameters parsed from the query string.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// GetParams extracts and clamps page/limit query parameters.
func GetParams(c *fiber.Ctx) Params {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(DefaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}
