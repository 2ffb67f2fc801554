package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Paging struct {
	Page   int
	Size   int
	Offset int
}

// ResolvePaging reads ?page= and ?size= and normalizes them.
func ResolvePaging(c *fiber.Ctx, defaultSize, maxSize int) Paging {
	page, _ := strconv.Atoi(strings.TrimSpace(c.Query("page", "1")))
	if page < 1 {
		page = 1
	}

	size, _ := strconv.Atoi(strings.TrimSpace(c.Query("size", strconv.Itoa(defaultSize))))
	if size <= 0 {
		size = defaultSize
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}

	return Paging{
		Page:   page,
		Size:   size,
		Offset: (page - 1) * size,
	}
}

// QueryInt parses an integer query parameter, 0 when absent or invalid.
func QueryInt(c *fiber.Ctx, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return v
}
