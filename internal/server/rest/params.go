package rest

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID parses the :id route parameter. It writes a 422 and returns false
// when the value is not a positive integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeInvalid(c, "value is not a valid integer", "path", "id")
		return 0, false
	}
	return id, true
}

// queryInt reads an optional integer query parameter; absent means 0.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeInvalid(c, "value is not a valid integer", "query", name)
		return 0, false
	}
	return v, true
}

func page(c *gin.Context) (skip, limit int, ok bool) {
	if skip, ok = queryInt(c, "skip"); !ok {
		return 0, 0, false
	}
	if limit, ok = queryInt(c, "limit"); !ok {
		return 0, 0, false
	}
	return skip, limit, true
}
