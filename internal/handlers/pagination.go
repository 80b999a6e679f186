package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pagination 解析 offset/limit 查询参数，limit 上限 100
func pagination(c *gin.Context) (offset, limit int) {
	offset = 0
	limit = 20

	if o := c.Query("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	return offset, limit
}
