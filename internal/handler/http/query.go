package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// 列表查询的默认页大小；limit=0 表示不限数量
const defaultListLimit = 10

// queryBool 解析 0/1 形式的查询参数 (如 includeArchived=1)。
func queryBool(c *gin.Context, name string) bool {
	raw := c.Query(name)
	if raw == "" {
		return false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return false
	}
	return n != 0
}

// queryTime 解析毫秒时间戳形式的时间上界参数 (如 createdBefore=1735689600000)。
// 缺失或非法时返回零值。
func queryTime(c *gin.Context, name string) time.Time {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// queryLimit 解析 limit 参数，缺失或非法时使用默认页大小。
func queryLimit(c *gin.Context) int {
	raw := c.Query("limit")
	if raw == "" {
		return defaultListLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return defaultListLimit
	}
	return n
}
