package tasks

import "encoding/json"

// 定义任务类型常量
const (
	TypeRetentionSweep = "retention:sweep" // 归档消息的定期清理任务
)

// RetentionSweepPayload 定义清理任务的数据结构
type RetentionSweepPayload struct {
	// 归档超过该天数的消息会被硬删除
	OlderThanDays int `json:"olderThanDays"`
}

// NewRetentionSweepTask 序列化一个清理任务的 payload
func NewRetentionSweepTask(olderThanDays int) ([]byte, error) {
	return json.Marshal(RetentionSweepPayload{OlderThanDays: olderThanDays})
}
