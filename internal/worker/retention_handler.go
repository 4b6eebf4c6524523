package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/Derplicity/messaging-service/internal/repository"
	"github.com/Derplicity/messaging-service/internal/tasks"
)

// RetentionHandler 处理归档消息的定期清理任务
type RetentionHandler struct {
	messageRepo repository.MessageRepository
}

// NewRetentionHandler 创建 Handler 实例
func NewRetentionHandler(messageRepo repository.MessageRepository) *RetentionHandler {
	if messageRepo == nil {
		panic("MessageRepository cannot be nil for RetentionHandler")
	}
	return &RetentionHandler{messageRepo: messageRepo}
}

// ProcessTask 实现 asynq.Handler 接口
func (h *RetentionHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := logrus.WithField("task_type", t.Type())

	var payload tasks.RetentionSweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logCtx.WithError(err).Error("Failed to unmarshal task payload")
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.OlderThanDays <= 0 {
		logCtx.Warnf("Retention sweep skipped: invalid olderThanDays %d", payload.OlderThanDays)
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -payload.OlderThanDays)
	count, err := h.messageRepo.DeleteArchivedBefore(ctx, cutoff)
	if err != nil {
		logCtx.WithError(err).Error("Retention sweep failed")
		return fmt.Errorf("retention sweep: %w", err)
	}

	logCtx.WithFields(logrus.Fields{
		"cutoff":  cutoff,
		"deleted": count,
	}).Info("Retention sweep completed")
	return nil
}
