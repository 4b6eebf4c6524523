package repository

import (
	"context"
	"time"

	"github.com/Derplicity/messaging-service/internal/domain"
)

// MessageQuery 是查询 Message 列表时的过滤选项。
// RoomID / AuthorID 非空时按相等匹配过滤。
// Limit 为 0 表示不限制数量；CreatedBefore 为零值表示无时间上界。
type MessageQuery struct {
	RoomID          string
	AuthorID        string
	IncludeArchived bool
	CreatedBefore   time.Time
	Limit           int
}

// MessageFilter 是批量级联操作的过滤条件，按 RoomID 或 AuthorID 匹配。
type MessageFilter struct {
	RoomID   string
	AuthorID string
}

// MessageRepository 定义了 Message 数据的存储和检索操作。
type MessageRepository interface {
	// Create 保存一条新 Message。
	Create(ctx context.Context, message *domain.Message) error

	// FindByID 根据 id 查找 Message。未找到时返回 ErrMessageNotFound。
	FindByID(ctx context.Context, id string) (*domain.Message, error)

	// FindAll 按创建时间降序返回符合条件的 Message 列表。
	FindAll(ctx context.Context, q MessageQuery) ([]domain.Message, error)

	// FindMostRecent 返回房间内最新的一条未归档消息。
	// 房间没有消息时返回 (nil, nil)。
	FindMostRecent(ctx context.Context, roomID string) (*domain.Message, error)

	// Update 更新 Message 的文本并返回更新后的记录。
	Update(ctx context.Context, id string, text string) (*domain.Message, error)

	// Archive 将 Message 标记为已归档并返回更新后的记录。
	Archive(ctx context.Context, id string) (*domain.Message, error)

	// Delete 物理删除 Message 并返回被删除的记录。
	Delete(ctx context.Context, id string) (*domain.Message, error)

	// ArchiveAll 批量归档符合条件的 Message，返回受影响的行数。
	ArchiveAll(ctx context.Context, f MessageFilter) (int64, error)

	// DeleteAll 批量删除符合条件的 Message，返回受影响的行数。
	DeleteAll(ctx context.Context, f MessageFilter) (int64, error)

	// DeleteArchivedBefore 删除在给定时间之前就已归档的 Message，
	// 返回受影响的行数。保留期清理任务使用。
	DeleteArchivedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
