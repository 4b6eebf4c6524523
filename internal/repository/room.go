package repository

import (
	"context"
	"time"

	"github.com/Derplicity/messaging-service/internal/domain"
)

// RoomQuery 是查询 Room 列表时的过滤选项。
// AuthorID 非空时只返回名单中包含该 Author 的房间；
// OnlyActive 进一步要求该成员的 isActive 为 true。
// Limit 为 0 表示不限制数量；UpdatedBefore 为零值表示无时间上界。
type RoomQuery struct {
	AuthorID        string
	OnlyActive      bool
	IncludeArchived bool
	UpdatedBefore   time.Time
	Limit           int
}

// RoomRepository 定义了 Room 数据 (含成员名单) 的存储和检索操作。
type RoomRepository interface {
	// Create 保存一个新 Room 及其成员名单。
	Create(ctx context.Context, room *domain.Room) error

	// FindByID 根据 id 查找 Room，成员名单按 Position 排序。
	// 未找到时返回 ErrRoomNotFound。
	FindByID(ctx context.Context, id string) (*domain.Room, error)

	// FindAll 按更新时间降序返回符合条件的 Room 列表 (含成员名单)。
	FindAll(ctx context.Context, q RoomQuery) ([]domain.Room, error)

	// FindByMember 返回名单中包含给定 Author 的全部房间，包括已归档的，
	// 不限数量。activeOnly 为 true 时要求该成员仍处于活跃状态。
	// 级联操作以此作为输入。
	FindByMember(ctx context.Context, authorID string, activeOnly bool) ([]domain.Room, error)

	// Update 替换 Room 的名称和成员名单，返回更新后的记录。
	// 未找到时返回 ErrRoomNotFound。
	Update(ctx context.Context, id string, name string, members []domain.RoomMember) (*domain.Room, error)

	// UpdateMembership 在一次写入中同时替换成员名单并 (可能) 设置归档标记。
	// 归档级联路径依赖这一单次写入语义。
	UpdateMembership(ctx context.Context, id string, members []domain.RoomMember, archive bool) error

	// Archive 将 Room 标记为已归档并返回更新后的记录。
	Archive(ctx context.Context, id string) (*domain.Room, error)

	// Delete 物理删除 Room (连同成员记录) 并返回被删除的记录。
	Delete(ctx context.Context, id string) (*domain.Room, error)
}
