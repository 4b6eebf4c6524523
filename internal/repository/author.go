package repository

import (
	"context"
	"time"

	"github.com/Derplicity/messaging-service/internal/domain"
)

// AuthorQuery 是查询 Author 列表时的过滤选项。
// Limit 为 0 表示不限制数量；CreatedBefore 为零值表示无时间上界。
type AuthorQuery struct {
	IncludeArchived bool
	CreatedBefore   time.Time
	Limit           int
}

// AuthorPatch 是更新 Author 时允许修改的字段。
type AuthorPatch struct {
	FirstName string
	LastName  string
}

// AuthorRepository 定义了 Author 数据的存储和检索操作。
type AuthorRepository interface {
	// Create 保存一个新 Author。id 已存在时返回 ErrDuplicateEntry。
	Create(ctx context.Context, author *domain.Author) error

	// FindByID 根据 id 查找 Author。未找到时返回 ErrAuthorNotFound。
	FindByID(ctx context.Context, id string) (*domain.Author, error)

	// FindAll 按创建时间降序返回符合条件的 Author 列表。
	FindAll(ctx context.Context, q AuthorQuery) ([]domain.Author, error)

	// Update 更新 Author 并返回更新后的记录。未找到时返回 ErrAuthorNotFound。
	Update(ctx context.Context, id string, patch AuthorPatch) (*domain.Author, error)

	// Archive 将 Author 标记为已归档并返回更新后的记录。
	Archive(ctx context.Context, id string) (*domain.Author, error)

	// Delete 物理删除 Author 并返回被删除的记录。
	Delete(ctx context.Context, id string) (*domain.Author, error)
}
