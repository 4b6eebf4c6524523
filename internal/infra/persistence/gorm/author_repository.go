package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/Derplicity/messaging-service/internal/domain"
	"github.com/Derplicity/messaging-service/internal/repository"
)

// GormAuthorRepository 是 AuthorRepository 接口的 GORM 实现
type GormAuthorRepository struct {
	db *gorm.DB
}

// NewGormAuthorRepository 创建 GormAuthorRepository 实例
func NewGormAuthorRepository(db *gorm.DB) *GormAuthorRepository {
	if db == nil {
		panic("database connection cannot be nil for GormAuthorRepository")
	}
	return &GormAuthorRepository{db: db}
}

// Create 实现保存新 Author
func (r *GormAuthorRepository) Create(ctx context.Context, author *domain.Author) error {
	err := r.db.WithContext(ctx).Create(author).Error
	if err != nil {
		// 唯一约束检查 (MySQL 1062)：id 已存在
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: create author %s: %w", author.ID, err)
	}
	return nil
}

// FindByID 实现根据 id 查找 Author
func (r *GormAuthorRepository) FindByID(ctx context.Context, id string) (*domain.Author, error) {
	var author domain.Author
	err := r.db.WithContext(ctx).First(&author, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("gorm: find author by id %s: %w", id, err)
	}
	return &author, nil
}

// FindAll 实现按条件查询 Author 列表，按创建时间降序
func (r *GormAuthorRepository) FindAll(ctx context.Context, q repository.AuthorQuery) ([]domain.Author, error) {
	var authors []domain.Author

	query := r.db.WithContext(ctx).Model(&domain.Author{})
	if !q.IncludeArchived {
		query = query.Where("is_archived = ?", false)
	}
	if !q.CreatedBefore.IsZero() {
		query = query.Where("created_at < ?", q.CreatedBefore)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	err := query.Order("created_at DESC").Find(&authors).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find all authors: %w", err)
	}
	return authors, nil
}

// Update 实现更新 Author 字段并返回更新后的记录
func (r *GormAuthorRepository) Update(ctx context.Context, id string, patch repository.AuthorPatch) (*domain.Author, error) {
	author, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author.FirstName = patch.FirstName
	author.LastName = patch.LastName
	if err := r.db.WithContext(ctx).Save(author).Error; err != nil {
		return nil, fmt.Errorf("gorm: update author %s: %w", id, err)
	}
	return author, nil
}

// Archive 实现将 Author 标记为已归档
func (r *GormAuthorRepository) Archive(ctx context.Context, id string) (*domain.Author, error) {
	author, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author.IsArchived = true
	if err := r.db.WithContext(ctx).Save(author).Error; err != nil {
		return nil, fmt.Errorf("gorm: archive author %s: %w", id, err)
	}
	return author, nil
}

// Delete 实现物理删除 Author 并返回被删除的记录
func (r *GormAuthorRepository) Delete(ctx context.Context, id string) (*domain.Author, error) {
	author, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Delete(&domain.Author{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("gorm: delete author %s: %w", id, err)
	}
	return author, nil
}
