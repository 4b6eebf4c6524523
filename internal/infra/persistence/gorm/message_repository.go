package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Derplicity/messaging-service/internal/domain"
	"github.com/Derplicity/messaging-service/internal/repository"
)

// GormMessageRepository 是 MessageRepository 接口的 GORM 实现
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository 创建 GormMessageRepository 实例
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	if db == nil {
		panic("database connection cannot be nil for GormMessageRepository")
	}
	return &GormMessageRepository{db: db}
}

// Create 实现保存新 Message
func (r *GormMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("gorm: create message %s: %w", message.ID, err)
	}
	return nil
}

// FindByID 实现根据 id 查找 Message
func (r *GormMessageRepository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	var message domain.Message
	err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMessageNotFound
		}
		return nil, fmt.Errorf("gorm: find message by id %s: %w", id, err)
	}
	return &message, nil
}

// FindAll 实现按条件查询 Message 列表，按创建时间降序
func (r *GormMessageRepository) FindAll(ctx context.Context, q repository.MessageQuery) ([]domain.Message, error) {
	var messages []domain.Message

	query := r.db.WithContext(ctx).Model(&domain.Message{})
	if q.RoomID != "" {
		query = query.Where("room_id = ?", q.RoomID)
	}
	if q.AuthorID != "" {
		query = query.Where("author_id = ?", q.AuthorID)
	}
	if !q.IncludeArchived {
		query = query.Where("is_archived = ?", false)
	}
	if !q.CreatedBefore.IsZero() {
		query = query.Where("created_at < ?", q.CreatedBefore)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	err := query.Order("created_at DESC").Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find all messages: %w", err)
	}
	return messages, nil
}

// FindMostRecent 实现查找房间内最新的一条未归档消息；没有消息时返回 (nil, nil)
func (r *GormMessageRepository) FindMostRecent(ctx context.Context, roomID string) (*domain.Message, error) {
	var message domain.Message
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND is_archived = ?", roomID, false).
		Order("created_at DESC").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("gorm: find most recent message for room %s: %w", roomID, err)
	}
	return &message, nil
}

// Update 实现更新 Message 文本并返回更新后的记录
func (r *GormMessageRepository) Update(ctx context.Context, id string, text string) (*domain.Message, error) {
	message, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	message.Text = text
	if err := r.db.WithContext(ctx).Save(message).Error; err != nil {
		return nil, fmt.Errorf("gorm: update message %s: %w", id, err)
	}
	return message, nil
}

// Archive 实现将 Message 标记为已归档
func (r *GormMessageRepository) Archive(ctx context.Context, id string) (*domain.Message, error) {
	message, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	message.IsArchived = true
	if err := r.db.WithContext(ctx).Save(message).Error; err != nil {
		return nil, fmt.Errorf("gorm: archive message %s: %w", id, err)
	}
	return message, nil
}

// Delete 实现物理删除 Message 并返回被删除的记录
func (r *GormMessageRepository) Delete(ctx context.Context, id string) (*domain.Message, error) {
	message, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Delete(&domain.Message{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("gorm: delete message %s: %w", id, err)
	}
	return message, nil
}

// applyFilter 将批量过滤条件应用到查询上
func applyFilter(query *gorm.DB, f repository.MessageFilter) *gorm.DB {
	if f.RoomID != "" {
		query = query.Where("room_id = ?", f.RoomID)
	}
	if f.AuthorID != "" {
		query = query.Where("author_id = ?", f.AuthorID)
	}
	return query
}

// ArchiveAll 实现批量归档，返回受影响的行数
func (r *GormMessageRepository) ArchiveAll(ctx context.Context, f repository.MessageFilter) (int64, error) {
	result := applyFilter(r.db.WithContext(ctx).Model(&domain.Message{}), f).
		Update("is_archived", true)
	if result.Error != nil {
		return 0, fmt.Errorf("gorm: archive all messages: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteAll 实现批量删除，返回受影响的行数
func (r *GormMessageRepository) DeleteAll(ctx context.Context, f repository.MessageFilter) (int64, error) {
	result := applyFilter(r.db.WithContext(ctx), f).Delete(&domain.Message{})
	if result.Error != nil {
		return 0, fmt.Errorf("gorm: delete all messages: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteArchivedBefore 实现删除在给定时间之前已归档的消息，返回受影响的行数
func (r *GormMessageRepository) DeleteArchivedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("is_archived = ? AND updated_at < ?", true, cutoff).
		Delete(&domain.Message{})
	if result.Error != nil {
		return 0, fmt.Errorf("gorm: delete archived messages before %s: %w", cutoff, result.Error)
	}
	return result.RowsAffected, nil
}
