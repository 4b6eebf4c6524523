package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Derplicity/messaging-service/internal/domain"
	"github.com/Derplicity/messaging-service/internal/repository"
)

// GormRoomRepository 是 RoomRepository 接口的 GORM 实现。
// 成员名单存储在 room_members 连接表中，Position 列保持名单顺序。
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository 创建 GormRoomRepository 实例
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	if db == nil {
		panic("database connection cannot be nil for GormRoomRepository")
	}
	return &GormRoomRepository{db: db}
}

// orderedMembers 返回按 Position 排序加载成员名单的 Preload 条件
func orderedMembers(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create 实现保存新 Room 及其成员名单
func (r *GormRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	// GORM 会随 Room 一并插入 Members 关联记录
	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		return fmt.Errorf("gorm: create room %s: %w", room.ID, err)
	}
	return nil
}

// FindByID 实现根据 id 查找 Room (含有序成员名单)
func (r *GormRoomRepository) FindByID(ctx context.Context, id string) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).Preload("Members", orderedMembers).First(&room, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoomNotFound
		}
		return nil, fmt.Errorf("gorm: find room by id %s: %w", id, err)
	}
	return &room, nil
}

// FindAll 实现按条件查询 Room 列表，按更新时间降序
func (r *GormRoomRepository) FindAll(ctx context.Context, q repository.RoomQuery) ([]domain.Room, error) {
	var rooms []domain.Room

	query := r.db.WithContext(ctx).Model(&domain.Room{}).Preload("Members", orderedMembers)
	if q.AuthorID != "" {
		query = query.Joins("JOIN room_members ON room_members.room_id = rooms.id").
			Where("room_members.author_id = ?", q.AuthorID)
		if q.OnlyActive {
			query = query.Where("room_members.is_active = ?", true)
		}
	}
	if !q.IncludeArchived {
		query = query.Where("rooms.is_archived = ?", false)
	}
	if !q.UpdatedBefore.IsZero() {
		query = query.Where("rooms.updated_at < ?", q.UpdatedBefore)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	err := query.Order("rooms.updated_at DESC").Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find all rooms: %w", err)
	}
	return rooms, nil
}

// FindByMember 实现查找名单中包含给定 Author 的全部房间 (含已归档，不限数量)
func (r *GormRoomRepository) FindByMember(ctx context.Context, authorID string, activeOnly bool) ([]domain.Room, error) {
	var rooms []domain.Room

	query := r.db.WithContext(ctx).Model(&domain.Room{}).Preload("Members", orderedMembers).
		Joins("JOIN room_members ON room_members.room_id = rooms.id").
		Where("room_members.author_id = ?", authorID)
	if activeOnly {
		query = query.Where("room_members.is_active = ?", true)
	}

	err := query.Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find rooms by member %s: %w", authorID, err)
	}
	return rooms, nil
}

// Update 实现替换 Room 的名称和成员名单
func (r *GormRoomRepository) Update(ctx context.Context, id string, name string, members []domain.RoomMember) (*domain.Room, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	for i := range members {
		members[i].RoomID = id
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&domain.RoomMember{}).Error; err != nil {
			return err
		}
		if len(members) > 0 {
			if err := tx.Create(&members).Error; err != nil {
				return err
			}
		}
		// Model 更新会自动刷新 updated_at
		return tx.Model(&domain.Room{ID: id}).Update("name", name).Error
	})
	if err != nil {
		return nil, fmt.Errorf("gorm: update room %s: %w", id, err)
	}

	return r.FindByID(ctx, id)
}

// UpdateMembership 实现在一次事务中替换成员名单并设置归档标记
func (r *GormRoomRepository) UpdateMembership(ctx context.Context, id string, members []domain.RoomMember, archive bool) error {
	for i := range members {
		members[i].RoomID = id
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&domain.RoomMember{}).Error; err != nil {
			return err
		}
		if len(members) > 0 {
			if err := tx.Create(&members).Error; err != nil {
				return err
			}
		}
		return tx.Model(&domain.Room{ID: id}).Update("is_archived", archive).Error
	})
	if err != nil {
		return fmt.Errorf("gorm: update room membership %s: %w", id, err)
	}
	return nil
}

// Archive 实现将 Room 标记为已归档
func (r *GormRoomRepository) Archive(ctx context.Context, id string) (*domain.Room, error) {
	room, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&domain.Room{ID: id}).Update("is_archived", true).Error; err != nil {
		return nil, fmt.Errorf("gorm: archive room %s: %w", id, err)
	}
	room.IsArchived = true
	return room, nil
}

// Delete 实现物理删除 Room 及其成员记录，并返回被删除的记录
func (r *GormRoomRepository) Delete(ctx context.Context, id string) (*domain.Room, error) {
	room, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&domain.RoomMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Room{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("gorm: delete room %s: %w", id, err)
	}
	return room, nil
}
