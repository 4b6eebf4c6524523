package setup

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Derplicity/messaging-service/internal/domain"
)

// MigrateDB 自动迁移全部实体对应的表结构。
// 主键均为 36 字符的 UUID 字符串，AutoMigrate 可以直接处理，
// 不需要旧版本中针对 TEXT 索引长度的自定义 SQL。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	err := db.AutoMigrate(
		&domain.Author{},
		&domain.Room{},
		&domain.RoomMember{},
		&domain.Message{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}
	return nil
}
