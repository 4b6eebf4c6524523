// Package domain 定义了应用程序中使用的数据结构 (数据库模型)。
package domain

import "time"

// Author 表示一个参与聊天的用户实体。
// 注意：id 由客户端在创建时提供 (UUIDv4)，而不是由存储层生成。
type Author struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`        // Author 唯一标识符 (UUIDv4, 主键)
	FirstName  string    `gorm:"size:191;not null" json:"firstName"`  // 名
	LastName   string    `gorm:"size:191;not null" json:"lastName"`   // 姓
	IsArchived bool      `gorm:"not null;default:false;index" json:"isArchived"` // 软删除标记
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"createdAt"` // 创建时间 (GORM 自动填充)
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`       // 最后更新时间 (GORM 自动填充)
}
