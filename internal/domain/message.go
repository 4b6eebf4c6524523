package domain

import "time"

// Message 表示某个 Author 在某个 Room 中发送的一条文本消息。
// 物理上是独立记录，便于按 roomId 或 authorId 做批量级联操作。
type Message struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`        // Message 唯一标识符 (UUIDv4, 创建时生成)
	RoomID     string    `gorm:"size:36;not null;index" json:"roomId"`   // 所属房间 ID (创建时必须存在)
	AuthorID   string    `gorm:"size:36;not null;index" json:"authorId"` // 作者 ID (创建时必须是房间成员)
	Text       string    `gorm:"type:text;not null" json:"text"`      // 消息文本
	IsArchived bool      `gorm:"not null;default:false;index" json:"isArchived"` // 软删除标记
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"createdAt"` // 创建时间 (GORM 自动填充)
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`       // 最后更新时间 (GORM 自动填充)
}
