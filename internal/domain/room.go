package domain

import "time"

// Room 表示一个聊天房间，持有一份有序的成员名单。
// 成员状态 (isActive) 属于房间本地状态，而不是 Author 的全局状态。
type Room struct {
	ID         string       `gorm:"primaryKey;size:36" json:"id"`       // Room 唯一标识符 (UUIDv4, 创建时生成)
	Name       string       `gorm:"size:191;not null" json:"name"`      // 房间名称
	Members    []RoomMember `gorm:"foreignKey:RoomID;references:ID;constraint:OnDelete:CASCADE" json:"members"` // 有序成员名单
	IsArchived bool         `gorm:"not null;default:false;index" json:"isArchived"` // 软删除标记
	CreatedAt  time.Time    `gorm:"autoCreateTime" json:"createdAt"`       // 创建时间 (GORM 自动填充)
	UpdatedAt  time.Time    `gorm:"autoUpdateTime;index" json:"updatedAt"` // 最后更新时间 (GORM 自动填充)

	// MostRecentMessage 仅在列表查询时填充，不持久化。
	MostRecentMessage *Message `gorm:"-" json:"mostRecentMessage,omitempty"`
}

// RoomMember 表示房间名单中的一条成员记录。
// Position 保持名单的插入顺序；(RoomID, AuthorID) 组合唯一，保证无重复成员。
type RoomMember struct {
	RoomID   string `gorm:"primaryKey;size:36" json:"-"`              // 所属房间 ID
	AuthorID string `gorm:"primaryKey;size:36;index" json:"authorId"` // 成员 Author ID
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`    // 成员是否仍在参与
	Position int    `gorm:"not null" json:"-"`                        // 名单内的排序位置
}

// ActiveMemberCount 返回名单中 isActive 为 true 的成员数量。
func (r *Room) ActiveMemberCount() int {
	count := 0
	for _, m := range r.Members {
		if m.IsActive {
			count++
		}
	}
	return count
}

// HasMember 判断给定 Author 是否出现在名单中 (不论是否活跃)。
func (r *Room) HasMember(authorID string) bool {
	for _, m := range r.Members {
		if m.AuthorID == authorID {
			return true
		}
	}
	return false
}
