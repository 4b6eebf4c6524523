package domain

import "github.com/google/uuid"

// NewID 生成一个新的 UUIDv4 字符串，用于 Room 和 Message 的主键。
// Author 的 id 由客户端提供，只做校验不做生成。
func NewID() string {
	return uuid.NewString()
}

// ValidID 校验给定字符串是否为合法的 UUIDv4。
func ValidID(id string) bool {
	u, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	return u.Version() == 4
}
