package service

import "github.com/Derplicity/messaging-service/internal/domain"

// 成员名单解析：给定房间当前名单和受影响的 Author，
// 计算更新后的名单以及房间自身必须发生的状态变化。
// 阈值使用 <= 0 而不是 == 0，已经不一致的负计数不会再触发静默级联。

// ResolveMemberArchive 将名单中匹配 authorID 的成员置为不活跃。
// 返回更新后的名单，以及房间是否应当随之归档 (活跃成员数降为 0)。
func ResolveMemberArchive(members []domain.RoomMember, authorID string) ([]domain.RoomMember, bool) {
	activeCount := 0
	updated := make([]domain.RoomMember, 0, len(members))

	for _, m := range members {
		if m.IsActive {
			activeCount++
		}
		if m.AuthorID == authorID {
			if m.IsActive {
				activeCount--
			}
			m.IsActive = false
		}
		updated = append(updated, m)
	}

	return updated, activeCount <= 0
}

// ResolveMemberRemoval 将名单中匹配 authorID 的成员整个移除。
// 返回更新后的名单，以及房间是否应当随之硬删除 (活跃成员数降为 0)。
// 只有当被移除的成员本身活跃时才递减计数。
func ResolveMemberRemoval(members []domain.RoomMember, authorID string) ([]domain.RoomMember, bool) {
	activeCount := 0
	updated := make([]domain.RoomMember, 0, len(members))

	for _, m := range members {
		if m.IsActive {
			activeCount++
		}
		if m.AuthorID == authorID {
			if m.IsActive {
				activeCount--
			}
			continue
		}
		updated = append(updated, m)
	}

	return updated, activeCount <= 0
}
