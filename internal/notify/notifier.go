// Package notify 实现通知路由：一次成功的变更之后，
// 计算投递目标集并向每个目标频道发出恰好一个事件。
package notify

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Derplicity/messaging-service/internal/domain"
	"github.com/Derplicity/messaging-service/internal/events"
	"github.com/Derplicity/messaging-service/internal/hub"
	"github.com/Derplicity/messaging-service/internal/repository"
)

// Publisher 是频道广播的抽象，由 hub.Hub 实现。
type Publisher interface {
	Publish(channel, event string, payload interface{}, exclude *hub.Client)
}

// Notifier 根据变更实体的类型计算广播目标。
// origin 参数是动作发起方的连接 (HTTP 入口为 nil)，发起方不参与广播，
// 应答由 Facade 单独发送。
type Notifier struct {
	pub      Publisher
	roomRepo repository.RoomRepository
}

// NewNotifier 创建 Notifier 实例。
func NewNotifier(pub Publisher, roomRepo repository.RoomRepository) *Notifier {
	if pub == nil {
		panic("Publisher cannot be nil for Notifier")
	}
	if roomRepo == nil {
		panic("RoomRepository cannot be nil for Notifier")
	}
	return &Notifier{pub: pub, roomRepo: roomRepo}
}

// AuthorUpdated 广播 Author 的普通更新。目标是该 Author 所属的全部房间频道
// (含已归档)。房间查询失败时只记日志，不影响调用方。
func (n *Notifier) AuthorUpdated(ctx context.Context, author *domain.Author, origin *hub.Client) {
	rooms, err := n.roomRepo.FindByMember(ctx, author.ID, false)
	if err != nil && !errors.Is(err, repository.ErrRoomNotFound) {
		logrus.WithError(err).WithField("author_id", author.ID).Warn("Notify: failed to resolve rooms for author update")
		return
	}
	roomIDs := make([]string, 0, len(rooms))
	for _, room := range rooms {
		roomIDs = append(roomIDs, room.ID)
	}
	n.AuthorChanged(events.AuthorUpdated, author, roomIDs, origin)
}

// AuthorChanged 把 Author 事件广播到给定的房间频道集合。
// 归档/删除级联的调用方传入级联前抓取的房间 id。
func (n *Notifier) AuthorChanged(event string, author *domain.Author, roomIDs []string, origin *hub.Client) {
	payload := map[string]interface{}{"author": author}
	for _, roomID := range roomIDs {
		n.pub.Publish(roomID, event, payload, origin)
	}
}

// RoomCreated 逐个通知新房间名单上的每个成员 (走 Author id 频道)。
func (n *Notifier) RoomCreated(room *domain.Room, origin *hub.Client) {
	payload := map[string]interface{}{"room": room}
	for _, member := range room.Members {
		n.pub.Publish(member.AuthorID, events.RoomCreated, payload, origin)
	}
}

// RoomChanged 把 Room 的更新/归档/删除事件广播到房间自身的频道。
func (n *Notifier) RoomChanged(event string, room *domain.Room, origin *hub.Client) {
	n.pub.Publish(room.ID, event, map[string]interface{}{"room": room}, origin)
}

// MessageCreated 推送新消息：目标是父房间当前活跃的每个成员，
// 走各自的 Author id 频道，与房间订阅无关。
// 房间已不存在或查询失败时只记日志 (消息本身已落库)。
func (n *Notifier) MessageCreated(ctx context.Context, message *domain.Message, origin *hub.Client) {
	room, err := n.roomRepo.FindByID(ctx, message.RoomID)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"message_id": message.ID,
			"room_id":    message.RoomID,
		}).Warn("Notify: failed to resolve room for message creation")
		return
	}
	payload := map[string]interface{}{"message": message}
	for _, member := range room.Members {
		if member.IsActive {
			n.pub.Publish(member.AuthorID, events.MessageCreated, payload, origin)
		}
	}
}

// MessageChanged 把 Message 的更新/归档/删除事件广播到其 roomId 频道。
func (n *Notifier) MessageChanged(event string, message *domain.Message, origin *hub.Client) {
	n.pub.Publish(message.RoomID, event, map[string]interface{}{"message": message}, origin)
}
