package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Derplicity/messaging-service/internal/domain"
	"github.com/Derplicity/messaging-service/internal/events"
	"github.com/Derplicity/messaging-service/internal/hub"
	"github.com/Derplicity/messaging-service/internal/notify"
	"github.com/Derplicity/messaging-service/internal/repository/mocks"
)

const (
	authorID1 = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	authorID2 = "9b2d7a64-5cd3-4f11-8a10-62fba1a3c0d9"
	authorID3 = "e4b7c9a1-2f53-4d0e-9c1a-8b6f2d4e7a10"
	roomID1   = "550e8400-e29b-41d4-a716-446655440000"
	roomID2   = "6ba7b810-9dad-41d1-80b4-00c04fd430c8"
)

type publishCall struct {
	channel string
	event   string
	payload interface{}
	exclude *hub.Client
}

// recordingPublisher 记录每一次 Publish 调用，替代真实的 Hub
type recordingPublisher struct {
	mu    sync.Mutex
	calls []publishCall
}

func (p *recordingPublisher) Publish(channel, event string, payload interface{}, exclude *hub.Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, publishCall{channel: channel, event: event, payload: payload, exclude: exclude})
}

func (p *recordingPublisher) channels() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.calls))
	for _, c := range p.calls {
		out = append(out, c.channel)
	}
	return out
}

func TestNotifier_MessageCreated_TargetsActiveMembersOnly(t *testing.T) {
	// 只有活跃成员各收到一次推送，不活跃成员被跳过
	pub := &recordingPublisher{}
	roomRepo := new(mocks.RoomRepository)
	notifier := notify.NewNotifier(pub, roomRepo)
	ctx := context.Background()

	room := &domain.Room{
		ID: roomID1,
		Members: []domain.RoomMember{
			{RoomID: roomID1, AuthorID: authorID1, IsActive: true, Position: 0},
			{RoomID: roomID1, AuthorID: authorID2, IsActive: false, Position: 1},
			{RoomID: roomID1, AuthorID: authorID3, IsActive: true, Position: 2},
		},
	}
	message := &domain.Message{ID: "m1", RoomID: roomID1, AuthorID: authorID1, Text: "hi"}
	roomRepo.On("FindByID", ctx, roomID1).Return(room, nil).Once()

	notifier.MessageCreated(ctx, message, nil)

	assert.ElementsMatch(t, []string{authorID1, authorID3}, pub.channels())
	for _, call := range pub.calls {
		assert.Equal(t, events.MessageCreated, call.event)
		assert.Equal(t, map[string]interface{}{"message": message}, call.payload)
	}
}

func TestNotifier_MessageCreated_ForwardsOriginExclusion(t *testing.T) {
	pub := &recordingPublisher{}
	roomRepo := new(mocks.RoomRepository)
	notifier := notify.NewNotifier(pub, roomRepo)
	ctx := context.Background()

	room := &domain.Room{
		ID: roomID1,
		Members: []domain.RoomMember{
			{RoomID: roomID1, AuthorID: authorID1, IsActive: true, Position: 0},
		},
	}
	origin := &hub.Client{}
	roomRepo.On("FindByID", ctx, roomID1).Return(room, nil).Once()

	notifier.MessageCreated(ctx, &domain.Message{ID: "m1", RoomID: roomID1}, origin)

	require.Len(t, pub.calls, 1)
	assert.Same(t, origin, pub.calls[0].exclude, "发起方的连接应被排除在广播之外")
}

func TestNotifier_MessageCreated_RoomLookupFailureIsSilent(t *testing.T) {
	// 房间查询失败不产生任何推送，也不向调用方冒泡
	pub := &recordingPublisher{}
	roomRepo := new(mocks.RoomRepository)
	notifier := notify.NewNotifier(pub, roomRepo)
	ctx := context.Background()

	roomRepo.On("FindByID", ctx, roomID1).Return(nil, errors.New("gorm: timeout")).Once()

	notifier.MessageCreated(ctx, &domain.Message{ID: "m1", RoomID: roomID1}, nil)

	assert.Empty(t, pub.calls)
}

func TestNotifier_MessageChanged_TargetsRoomChannel(t *testing.T) {
	pub := &recordingPublisher{}
	notifier := notify.NewNotifier(pub, new(mocks.RoomRepository))

	notifier.MessageChanged(events.MessageArchived, &domain.Message{ID: "m1", RoomID: roomID1}, nil)

	require.Len(t, pub.calls, 1)
	assert.Equal(t, roomID1, pub.calls[0].channel)
	assert.Equal(t, events.MessageArchived, pub.calls[0].event)
	_, ok := pub.calls[0].payload.(map[string]interface{})["message"]
	assert.True(t, ok, "广播数据应以实体名为键包裹记录")
}

func TestNotifier_AuthorUpdated_TargetsAllMemberRooms(t *testing.T) {
	// 普通更新的目标集合是该作者所属的全部房间 (含已归档)
	pub := &recordingPublisher{}
	roomRepo := new(mocks.RoomRepository)
	notifier := notify.NewNotifier(pub, roomRepo)
	ctx := context.Background()

	author := &domain.Author{ID: authorID1}
	memberRooms := []domain.Room{
		{ID: roomID1},
		{ID: roomID2, IsArchived: true},
	}
	roomRepo.On("FindByMember", ctx, authorID1, false).Return(memberRooms, nil).Once()

	notifier.AuthorUpdated(ctx, author, nil)

	assert.ElementsMatch(t, []string{roomID1, roomID2}, pub.channels())
	for _, call := range pub.calls {
		assert.Equal(t, events.AuthorUpdated, call.event)
	}
}

func TestNotifier_AuthorChanged_UsesPrefetchedRoomIDs(t *testing.T) {
	// 级联路径使用级联前抓取的房间集合，不再查询存储
	pub := &recordingPublisher{}
	roomRepo := new(mocks.RoomRepository)
	notifier := notify.NewNotifier(pub, roomRepo)

	author := &domain.Author{ID: authorID1}
	notifier.AuthorChanged(events.AuthorDeleted, author, []string{roomID1, roomID2}, nil)

	assert.ElementsMatch(t, []string{roomID1, roomID2}, pub.channels())
	for _, call := range pub.calls {
		assert.Equal(t, map[string]interface{}{"author": author}, call.payload)
	}
	roomRepo.AssertNotCalled(t, "FindByMember", nil, authorID1, false)
}

func TestNotifier_RoomCreated_NotifiesEveryListedMember(t *testing.T) {
	pub := &recordingPublisher{}
	notifier := notify.NewNotifier(pub, new(mocks.RoomRepository))

	room := &domain.Room{
		ID: roomID1,
		Members: []domain.RoomMember{
			{RoomID: roomID1, AuthorID: authorID1, IsActive: true, Position: 0},
			{RoomID: roomID1, AuthorID: authorID2, IsActive: true, Position: 1},
		},
	}

	notifier.RoomCreated(room, nil)

	assert.ElementsMatch(t, []string{authorID1, authorID2}, pub.channels())
	for _, call := range pub.calls {
		assert.Equal(t, events.RoomCreated, call.event)
		assert.Equal(t, map[string]interface{}{"room": room}, call.payload)
	}
}

func TestNotifier_RoomChanged_TargetsRoomOwnChannel(t *testing.T) {
	pub := &recordingPublisher{}
	notifier := notify.NewNotifier(pub, new(mocks.RoomRepository))

	notifier.RoomChanged(events.RoomArchived, &domain.Room{ID: roomID1}, nil)

	require.Len(t, pub.calls, 1)
	assert.Equal(t, roomID1, pub.calls[0].channel)
}
