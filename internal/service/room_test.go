package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Derplicity/messaging-service/internal/domain"
	"github.com/Derplicity/messaging-service/internal/repository"
	"github.com/Derplicity/messaging-service/internal/repository/mocks"
	"github.com/Derplicity/messaging-service/internal/service"
)

func newRoomService(t *testing.T) (*service.RoomService, *mocks.RoomRepository, *mocks.AuthorRepository, *mocks.MessageRepository) {
	t.Helper()
	roomRepo := new(mocks.RoomRepository)
	authorRepo := new(mocks.AuthorRepository)
	messageRepo := new(mocks.MessageRepository)
	return service.NewRoomService(roomRepo, authorRepo, messageRepo), roomRepo, authorRepo, messageRepo
}

// --- CreateRoom ---

func TestRoomService_CreateRoom_WithMembers(t *testing.T) {
	svc, roomRepo, authorRepo, _ := newRoomService(t)
	ctx := context.Background()

	authorRepo.On("FindByID", ctx, authorID1).Return(&domain.Author{ID: authorID1}, nil).Once()
	authorRepo.On("FindByID", ctx, authorID2).Return(&domain.Author{ID: authorID2}, nil).Once()
	roomRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Room) bool {
		if r.Name != "general" || len(r.Members) != 2 {
			return false
		}
		// 初始成员全部活跃，Position 保持传入顺序
		return r.Members[0].AuthorID == authorID1 && r.Members[0].IsActive && r.Members[0].Position == 0 &&
			r.Members[1].AuthorID == authorID2 && r.Members[1].IsActive && r.Members[1].Position == 1
	})).Return(nil).Once()

	room, err := svc.CreateRoom(ctx, "general", []string{authorID1, authorID2})

	require.NoError(t, err)
	require.NotNil(t, room)
	assert.NotEmpty(t, room.ID, "房间 id 应由服务端生成")
	assert.True(t, domain.ValidID(room.ID))
	roomRepo.AssertExpectations(t)
}

func TestRoomService_CreateRoom_EmptyRosterAllowed(t *testing.T) {
	// 空名单创建合法，不触发任何自动删除
	svc, roomRepo, _, _ := newRoomService(t)
	ctx := context.Background()

	roomRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Room) bool {
		return r.Name == "lonely" && len(r.Members) == 0
	})).Return(nil).Once()

	room, err := svc.CreateRoom(ctx, "lonely", nil)

	require.NoError(t, err)
	assert.False(t, room.IsArchived)
	roomRepo.AssertExpectations(t)
}

func TestRoomService_CreateRoom_MissingName(t *testing.T) {
	svc, roomRepo, _, _ := newRoomService(t)

	_, err := svc.CreateRoom(context.Background(), "", nil)

	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, service.CodeRequired, ve.Fields["name"])
	roomRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRoomService_CreateRoom_DuplicateMember(t *testing.T) {
	// 名单中重复的 Author id 总是校验失败
	svc, roomRepo, authorRepo, _ := newRoomService(t)
	ctx := context.Background()

	authorRepo.On("FindByID", ctx, authorID1).Return(&domain.Author{ID: authorID1}, nil).Once()

	_, err := svc.CreateRoom(ctx, "general", []string{authorID1, authorID1})

	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, service.CodeDuplicate, ve.Fields["members.1"])
	roomRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRoomService_CreateRoom_UnknownMember(t *testing.T) {
	svc, roomRepo, authorRepo, _ := newRoomService(t)
	ctx := context.Background()

	authorRepo.On("FindByID", ctx, authorID1).Return(nil, repository.ErrAuthorNotFound).Once()

	_, err := svc.CreateRoom(ctx, "general", []string{authorID1})

	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, service.CodeInvalid, ve.Fields["members.0"])
	roomRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRoomService_CreateRoom_MalformedMemberID(t *testing.T) {
	svc, _, _, _ := newRoomService(t)

	_, err := svc.CreateRoom(context.Background(), "general", []string{"not-a-uuid"})

	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, service.CodeInvalid, ve.Fields["members.0"])
}

// --- UpdateRoom ---

func TestRoomService_UpdateRoom_PreservesActivityFlags(t *testing.T) {
	// 留在名单中的成员保持原有活跃状态，新成员默认活跃
	svc, roomRepo, authorRepo, _ := newRoomService(t)
	ctx := context.Background()

	current := &domain.Room{
		ID:   roomID1,
		Name: "general",
		Members: []domain.RoomMember{
			{RoomID: roomID1, AuthorID: authorID1, IsActive: false, Position: 0},
		},
	}

	authorRepo.On("FindByID", ctx, authorID1).Return(&domain.Author{ID: authorID1}, nil).Once()
	authorRepo.On("FindByID", ctx, authorID2).Return(&domain.Author{ID: authorID2}, nil).Once()
	roomRepo.On("FindByID", ctx, roomID1).Return(current, nil).Once()
	roomRepo.On("Update", ctx, roomID1, "renamed", mock.MatchedBy(func(ms []domain.RoomMember) bool {
		if len(ms) != 2 {
			return false
		}
		return ms[0].AuthorID == authorID1 && !ms[0].IsActive &&
			ms[1].AuthorID == authorID2 && ms[1].IsActive
	})).Return(&domain.Room{ID: roomID1, Name: "renamed"}, nil).Once()

	room, err := svc.UpdateRoom(ctx, roomID1, "renamed", []string{authorID1, authorID2})

	require.NoError(t, err)
	assert.Equal(t, "renamed", room.Name)
	roomRepo.AssertExpectations(t)
}

func TestRoomService_UpdateRoom_DuplicateMember(t *testing.T) {
	svc, roomRepo, authorRepo, _ := newRoomService(t)
	ctx := context.Background()

	authorRepo.On("FindByID", ctx, authorID1).Return(&domain.Author{ID: authorID1}, nil).Once()

	_, err := svc.UpdateRoom(ctx, roomID1, "general", []string{authorID1, authorID1})

	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, service.CodeDuplicate, ve.Fields["members.1"])
	roomRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRoomService_UpdateRoom_NotFound(t *testing.T) {
	svc, roomRepo, _, _ := newRoomService(t)
	ctx := context.Background()

	roomRepo.On("FindByID", ctx, roomID1).Return(nil, repository.ErrRoomNotFound).Once()

	_, err := svc.UpdateRoom(ctx, roomID1, "general", nil)

	assert.True(t, errors.Is(err, service.ErrRoomNotFound))
}

// --- ArchiveRoom / DeleteRoom ---

func TestRoomService_ArchiveRoom_CascadesToMessages(t *testing.T) {
	// 房间归档后其全部消息批量归档，名单不动
	svc, roomRepo, _, messageRepo := newRoomService(t)
	ctx := context.Background()

	archived := &domain.Room{ID: roomID1, IsArchived: true}
	roomRepo.On("Archive", ctx, roomID1).Return(archived, nil).Once()
	messageRepo.On("ArchiveAll", ctx, repository.MessageFilter{RoomID: roomID1}).Return(int64(7), nil).Once()

	room, err := svc.ArchiveRoom(ctx, roomID1)

	require.NoError(t, err)
	assert.True(t, room.IsArchived)
	roomRepo.AssertNotCalled(t, "UpdateMembership", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	messageRepo.AssertExpectations(t)
}

func TestRoomService_ArchiveRoom_NotFound(t *testing.T) {
	svc, roomRepo, _, messageRepo := newRoomService(t)
	ctx := context.Background()

	roomRepo.On("Archive", ctx, roomID1).Return(nil, repository.ErrRoomNotFound).Once()

	_, err := svc.ArchiveRoom(ctx, roomID1)

	assert.True(t, errors.Is(err, service.ErrRoomNotFound))
	messageRepo.AssertNotCalled(t, "ArchiveAll", mock.Anything, mock.Anything)
}

func TestRoomService_DeleteRoom_CascadesToMessages(t *testing.T) {
	svc, roomRepo, _, messageRepo := newRoomService(t)
	ctx := context.Background()

	deleted := &domain.Room{ID: roomID1, Name: "general"}
	roomRepo.On("Delete", ctx, roomID1).Return(deleted, nil).Once()
	messageRepo.On("DeleteAll", ctx, repository.MessageFilter{RoomID: roomID1}).Return(int64(4), nil).Once()

	room, err := svc.DeleteRoom(ctx, roomID1)

	require.NoError(t, err)
	assert.Equal(t, roomID1, room.ID)
	messageRepo.AssertExpectations(t)
}

func TestRoomService_DeleteRoom_CascadeFailurePropagates(t *testing.T) {
	svc, roomRepo, _, messageRepo := newRoomService(t)
	ctx := context.Background()
	bang := errors.New("gorm: deadlock")

	roomRepo.On("Delete", ctx, roomID1).Return(&domain.Room{ID: roomID1}, nil).Once()
	messageRepo.On("DeleteAll", ctx, mock.Anything).Return(int64(0), bang).Once()

	_, err := svc.DeleteRoom(ctx, roomID1)

	assert.True(t, errors.Is(err, bang))
}

// --- 查询 ---

func TestRoomService_GetRoom_AttachesMostRecentMessage(t *testing.T) {
	svc, roomRepo, _, messageRepo := newRoomService(t)
	ctx := context.Background()

	room := &domain.Room{ID: roomID1, Name: "general"}
	latest := &domain.Message{ID: "m1", RoomID: roomID1, Text: "hello"}
	roomRepo.On("FindByID", ctx, roomID1).Return(room, nil).Once()
	messageRepo.On("FindMostRecent", ctx, roomID1).Return(latest, nil).Once()

	got, err := svc.GetRoom(ctx, roomID1)

	require.NoError(t, err)
	require.NotNil(t, got.MostRecentMessage)
	assert.Equal(t, "hello", got.MostRecentMessage.Text)
}

func TestRoomService_GetRooms_EmptyRoomHasNoMostRecentMessage(t *testing.T) {
	svc, roomRepo, _, messageRepo := newRoomService(t)
	ctx := context.Background()

	q := repository.RoomQuery{Limit: 10}
	roomRepo.On("FindAll", ctx, q).Return([]domain.Room{{ID: roomID1}}, nil).Once()
	messageRepo.On("FindMostRecent", ctx, roomID1).Return(nil, nil).Once()

	rooms, err := svc.GetRooms(ctx, q)

	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Nil(t, rooms[0].MostRecentMessage)
}
