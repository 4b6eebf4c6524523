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

func newMessageService(t *testing.T) (*service.MessageService, *mocks.MessageRepository, *mocks.RoomRepository) {
	t.Helper()
	messageRepo := new(mocks.MessageRepository)
	roomRepo := new(mocks.RoomRepository)
	return service.NewMessageService(messageRepo, roomRepo), messageRepo, roomRepo
}

func roomWithMember(authorID string, active bool) *domain.Room {
	return &domain.Room{
		ID: roomID1,
		Members: []domain.RoomMember{
			{RoomID: roomID1, AuthorID: authorID, IsActive: active, Position: 0},
		},
	}
}

// --- CreateMessage ---

func TestMessageService_CreateMessage_Success(t *testing.T) {
	svc, messageRepo, roomRepo := newMessageService(t)
	ctx := context.Background()

	roomRepo.On("FindByID", ctx, roomID1).Return(roomWithMember(authorID1, true), nil).Once()
	messageRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.Message) bool {
		return m.RoomID == roomID1 && m.AuthorID == authorID1 && m.Text == "hello" && domain.ValidID(m.ID)
	})).Return(nil).Once()

	message, err := svc.CreateMessage(ctx, roomID1, authorID1, "hello")

	require.NoError(t, err)
	require.NotNil(t, message)
	assert.False(t, message.IsArchived)
	messageRepo.AssertExpectations(t)
}

func TestMessageService_CreateMessage_InactiveMemberAllowed(t *testing.T) {
	// 成员不活跃也允许发消息：只要求曾经在名单中
	svc, messageRepo, roomRepo := newMessageService(t)
	ctx := context.Background()

	roomRepo.On("FindByID", ctx, roomID1).Return(roomWithMember(authorID1, false), nil).Once()
	messageRepo.On("Create", ctx, mock.AnythingOfType("*domain.Message")).Return(nil).Once()

	_, err := svc.CreateMessage(ctx, roomID1, authorID1, "still here")

	require.NoError(t, err)
}

func TestMessageService_CreateMessage_MissingFields(t *testing.T) {
	svc, messageRepo, _ := newMessageService(t)

	_, err := svc.CreateMessage(context.Background(), "", "", "")

	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, map[string]string{
		"roomId":   service.CodeRequired,
		"authorId": service.CodeRequired,
		"text":     service.CodeRequired,
	}, ve.Fields)
	messageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMessageService_CreateMessage_UnknownRoom(t *testing.T) {
	svc, messageRepo, roomRepo := newMessageService(t)
	ctx := context.Background()

	roomRepo.On("FindByID", ctx, roomID1).Return(nil, repository.ErrRoomNotFound).Once()

	_, err := svc.CreateMessage(ctx, roomID1, authorID1, "hello")

	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, service.CodeInvalid, ve.Fields["roomId"])
	messageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMessageService_CreateMessage_AuthorNotMember(t *testing.T) {
	svc, messageRepo, roomRepo := newMessageService(t)
	ctx := context.Background()

	roomRepo.On("FindByID", ctx, roomID1).Return(roomWithMember(authorID2, true), nil).Once()

	_, err := svc.CreateMessage(ctx, roomID1, authorID1, "hello")

	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, service.CodeInvalid, ve.Fields["authorId"])
	messageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// --- UpdateMessage ---

func TestMessageService_UpdateMessage_Success(t *testing.T) {
	svc, messageRepo, _ := newMessageService(t)
	ctx := context.Background()

	updated := &domain.Message{ID: "m1", RoomID: roomID1, Text: "edited"}
	messageRepo.On("Update", ctx, "m1", "edited").Return(updated, nil).Once()

	message, err := svc.UpdateMessage(ctx, "m1", "edited")

	require.NoError(t, err)
	assert.Equal(t, "edited", message.Text)
}

func TestMessageService_UpdateMessage_MissingText(t *testing.T) {
	svc, messageRepo, _ := newMessageService(t)

	_, err := svc.UpdateMessage(context.Background(), "m1", "")

	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, service.CodeRequired, ve.Fields["text"])
	messageRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestMessageService_UpdateMessage_NotFound(t *testing.T) {
	svc, messageRepo, _ := newMessageService(t)
	ctx := context.Background()

	messageRepo.On("Update", ctx, "m1", "edited").Return(nil, repository.ErrMessageNotFound).Once()

	_, err := svc.UpdateMessage(ctx, "m1", "edited")

	assert.True(t, errors.Is(err, service.ErrMessageNotFound))
}

// --- ArchiveMessage / DeleteMessage ---

func TestMessageService_ArchiveMessage_NoCascade(t *testing.T) {
	// 单条消息归档不触发任何批量操作
	svc, messageRepo, roomRepo := newMessageService(t)
	ctx := context.Background()

	archived := &domain.Message{ID: "m1", IsArchived: true}
	messageRepo.On("Archive", ctx, "m1").Return(archived, nil).Once()

	message, err := svc.ArchiveMessage(ctx, "m1")

	require.NoError(t, err)
	assert.True(t, message.IsArchived)
	messageRepo.AssertNotCalled(t, "ArchiveAll", mock.Anything, mock.Anything)
	roomRepo.AssertNotCalled(t, "UpdateMembership", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMessageService_DeleteMessage_NotFound(t *testing.T) {
	svc, messageRepo, _ := newMessageService(t)
	ctx := context.Background()

	messageRepo.On("Delete", ctx, "m1").Return(nil, repository.ErrMessageNotFound).Once()

	_, err := svc.DeleteMessage(ctx, "m1")

	assert.True(t, errors.Is(err, service.ErrMessageNotFound))
}
