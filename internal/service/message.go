package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Derplicity/messaging-service/internal/domain"
	"github.com/Derplicity/messaging-service/internal/repository"
)

// MessageService 负责 Message 的业务逻辑。Message 是叶子实体，没有级联。
type MessageService struct {
	messageRepo repository.MessageRepository
	roomRepo    repository.RoomRepository
}

// NewMessageService 创建 MessageService 实例。
func NewMessageService(messageRepo repository.MessageRepository, roomRepo repository.RoomRepository) *MessageService {
	if messageRepo == nil {
		panic("MessageRepository cannot be nil for MessageService")
	}
	if roomRepo == nil {
		panic("RoomRepository cannot be nil for MessageService")
	}
	return &MessageService{
		messageRepo: messageRepo,
		roomRepo:    roomRepo,
	}
}

// CreateMessage 创建一条新 Message。roomId 必须指向存在的 Room，
// authorId 必须在该 Room 的名单中 (活跃与否不限)。
func (s *MessageService) CreateMessage(ctx context.Context, roomID, authorID, text string) (*domain.Message, error) {
	v := violations{}
	switch {
	case roomID == "":
		v.add("roomId", CodeRequired)
	case !domain.ValidID(roomID):
		v.add("roomId", CodeInvalid)
	}
	switch {
	case authorID == "":
		v.add("authorId", CodeRequired)
	case !domain.ValidID(authorID):
		v.add("authorId", CodeInvalid)
	}
	if text == "" {
		v.add("text", CodeRequired)
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, &ValidationError{Fields: map[string]string{"roomId": CodeInvalid}}
		}
		return nil, err
	}
	if !room.HasMember(authorID) {
		return nil, &ValidationError{Fields: map[string]string{"authorId": CodeInvalid}}
	}

	message := &domain.Message{
		ID:       domain.NewID(),
		RoomID:   roomID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"room_id":   roomID,
			"author_id": authorID,
		}).Error("Failed to save new message")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"message_id": message.ID,
		"room_id":    roomID,
	}).Info("Message created")
	return message, nil
}

// GetMessages 按条件查询 Message 列表。
func (s *MessageService) GetMessages(ctx context.Context, q repository.MessageQuery) ([]domain.Message, error) {
	return s.messageRepo.FindAll(ctx, q)
}

// GetMessage 根据 id 查找 Message。
func (s *MessageService) GetMessage(ctx context.Context, id string) (*domain.Message, error) {
	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return message, nil
}

// UpdateMessage 更新 Message 的文本。
func (s *MessageService) UpdateMessage(ctx context.Context, id, text string) (*domain.Message, error) {
	v := violations{}
	if text == "" {
		v.add("text", CodeRequired)
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	message, err := s.messageRepo.Update(ctx, id, text)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return message, nil
}

// ArchiveMessage 归档单条 Message，无级联。
func (s *MessageService) ArchiveMessage(ctx context.Context, id string) (*domain.Message, error) {
	message, err := s.messageRepo.Archive(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return message, nil
}

// DeleteMessage 删除单条 Message，无级联。
func (s *MessageService) DeleteMessage(ctx context.Context, id string) (*domain.Message, error) {
	message, err := s.messageRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return message, nil
}
