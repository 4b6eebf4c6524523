package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Derplicity/messaging-service/internal/domain"
	"github.com/Derplicity/messaging-service/internal/repository"
)

// RoomService 负责 Room 的业务逻辑：名单校验、归档/删除级联和最近消息补全。
type RoomService struct {
	roomRepo    repository.RoomRepository
	authorRepo  repository.AuthorRepository
	messageRepo repository.MessageRepository
	locks       keyedLock
}

// NewRoomService 创建 RoomService 实例。
func NewRoomService(roomRepo repository.RoomRepository, authorRepo repository.AuthorRepository, messageRepo repository.MessageRepository) *RoomService {
	if roomRepo == nil {
		panic("RoomRepository cannot be nil for RoomService")
	}
	if authorRepo == nil {
		panic("AuthorRepository cannot be nil for RoomService")
	}
	if messageRepo == nil {
		panic("MessageRepository cannot be nil for RoomService")
	}
	return &RoomService{
		roomRepo:    roomRepo,
		authorRepo:  authorRepo,
		messageRepo: messageRepo,
	}
}

// CreateRoom 创建一个新 Room。名单可以为空；初始成员全部活跃。
func (s *RoomService) CreateRoom(ctx context.Context, name string, memberIDs []string) (*domain.Room, error) {
	v := violations{}
	if name == "" {
		v.add("name", CodeRequired)
	}
	s.validateMembers(ctx, memberIDs, &v)
	if err := v.err(); err != nil {
		return nil, err
	}

	members := make([]domain.RoomMember, 0, len(memberIDs))
	for i, authorID := range memberIDs {
		members = append(members, domain.RoomMember{
			AuthorID: authorID,
			IsActive: true,
			Position: i,
		})
	}

	room := &domain.Room{
		ID:      domain.NewID(),
		Name:    name,
		Members: members,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		logrus.WithError(err).WithField("room_name", name).Error("Failed to save new room")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"room_id": room.ID,
		"members": len(room.Members),
	}).Info("Room created")
	return room, nil
}

// GetRooms 按条件查询 Room 列表，并为每个房间补全最近一条消息。
func (s *RoomService) GetRooms(ctx context.Context, q repository.RoomQuery) ([]domain.Room, error) {
	rooms, err := s.roomRepo.FindAll(ctx, q)
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		msg, err := s.messageRepo.FindMostRecent(ctx, rooms[i].ID)
		if err != nil {
			return nil, fmt.Errorf("load most recent message for room %s: %w", rooms[i].ID, err)
		}
		rooms[i].MostRecentMessage = msg
	}
	return rooms, nil
}

// GetRoom 根据 id 查找 Room，附带最近一条消息。
func (s *RoomService) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	msg, err := s.messageRepo.FindMostRecent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load most recent message for room %s: %w", id, err)
	}
	room.MostRecentMessage = msg
	return room, nil
}

// UpdateRoom 更新 Room 的名称和名单。留在名单中的成员保持原有活跃状态，
// 新成员默认活跃。
func (s *RoomService) UpdateRoom(ctx context.Context, id, name string, memberIDs []string) (*domain.Room, error) {
	v := violations{}
	if name == "" {
		v.add("name", CodeRequired)
	}
	s.validateMembers(ctx, memberIDs, &v)
	if err := v.err(); err != nil {
		return nil, err
	}

	current, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	active := make(map[string]bool, len(current.Members))
	for _, m := range current.Members {
		active[m.AuthorID] = m.IsActive
	}
	members := make([]domain.RoomMember, 0, len(memberIDs))
	for i, authorID := range memberIDs {
		isActive, existed := active[authorID]
		members = append(members, domain.RoomMember{
			AuthorID: authorID,
			IsActive: isActive || !existed,
			Position: i,
		})
	}

	room, err := s.roomRepo.Update(ctx, id, name, members)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// ArchiveRoom 归档 Room 并级联归档其全部 Message。名单不受影响。
func (s *RoomService) ArchiveRoom(ctx context.Context, id string) (*domain.Room, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	room, err := s.roomRepo.Archive(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	count, err := s.messageRepo.ArchiveAll(ctx, repository.MessageFilter{RoomID: id})
	if err != nil {
		logrus.WithError(err).WithField("room_id", id).Error("Cascade failed: could not archive room messages")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"room_id":           id,
		"archived_messages": count,
	}).Info("Room archived")
	return room, nil
}

// DeleteRoom 删除 Room 并级联删除其全部 Message。
func (s *RoomService) DeleteRoom(ctx context.Context, id string) (*domain.Room, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	room, err := s.roomRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	count, err := s.messageRepo.DeleteAll(ctx, repository.MessageFilter{RoomID: id})
	if err != nil {
		logrus.WithError(err).WithField("room_id", id).Error("Cascade failed: could not delete room messages")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"room_id":          id,
		"deleted_messages": count,
	}).Info("Room deleted")
	return room, nil
}

// validateMembers 校验成员 id 列表：逐项检查格式、重复和 Author 是否存在。
func (s *RoomService) validateMembers(ctx context.Context, memberIDs []string, v *violations) {
	seen := make(map[string]bool, len(memberIDs))
	for i, authorID := range memberIDs {
		switch {
		case authorID == "":
			v.addIndexed("members", i, "", CodeRequired)
			continue
		case !domain.ValidID(authorID):
			v.addIndexed("members", i, "", CodeInvalid)
			continue
		}
		if seen[authorID] {
			v.addIndexed("members", i, "", CodeDuplicate)
			continue
		}
		seen[authorID] = true

		if _, err := s.authorRepo.FindByID(ctx, authorID); err != nil {
			if errors.Is(err, repository.ErrAuthorNotFound) {
				v.addIndexed("members", i, "", CodeInvalid)
				continue
			}
			logrus.WithError(err).WithField("author_id", authorID).Warn("Member validation lookup failed")
			v.addIndexed("members", i, "", CodeInvalid)
		}
	}
}
