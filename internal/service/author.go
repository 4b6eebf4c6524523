package service

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Derplicity/messaging-service/internal/domain"
	"github.com/Derplicity/messaging-service/internal/repository"
)

// AuthorService 负责 Author 的业务逻辑，包括归档/删除时跨实体的级联。
type AuthorService struct {
	authorRepo  repository.AuthorRepository
	roomRepo    repository.RoomRepository
	messageRepo repository.MessageRepository
	locks       keyedLock
}

// NewAuthorService 创建 AuthorService 实例。
func NewAuthorService(authorRepo repository.AuthorRepository, roomRepo repository.RoomRepository, messageRepo repository.MessageRepository) *AuthorService {
	if authorRepo == nil {
		panic("AuthorRepository cannot be nil for AuthorService")
	}
	if roomRepo == nil {
		panic("RoomRepository cannot be nil for AuthorService")
	}
	if messageRepo == nil {
		panic("MessageRepository cannot be nil for AuthorService")
	}
	return &AuthorService{
		authorRepo:  authorRepo,
		roomRepo:    roomRepo,
		messageRepo: messageRepo,
	}
}

// CreateAuthor 创建一个新 Author。id 由客户端提供，必须是合法的 UUIDv4。
func (s *AuthorService) CreateAuthor(ctx context.Context, id, firstName, lastName string) (*domain.Author, error) {
	v := violations{}
	switch {
	case id == "":
		v.add("id", CodeRequired)
	case !domain.ValidID(id):
		v.add("id", CodeInvalid)
	}
	if firstName == "" {
		v.add("firstName", CodeRequired)
	}
	if lastName == "" {
		v.add("lastName", CodeRequired)
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	author := &domain.Author{ID: id, FirstName: firstName, LastName: lastName}
	if err := s.authorRepo.Create(ctx, author); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, &ValidationError{Fields: map[string]string{"id": CodeDuplicate}}
		}
		logrus.WithError(err).WithField("author_id", id).Error("Failed to save new author")
		return nil, err
	}

	logrus.WithField("author_id", author.ID).Info("Author created")
	return author, nil
}

// GetAuthors 按条件查询 Author 列表。
func (s *AuthorService) GetAuthors(ctx context.Context, q repository.AuthorQuery) ([]domain.Author, error) {
	return s.authorRepo.FindAll(ctx, q)
}

// GetAuthor 根据 id 查找 Author。
func (s *AuthorService) GetAuthor(ctx context.Context, id string) (*domain.Author, error) {
	author, err := s.authorRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAuthorNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}
	return author, nil
}

// UpdateAuthor 更新 Author 的姓名字段。
func (s *AuthorService) UpdateAuthor(ctx context.Context, id, firstName, lastName string) (*domain.Author, error) {
	v := violations{}
	if firstName == "" {
		v.add("firstName", CodeRequired)
	}
	if lastName == "" {
		v.add("lastName", CodeRequired)
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	author, err := s.authorRepo.Update(ctx, id, repository.AuthorPatch{FirstName: firstName, LastName: lastName})
	if err != nil {
		if errors.Is(err, repository.ErrAuthorNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}
	return author, nil
}

// AuthorRoomIDs 返回名单中包含该 Author 的全部房间 id (含已归档，不限数量)。
// 广播目标集使用。
func (s *AuthorService) AuthorRoomIDs(ctx context.Context, authorID string) ([]string, error) {
	rooms, err := s.roomRepo.FindByMember(ctx, authorID, false)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rooms))
	for _, room := range rooms {
		ids = append(ids, room.ID)
	}
	return ids, nil
}

// ArchiveAuthor 归档 Author 并执行级联：
// 先提交 Author 自身的状态变更，再批量归档其全部 Message，
// 最后对每个包含该成员的房间重算名单 (并发处理，无相互顺序保证)。
// 返回归档后的 Author 和级联前的关联房间 id 集合 (广播目标)。
// Author 不存在时不产生任何副作用。
func (s *AuthorService) ArchiveAuthor(ctx context.Context, id string) (*domain.Author, []string, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	logCtx := logrus.WithField("author_id", id)

	author, err := s.authorRepo.Archive(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAuthorNotFound) {
			return nil, nil, ErrAuthorNotFound
		}
		return nil, nil, err
	}

	// 级联前抓取关联房间：既是广播目标集，也是名单重算的输入
	rooms, err := s.roomRepo.FindByMember(ctx, id, false)
	if err != nil {
		logCtx.WithError(err).Error("Cascade failed: could not load rooms for archived author")
		return nil, nil, err
	}
	roomIDs := make([]string, 0, len(rooms))
	for _, room := range rooms {
		roomIDs = append(roomIDs, room.ID)
	}

	count, err := s.messageRepo.ArchiveAll(ctx, repository.MessageFilter{AuthorID: id})
	if err != nil {
		logCtx.WithError(err).Error("Cascade failed: could not archive author messages")
		return nil, nil, err
	}
	logCtx.WithField("archived_messages", count).Debug("Author messages archived")

	if err := s.archiveMemberships(ctx, rooms, id); err != nil {
		logCtx.WithError(err).Error("Cascade failed: could not update room memberships")
		return nil, nil, err
	}

	logCtx.Info("Author archived")
	return author, roomIDs, nil
}

// DeleteAuthor 删除 Author 并执行级联：
// 先删除 Author 记录，再批量删除其全部 Message，
// 最后把该成员从每个房间的名单中移除 (并发处理)。
// 返回被删除的 Author 和级联前的关联房间 id 集合。
func (s *AuthorService) DeleteAuthor(ctx context.Context, id string) (*domain.Author, []string, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	logCtx := logrus.WithField("author_id", id)

	// 级联前抓取关联房间：删除路径下房间可能随级联消失，必须先取
	rooms, err := s.roomRepo.FindByMember(ctx, id, false)
	if err != nil {
		return nil, nil, err
	}
	roomIDs := make([]string, 0, len(rooms))
	for _, room := range rooms {
		roomIDs = append(roomIDs, room.ID)
	}

	author, err := s.authorRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAuthorNotFound) {
			return nil, nil, ErrAuthorNotFound
		}
		return nil, nil, err
	}

	count, err := s.messageRepo.DeleteAll(ctx, repository.MessageFilter{AuthorID: id})
	if err != nil {
		logCtx.WithError(err).Error("Cascade failed: could not delete author messages")
		return nil, nil, err
	}
	logCtx.WithField("deleted_messages", count).Debug("Author messages deleted")

	if err := s.removeMemberships(ctx, rooms, id); err != nil {
		logCtx.WithError(err).Error("Cascade failed: could not remove room memberships")
		return nil, nil, err
	}

	logCtx.Info("Author deleted")
	return author, roomIDs, nil
}

// archiveMemberships 对每个房间执行归档路径的名单重算。
// 各房间并发处理，返回第一个错误。
func (s *AuthorService) archiveMemberships(ctx context.Context, rooms []domain.Room, authorID string) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, room := range rooms {
		wg.Add(1)
		go func(room domain.Room) {
			defer wg.Done()

			members, shouldArchive := ResolveMemberArchive(room.Members, authorID)
			// 已归档的房间保持归档；重算只可能把房间推向归档，不会解除
			archive := room.IsArchived || shouldArchive
			if err := s.roomRepo.UpdateMembership(ctx, room.ID, members, archive); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(room)
	}

	wg.Wait()
	return firstErr
}

// removeMemberships 对每个房间执行删除路径的名单重算。
// 活跃成员数降为 0 的房间被硬删除，否则只写入缩减后的名单。
func (s *AuthorService) removeMemberships(ctx context.Context, rooms []domain.Room, authorID string) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, room := range rooms {
		wg.Add(1)
		go func(room domain.Room) {
			defer wg.Done()

			members, shouldDelete := ResolveMemberRemoval(room.Members, authorID)

			var err error
			if shouldDelete {
				_, err = s.roomRepo.Delete(ctx, room.ID)
			} else {
				err = s.roomRepo.UpdateMembership(ctx, room.ID, members, room.IsArchived)
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(room)
	}

	wg.Wait()
	return firstErr
}
