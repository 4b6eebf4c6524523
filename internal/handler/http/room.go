package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Derplicity/messaging-service/internal/events"
	"github.com/Derplicity/messaging-service/internal/notify"
	"github.com/Derplicity/messaging-service/internal/repository"
	"github.com/Derplicity/messaging-service/internal/service"
)

// RoomHandler 封装了 Room 相关的 HTTP 处理逻辑
type RoomHandler struct {
	roomService *service.RoomService
	notifier    *notify.Notifier
}

// NewRoomHandler 创建 RoomHandler 实例
func NewRoomHandler(roomService *service.RoomService, notifier *notify.Notifier) *RoomHandler {
	return &RoomHandler{roomService: roomService, notifier: notifier}
}

// RoomRequest 定义创建/更新 Room 的请求体，members 是 Author id 列表
type RoomRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// CreateRoom 处理创建新 Room 的请求
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateRoom: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), req.Name, req.Members)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	h.notifier.RoomCreated(room, nil)
	c.Header("Location", fmt.Sprintf("/api/v1/rooms/%s", room.ID))
	SuccessResponse(c, http.StatusCreated, gin.H{"room": room})
}

// GetRooms 处理 Room 列表查询
func (h *RoomHandler) GetRooms(c *gin.Context) {
	authorID := c.Query("authorId")
	onlyActive := queryBool(c, "onlyActive")
	// 按成员过滤时默认只看活跃的成员关系，除非显式传了 onlyActive=0
	if authorID != "" && c.Query("onlyActive") == "" {
		onlyActive = true
	}
	q := repository.RoomQuery{
		AuthorID:        authorID,
		OnlyActive:      onlyActive,
		IncludeArchived: queryBool(c, "includeArchived"),
		UpdatedBefore:   queryTime(c, "updatedBefore"),
		Limit:           queryLimit(c),
	}
	rooms, err := h.roomService.GetRooms(c.Request.Context(), q)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"rooms": rooms})
}

// GetRoom 处理单个 Room 查询
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.roomService.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"room": room})
}

// UpdateRoom 处理 Room 名称和名单更新
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateRoom: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	room, err := h.roomService.UpdateRoom(c.Request.Context(), c.Param("id"), req.Name, req.Members)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	h.notifier.RoomChanged(events.RoomUpdated, room, nil)
	SuccessResponse(c, http.StatusOK, gin.H{"room": room})
}

// ArchiveRoom 处理 Room 归档 (级联归档房间内消息)
func (h *RoomHandler) ArchiveRoom(c *gin.Context) {
	room, err := h.roomService.ArchiveRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	h.notifier.RoomChanged(events.RoomArchived, room, nil)
	SuccessResponse(c, http.StatusOK, gin.H{"room": room})
}

// DeleteRoom 处理 Room 删除 (级联删除房间内消息)
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	room, err := h.roomService.DeleteRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	h.notifier.RoomChanged(events.RoomDeleted, room, nil)
	SuccessResponse(c, http.StatusOK, gin.H{"room": room})
}
