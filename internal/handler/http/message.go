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

// MessageHandler 封装了 Message 相关的 HTTP 处理逻辑
type MessageHandler struct {
	messageService *service.MessageService
	notifier       *notify.Notifier
}

// NewMessageHandler 创建 MessageHandler 实例
func NewMessageHandler(messageService *service.MessageService, notifier *notify.Notifier) *MessageHandler {
	return &MessageHandler{messageService: messageService, notifier: notifier}
}

// MessageRequest 定义创建/更新 Message 的请求体
type MessageRequest struct {
	RoomID   string `json:"roomId"`
	AuthorID string `json:"authorId"`
	Text     string `json:"text"`
}

// CreateMessage 处理创建新 Message 的请求
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateMessage: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	message, err := h.messageService.CreateMessage(c.Request.Context(), req.RoomID, req.AuthorID, req.Text)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	h.notifier.MessageCreated(c.Request.Context(), message, nil)
	c.Header("Location", fmt.Sprintf("/api/v1/messages/%s", message.ID))
	SuccessResponse(c, http.StatusCreated, gin.H{"message": message})
}

// GetMessages 处理 Message 列表查询
func (h *MessageHandler) GetMessages(c *gin.Context) {
	q := repository.MessageQuery{
		RoomID:          c.Query("roomId"),
		AuthorID:        c.Query("authorId"),
		IncludeArchived: queryBool(c, "includeArchived"),
		CreatedBefore:   queryTime(c, "createdBefore"),
		Limit:           queryLimit(c),
	}
	messages, err := h.messageService.GetMessages(c.Request.Context(), q)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"messages": messages})
}

// GetMessage 处理单个 Message 查询
func (h *MessageHandler) GetMessage(c *gin.Context) {
	message, err := h.messageService.GetMessage(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"message": message})
}

// UpdateMessage 处理 Message 文本更新
func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateMessage: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	message, err := h.messageService.UpdateMessage(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	h.notifier.MessageChanged(events.MessageUpdated, message, nil)
	SuccessResponse(c, http.StatusOK, gin.H{"message": message})
}

// ArchiveMessage 处理单条 Message 归档
func (h *MessageHandler) ArchiveMessage(c *gin.Context) {
	message, err := h.messageService.ArchiveMessage(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	h.notifier.MessageChanged(events.MessageArchived, message, nil)
	SuccessResponse(c, http.StatusOK, gin.H{"message": message})
}

// DeleteMessage 处理单条 Message 删除
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	message, err := h.messageService.DeleteMessage(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	h.notifier.MessageChanged(events.MessageDeleted, message, nil)
	SuccessResponse(c, http.StatusOK, gin.H{"message": message})
}
