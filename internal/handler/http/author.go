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

// AuthorHandler 封装了 Author 相关的 HTTP 处理逻辑
type AuthorHandler struct {
	authorService *service.AuthorService
	notifier      *notify.Notifier
}

// NewAuthorHandler 创建 AuthorHandler 实例
func NewAuthorHandler(authorService *service.AuthorService, notifier *notify.Notifier) *AuthorHandler {
	return &AuthorHandler{authorService: authorService, notifier: notifier}
}

// AuthorRequest 定义创建/更新 Author 的请求体
type AuthorRequest struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// CreateAuthor 处理创建新 Author 的请求
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateAuthor: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	author, err := h.authorService.CreateAuthor(c.Request.Context(), req.ID, req.FirstName, req.LastName)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	// 新 Author 尚不属于任何房间，没有广播目标
	c.Header("Location", fmt.Sprintf("/api/v1/authors/%s", author.ID))
	SuccessResponse(c, http.StatusCreated, gin.H{"author": author})
}

// GetAuthors 处理 Author 列表查询
func (h *AuthorHandler) GetAuthors(c *gin.Context) {
	q := repository.AuthorQuery{
		IncludeArchived: queryBool(c, "includeArchived"),
		CreatedBefore:   queryTime(c, "createdBefore"),
		Limit:           queryLimit(c),
	}
	authors, err := h.authorService.GetAuthors(c.Request.Context(), q)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"authors": authors})
}

// GetAuthor 处理单个 Author 查询
func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	author, err := h.authorService.GetAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"author": author})
}

// UpdateAuthor 处理 Author 姓名更新
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	var req AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateAuthor: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	author, err := h.authorService.UpdateAuthor(c.Request.Context(), c.Param("id"), req.FirstName, req.LastName)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	h.notifier.AuthorUpdated(c.Request.Context(), author, nil)
	SuccessResponse(c, http.StatusOK, gin.H{"author": author})
}

// ArchiveAuthor 处理 Author 归档 (级联归档其消息并更新房间名单)
func (h *AuthorHandler) ArchiveAuthor(c *gin.Context) {
	author, roomIDs, err := h.authorService.ArchiveAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	h.notifier.AuthorChanged(events.AuthorArchived, author, roomIDs, nil)
	SuccessResponse(c, http.StatusOK, gin.H{"author": author})
}

// DeleteAuthor 处理 Author 删除 (级联删除其消息并收缩房间名单)
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	author, roomIDs, err := h.authorService.DeleteAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	h.notifier.AuthorChanged(events.AuthorDeleted, author, roomIDs, nil)
	SuccessResponse(c, http.StatusOK, gin.H{"author": author})
}
