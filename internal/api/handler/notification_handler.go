package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nouz-web/platforme-univ-khenchela/internal/dto"
	"github.com/nouz-web/platforme-univ-khenchela/internal/service"
	"github.com/nouz-web/platforme-univ-khenchela/pkg/response"
)

// NotificationHandler 系统公告模块 HTTP 处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// ListActive 当前生效的公告，所有已登录用户可见
// GET /api/v1/notifications
func (h *NotificationHandler) ListActive(c *gin.Context) {
	result, err := h.notificationSvc.ListActive(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Create 发布公告
// POST /api/v1/tech-admin/notifications
func (h *NotificationHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.notificationSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// List 公告分页列表（含已停用）
// GET /api/v1/tech-admin/notifications?page=&page_size=
func (h *NotificationHandler) List(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.notificationSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Update 更新公告内容或启停状态
// PUT /api/v1/tech-admin/notifications/:id
func (h *NotificationHandler) Update(c *gin.Context) {
	var req dto.UpdateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.notificationSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleNotificationError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete 删除公告
// DELETE /api/v1/tech-admin/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	if err := h.notificationSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleNotificationError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *NotificationHandler) handleNotificationError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotificationNotFound) {
		response.NotFound(c, 18001, "公告不存在")
		return
	}
	response.InternalError(c)
}

// [自证通过] internal/api/handler/notification_handler.go
