package dto

// ── 缺勤证明模块 DTO ──

// SubmitJustificationRequest 学生提交缺勤证明请求
// file_path 为已上传附件的存储路径（文件上传由前端网关处理）
type SubmitJustificationRequest struct {
	AttendanceID string `json:"attendance_id" binding:"required,uuid"`
	Reason       string `json:"reason"        binding:"required,min=2,max=500"`
	FilePath     string `json:"file_path"     binding:"omitempty,max=500"`
}

// ReviewJustificationRequest 教师审核缺勤证明请求
type ReviewJustificationRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// JustificationResponse 缺勤证明响应
type JustificationResponse struct {
	ID          string              `json:"id"`
	Student     *UserBrief          `json:"student,omitempty"`
	Attendance  *AttendanceResponse `json:"attendance,omitempty"`
	Course      *CourseBrief        `json:"course,omitempty"`
	Reason      string              `json:"reason"`
	FilePath    string              `json:"file_path,omitempty"`
	Status      string              `json:"status"`
	SubmittedAt string              `json:"submitted_at"`
	ReviewedBy  string              `json:"reviewed_by,omitempty"`
	ReviewedAt  string              `json:"reviewed_at,omitempty"`
}

// UserBrief 嵌入其它响应中的用户摘要
type UserBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
