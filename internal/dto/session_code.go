package dto

// ── 签到码模块 DTO ──

// IssueSessionCodeRequest 教师签发签到码请求
// course_id 必须是该教师名下的课程，服务端强制校验归属
type IssueSessionCodeRequest struct {
	CourseID    string `json:"course_id"    binding:"required,uuid"`
	SessionType string `json:"session_type" binding:"required,oneof=COUR TD TP"`
}

// SessionCodeResponse 签到码响应
// code 用于渲染二维码，image_url 指向 PNG 图片接口
type SessionCodeResponse struct {
	ID          string `json:"id"`
	CourseID    string `json:"course_id"`
	CourseName  string `json:"course_name"`
	SessionType string `json:"session_type"`
	Code        string `json:"code"`
	CreatedAt   string `json:"created_at"`
	ExpiresAt   string `json:"expires_at"`
	ExpiresIn   int    `json:"expires_in"` // 剩余有效秒数（前端倒计时初值）
	ImageURL    string `json:"image_url"`
}
