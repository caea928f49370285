package dto

// ── 专业模块 DTO（管理员） ──

// CreateProgramRequest 创建专业请求
type CreateProgramRequest struct {
	Name      string `json:"name"       binding:"required,min=2,max=100"`
	YearLabel string `json:"year_label" binding:"required,max=20"`
}

// UpdateProgramRequest 更新专业请求
type UpdateProgramRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=2,max=100"`
	YearLabel *string `json:"year_label" binding:"omitempty,max=20"`
	IsActive  *bool   `json:"is_active"`
}
