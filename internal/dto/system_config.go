package dto

// ── 系统配置模块 DTO ──

// UpdateSystemConfigRequest 更新系统配置请求，指针字段支持部分更新
type UpdateSystemConfigRequest struct {
	CodeValidityMinutes       *int    `json:"code_validity_minutes"        binding:"omitempty,min=1,max=120"`
	JustificationDeadlineDays *int    `json:"justification_deadline_days"  binding:"omitempty,min=1,max=60"`
	AcademicYearLabel         *string `json:"academic_year_label"          binding:"omitempty,max=20"`
}

// SystemConfigResponse 系统配置响应
type SystemConfigResponse struct {
	CodeValidityMinutes       int    `json:"code_validity_minutes"`
	JustificationDeadlineDays int    `json:"justification_deadline_days"`
	AcademicYearLabel         string `json:"academic_year_label"`
	UpdatedAt                 string `json:"updated_at"`
}
