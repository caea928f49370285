package dto

// ── 用户模块 DTO（技术管理员账号管理） ──

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	Role    string `form:"role"    binding:"omitempty,oneof=student teacher admin tech-admin"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// CreateUserRequest 创建账号请求
type CreateUserRequest struct {
	ID        string  `json:"id"         binding:"required,max=20"`
	Name      string  `json:"name"       binding:"required,min=2,max=100"`
	Password  string  `json:"password"   binding:"required,min=8,max=64"`
	Role      string  `json:"role"       binding:"required,oneof=student teacher admin tech-admin"`
	ProgramID *string `json:"program_id" binding:"omitempty,uuid"`
}

// UpdateUserRequest 更新账号请求
type UpdateUserRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=2,max=100"`
	ProgramID *string `json:"program_id" binding:"omitempty,uuid"`
}

// ResetPasswordResponse 重置密码响应
type ResetPasswordResponse struct {
	TempPassword string `json:"temp_password"`
}
