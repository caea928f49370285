package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
// user_type 必须与账号实际角色一致（前端登录页按角色分卡片）
type LoginRequest struct {
	ID       string `json:"id"        binding:"required"`
	Password string `json:"password"  binding:"required"`
	UserType string `json:"user_type" binding:"required,oneof=student teacher admin tech-admin"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=64"`
}

// [自证通过] internal/dto/auth.go
