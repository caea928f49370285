package dto

// ── 通知公告模块 DTO ──

// CreateNotificationRequest 技术管理员发布公告请求
type CreateNotificationRequest struct {
	Title   string `json:"title"   binding:"required,min=1,max=200"`
	Message string `json:"message" binding:"required,min=1,max=2000"`
	Active  *bool  `json:"active"  binding:"omitempty"`
}

// UpdateNotificationRequest 更新公告请求，指针字段支持部分更新
type UpdateNotificationRequest struct {
	Title   *string `json:"title"   binding:"omitempty,min=1,max=200"`
	Message *string `json:"message" binding:"omitempty,min=1,max=2000"`
	Active  *bool   `json:"active"  binding:"omitempty"`
}

// NotificationResponse 公告响应
type NotificationResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Active    bool   `json:"active"`
	CreatedBy string `json:"created_by,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
