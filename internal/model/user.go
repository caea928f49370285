package model

// ── 用户角色 ──

const (
	RoleStudent   = "student"
	RoleTeacher   = "teacher"
	RoleAdmin     = "admin"
	RoleTechAdmin = "tech-admin"
)

// User 用户表 — 对应 users
// 主键为学号/工号（如 S12345、T12345、2020234049140），四种角色共用同一张表与同一套凭证校验
type User struct {
	UserID       string  `gorm:"type:varchar(20);primaryKey"         json:"user_id"`
	Name         string  `gorm:"type:varchar(100);not null"          json:"name"`
	PasswordHash string  `gorm:"type:varchar(255);not null"          json:"-"`
	Role         string  `gorm:"type:varchar(20);not null"           json:"role"`
	ProgramID    *string `gorm:"type:uuid"                           json:"program_id,omitempty"` // 仅学生归属专业
	VersionedModel

	// 关联
	Program *Program `gorm:"foreignKey:ProgramID;references:ProgramID" json:"program,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
