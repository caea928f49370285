package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求（管理员）
type CreateCourseRequest struct {
	Name      string  `json:"name"        binding:"required,min=2,max=200"`
	Type      string  `json:"type"        binding:"required,oneof=COUR TD TP"`
	TeacherID string  `json:"teacher_id"  binding:"required,max=20"`
	ProgramID *string `json:"program_id"  binding:"omitempty,uuid"`
	Semester  int     `json:"semester"    binding:"required,min=1,max=2"`
	YearLabel string  `json:"year_label"  binding:"required,max=20"`
	DayOfWeek *int    `json:"day_of_week" binding:"omitempty,min=1,max=7"`
	StartsAt  *string `json:"starts_at"   binding:"omitempty"`
	EndsAt    *string `json:"ends_at"     binding:"omitempty"`
	Room      *string `json:"room"        binding:"omitempty,max=50"`
}

// UpdateCourseRequest 更新课程请求（管理员）
type UpdateCourseRequest struct {
	Name      *string `json:"name"        binding:"omitempty,min=2,max=200"`
	Type      *string `json:"type"        binding:"omitempty,oneof=COUR TD TP"`
	TeacherID *string `json:"teacher_id"  binding:"omitempty,max=20"`
	ProgramID *string `json:"program_id"  binding:"omitempty,uuid"`
	Semester  *int    `json:"semester"    binding:"omitempty,min=1,max=2"`
	DayOfWeek *int    `json:"day_of_week" binding:"omitempty,min=1,max=7"`
	StartsAt  *string `json:"starts_at"   binding:"omitempty"`
	EndsAt    *string `json:"ends_at"     binding:"omitempty"`
	Room      *string `json:"room"        binding:"omitempty,max=50"`
}

// CourseBrief 课程简要信息（嵌在考勤/证明响应里）
type CourseBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// LessonResponse 学生课表条目
type LessonResponse struct {
	CourseID    string  `json:"course_id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	TeacherName string  `json:"teacher_name"`
	DayOfWeek   *int    `json:"day_of_week,omitempty"`
	StartsAt    *string `json:"starts_at,omitempty"`
	EndsAt      *string `json:"ends_at,omitempty"`
	Room        *string `json:"room,omitempty"`
}
