package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/flo-mobility/admin-console/internal/api/dto"
	"github.com/flo-mobility/admin-console/internal/auth"
	"github.com/flo-mobility/admin-console/internal/service"
	apperrors "github.com/flo-mobility/admin-console/pkg/util/errorutil"
)

// AuthHandler exposes the operator login flow.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": res})
}

// VerifyOTP handles POST /api/auth/login/verify.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.auth.VerifyLoginOTP(c.UserContext(), req.Email, req.OTP)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": res})
}

// ForgotPassword handles POST /api/auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.auth.RequestPasswordReset(c.UserContext(), req.Email)
	if err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": res})
}

// VerifyForgotPassword handles POST /api/auth/forgot-password/verify.
func (h *AuthHandler) VerifyForgotPassword(c *fiber.Ctx) error {
	var req dto.VerifyForgotPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.auth.VerifyForgotPassword(c.UserContext(), req.Email, req.OTPHash)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": res})
}

// ChangePassword handles POST /api/auth/change-password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.auth.ChangePassword(c.UserContext(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": res})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator required")
	}
	if err := h.auth.Logout(c.UserContext(), principal); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator required")
	}
	return c.JSON(fiber.Map{"data": principal})
}
