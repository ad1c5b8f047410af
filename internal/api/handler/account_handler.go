package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tasko-app/tasko-api/internal/api/metrics"
	"github.com/tasko-app/tasko-api/internal/api/middleware"
	"github.com/tasko-app/tasko-api/internal/core/domain"
	"github.com/tasko-app/tasko-api/internal/core/ports"
)

// AccountHandler exposes the identity workflows: signup by OTP, direct
// signup, login/logout, session introspection, and password reset by OTP.
type AccountHandler struct {
	service    ports.AccountService
	sessionTTL time.Duration
}

func NewAccountHandler(service ports.AccountService, sessionTTL time.Duration) *AccountHandler {
	return &AccountHandler{service: service, sessionTTL: sessionTTL}
}

// SendOTP handles POST /auth/send-otp. Starts (or restarts) a signup.
func (h *AccountHandler) SendOTP(c echo.Context) error {
	var req sendOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.service.StartSignup(c.Request().Context(), ports.StartSignupInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}

	metrics.OTPIssuedTotal.WithLabelValues("signup").Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: "OTP sent successfully",
		Email:   req.Email,
	})
}

// VerifyOTP handles POST /auth/verify-otp.
func (h *AccountHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.VerifySignupOTP(c.Request().Context(), req.Email, req.OTP); err != nil {
		metrics.OTPVerifiedTotal.WithLabelValues("signup", verifyResult(err)).Inc()
		return err
	}

	metrics.OTPVerifiedTotal.WithLabelValues("signup", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: "OTP verified successfully",
		Email:   req.Email,
	})
}

// ResendOTP handles POST /auth/resend-otp.
func (h *AccountHandler) ResendOTP(c echo.Context) error {
	var req resendOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.ResendSignupOTP(c.Request().Context(), req.Email); err != nil {
		return err
	}

	metrics.OTPIssuedTotal.WithLabelValues("signup").Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: "OTP resent successfully",
	})
}

// CompleteSignup handles POST /auth/complete-signup. Creates the account
// and logs the user in.
func (h *AccountHandler) CompleteSignup(c echo.Context) error {
	var req completeSignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.CompleteSignup(c.Request().Context(), ports.CompleteSignupInput{
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}

	metrics.SignupsCompletedTotal.Inc()
	h.setSessionCookie(c, result.Token)
	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: "Account created successfully",
		User:    toUserPayload(result.User, false),
	})
}

// Signup handles POST /auth/signup, the direct path without OTP.
func (h *AccountHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.Signup(c.Request().Context(), ports.SignupInput{
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}

	metrics.SignupsCompletedTotal.Inc()
	h.setSessionCookie(c, result.Token)
	return c.JSON(http.StatusCreated, authResponse{
		Success: true,
		Message: "Account created successfully",
		User:    toUserPayload(result.User, false),
	})
}

// Login handles POST /auth/login.
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	h.setSessionCookie(c, result.Token)
	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: "Logged in successfully",
		User:    toUserPayload(result.User, false),
	})
}

// Logout handles POST /auth/logout.
func (h *AccountHandler) Logout(c echo.Context) error {
	if err := h.service.Logout(c.Request().Context(), sessionToken(c)); err != nil {
		return err
	}

	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}

// CheckSession handles GET /auth/check-session.
func (h *AccountHandler) CheckSession(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, sessionResponse{Authenticated: false})
	}

	payload := userPayload{ID: user.ID, Email: user.Email}
	return c.JSON(http.StatusOK, sessionResponse{Authenticated: true, User: &payload})
}

// Me handles GET /user/me.
func (h *AccountHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	payload := toUserPayload(user, true)
	return c.JSON(http.StatusOK, sessionResponse{Authenticated: true, User: &payload})
}

// ForgotPassword handles POST /auth/forgot-password/send-otp.
func (h *AccountHandler) ForgotPassword(c echo.Context) error {
	var req resendOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.StartPasswordReset(c.Request().Context(), req.Email); err != nil {
		return err
	}

	metrics.OTPIssuedTotal.WithLabelValues("password_reset").Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: "Reset code sent successfully",
		Email:   req.Email,
	})
}

// VerifyResetOTP handles POST /auth/forgot-password/verify-otp.
func (h *AccountHandler) VerifyResetOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.VerifyResetOTP(c.Request().Context(), req.Email, req.OTP); err != nil {
		metrics.OTPVerifiedTotal.WithLabelValues("password_reset", verifyResult(err)).Inc()
		return err
	}

	metrics.OTPVerifiedTotal.WithLabelValues("password_reset", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: "Code verified successfully",
		Email:   req.Email,
	})
}

// ResendResetOTP handles POST /auth/forgot-password/resend-otp.
func (h *AccountHandler) ResendResetOTP(c echo.Context) error {
	var req resendOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.ResendResetOTP(c.Request().Context(), req.Email); err != nil {
		return err
	}

	metrics.OTPIssuedTotal.WithLabelValues("password_reset").Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: "New code sent successfully",
	})
}

// ResetPassword handles POST /auth/reset-password.
func (h *AccountHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.ResetPassword(c.Request().Context(), req.Email, req.Password, req.ConfirmPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: "Password reset successfully",
	})
}

func (h *AccountHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AccountHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func verifyResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrCodeExpired):
		return "expired"
	case errors.Is(err, domain.ErrInvalidCode):
		return "invalid"
	default:
		return "error"
	}
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountDisabled):
		return "disabled"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	default:
		return "error"
	}
}
