package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"medfeedback/internal/cache"
	"medfeedback/internal/config"
	"medfeedback/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidPhone       = errors.New("invalid phone number")
	ErrInvalidOTP         = errors.New("invalid or expired code")
)

// patientNamespace derives stable patient IDs from phone numbers
var patientNamespace = uuid.MustParse("6f1c3a52-8d0e-4b7a-9c55-2f4e1d7a9b10")

// AuthService handles staff login, phone OTP sign-in and JWTs
type AuthService struct {
	staffUsername string
	staffPassword string
	jwtSecret     []byte
	patientTTL    time.Duration
	otpTTL        time.Duration
	otpEcho       bool
	otp           cache.OTPCache
	logger        *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(cfg *config.Config, otp cache.OTPCache, logger *zap.Logger) *AuthService {
	return &AuthService{
		staffUsername: cfg.StaffUsername,
		staffPassword: cfg.StaffPassword,
		jwtSecret:     []byte(cfg.JWTSecret),
		patientTTL:    cfg.PatientTTL,
		otpTTL:        cfg.OTPTTL,
		otpEcho:       cfg.OTPEcho,
		otp:           otp,
		logger:        logger,
	}
}

// StaffLogin validates credentials and returns a staff token
func (s *AuthService) StaffLogin(username, password string) (*model.LoginResponse, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.staffUsername))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.staffPassword))
	if userOK&passOK != 1 {
		return nil, ErrInvalidCredentials
	}

	staffID := "staff_" + uuid.New().String()[:8]
	claims := &model.StaffClaims{
		StaffID: staffID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
		},
	}

	token, err := s.sign(claims)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: token, SubjectID: staffID}, nil
}

// RequestOTP issues a 4-digit code for the phone number
func (s *AuthService) RequestOTP(ctx context.Context, phone string) (*model.OTPResponse, error) {
	phone, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	code, err := newOTPCode()
	if err != nil {
		return nil, err
	}
	if err := s.otp.Set(ctx, phone, code, s.otpTTL); err != nil {
		return nil, fmt.Errorf("store otp: %w", err)
	}
	s.logger.Info("otp issued", zap.String("phone", maskPhone(phone)), zap.Duration("ttl", s.otpTTL))

	resp := &model.OTPResponse{Sent: true}
	if s.otpEcho {
		resp.Code = code
	}
	return resp, nil
}

// VerifyOTP consumes a code and returns a patient token. The patient ID is
// derived from the phone number so history survives new sign-ins.
func (s *AuthService) VerifyOTP(ctx context.Context, phone, code string) (*model.LoginResponse, error) {
	phone, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	ok, err := s.otp.Consume(ctx, phone, strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("consume otp: %w", err)
	}
	if !ok {
		s.logger.Info("otp rejected", zap.String("phone", maskPhone(phone)))
		return nil, ErrInvalidOTP
	}

	patientID := PatientID(phone)
	claims := &model.PatientClaims{
		PatientID:   patientID,
		PhoneNumber: phone,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.patientTTL)),
		},
	}
	token, err := s.sign(claims)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: token, SubjectID: patientID}, nil
}

// ValidateStaffToken validates a staff JWT and returns claims
func (s *AuthService) ValidateStaffToken(tokenString string) (*model.StaffClaims, error) {
	claims := &model.StaffClaims{}
	if err := s.parse(tokenString, claims); err != nil || claims.StaffID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidatePatientToken validates a patient JWT and returns claims
func (s *AuthService) ValidatePatientToken(tokenString string) (*model.PatientClaims, error) {
	claims := &model.PatientClaims{}
	if err := s.parse(tokenString, claims); err != nil || claims.PatientID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *AuthService) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return err
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// PatientID returns the stable patient ID for a normalized phone number
func PatientID(phone string) string {
	return uuid.NewSHA1(patientNamespace, []byte(phone)).String()
}

// NormalizePhone strips spaces, dashes and parentheses and checks that
// 7 to 15 digits remain, optionally after a leading "+".
func NormalizePhone(phone string) (string, error) {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return "", ErrInvalidPhone
		}
	}
	out := b.String()
	digits := len(strings.TrimPrefix(out, "+"))
	if digits < 7 || digits > 15 {
		return "", ErrInvalidPhone
	}
	return out, nil
}

func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

func newOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}
