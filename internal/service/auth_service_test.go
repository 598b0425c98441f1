package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medfeedback/internal/config"
)

func newTestAuth(otp *fakeOTP, echo bool) *AuthService {
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		StaffUsername: "admin",
		StaffPassword: "pw",
		PatientTTL:    time.Hour,
		OTPTTL:        time.Minute,
		OTPEcho:       echo,
	}
	return NewAuthService(cfg, otp, zap.NewNop())
}

func TestStaffLogin(t *testing.T) {
	auth := newTestAuth(newFakeOTP(), false)

	for _, creds := range [][2]string{{"admin", "wrong"}, {"Admin", "pw"}, {"admin", "pw "}, {"", ""}} {
		_, err := auth.StaffLogin(creds[0], creds[1])
		assert.ErrorIs(t, err, ErrInvalidCredentials, "%q/%q", creds[0], creds[1])
	}

	resp, err := auth.StaffLogin("admin", "pw")
	require.NoError(t, err)

	claims, err := auth.ValidateStaffToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.SubjectID, claims.StaffID)

	_, err = auth.ValidatePatientToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestOTPFlow(t *testing.T) {
	otp := newFakeOTP()
	auth := newTestAuth(otp, true)
	ctx := context.Background()

	sent, err := auth.RequestOTP(ctx, "+255 712-345 678")
	require.NoError(t, err)
	assert.True(t, sent.Sent)
	require.Len(t, sent.Code, 4)
	assert.Equal(t, sent.Code, otp.codes["+255712345678"])

	_, err = auth.VerifyOTP(ctx, "+255712345678", "0000")
	assert.ErrorIs(t, err, ErrInvalidOTP)

	resp, err := auth.VerifyOTP(ctx, "+255 712 345 678", sent.Code)
	require.NoError(t, err)
	assert.Equal(t, PatientID("+255712345678"), resp.SubjectID)

	claims, err := auth.ValidatePatientToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "+255712345678", claims.PhoneNumber)

	_, err = auth.ValidateStaffToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// single use
	_, err = auth.VerifyOTP(ctx, "+255712345678", sent.Code)
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestRequestOTPWithoutEchoHidesCode(t *testing.T) {
	auth := newTestAuth(newFakeOTP(), false)
	sent, err := auth.RequestOTP(context.Background(), "0712345678")
	require.NoError(t, err)
	assert.Empty(t, sent.Code)
}

func TestRequestOTPStoreFailure(t *testing.T) {
	otp := newFakeOTP()
	otp.err = errBoom
	auth := newTestAuth(otp, false)

	_, err := auth.RequestOTP(context.Background(), "0712345678")
	assert.ErrorIs(t, err, errBoom)
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"0712345678", "0712345678", false},
		{" +1 (555) 010-9999 ", "+15550109999", false},
		{"12345", "", true},
		{"07123abc45", "", true},
		{"1+2345678", "", true},
		{"1234567890123456", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizePhone(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPhone)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPatientIDIsStable(t *testing.T) {
	assert.Equal(t, PatientID("0712345678"), PatientID("0712345678"))
	assert.NotEqual(t, PatientID("0712345678"), PatientID("0712345679"))
}

func TestValidateRejectsGarbage(t *testing.T) {
	auth := newTestAuth(newFakeOTP(), false)
	_, err := auth.ValidateStaffToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewAuthService(&config.Config{JWTSecret: "other", StaffUsername: "admin", StaffPassword: "pw"}, newFakeOTP(), zap.NewNop())
	resp, err := other.StaffLogin("admin", "pw")
	require.NoError(t, err)
	_, err = auth.ValidateStaffToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
