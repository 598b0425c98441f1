package model

import "github.com/golang-jwt/jwt/v5"

// StaffClaims are JWT claims for staff dashboard access
type StaffClaims struct {
	StaffID string `json:"staffId"`
	jwt.RegisteredClaims
}

// PatientClaims are JWT claims issued after phone OTP verification
type PatientClaims struct {
	PatientID   string `json:"patientId"`
	PhoneNumber string `json:"phoneNumber"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for staff login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after a successful login or OTP verification
type LoginResponse struct {
	Token     string `json:"token"`
	SubjectID string `json:"subjectId"`
}

// OTPRequest starts phone sign-in
type OTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// OTPResponse acknowledges an OTP request. Code is only set when echo is enabled.
type OTPResponse struct {
	Sent bool   `json:"sent"`
	Code string `json:"code,omitempty"`
}

// OTPVerifyRequest completes phone sign-in
type OTPVerifyRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Code        string `json:"code"`
}
