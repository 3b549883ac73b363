package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Content errors
	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrRevisionNotFound = errors.New("revision not found")
	ErrServiceNotFound  = errors.New("service not found")
	ErrCommentsDisabled = errors.New("comments are disabled for this post")

	// Engagement errors
	ErrAlreadyExists = errors.New("record already exists")
	ErrLinkExpired   = errors.New("share link expired or exhausted")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
