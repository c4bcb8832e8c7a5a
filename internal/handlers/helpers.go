package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "lifeos/internal/errors"
	"lifeos/internal/middleware"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return 0, apperrors.ErrUnauthorized
	}
	id, ok := userID.(uint)
	if !ok {
		return 0, apperrors.ErrUnauthorized
	}
	return id, nil
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// ownPathUser parses a user id path parameter and checks that it names the
// authenticated user. Data is only ever served to its owner.
func ownPathUser(c *gin.Context, param string) (uint, error) {
	userID, err := getUserID(c)
	if err != nil {
		return 0, err
	}
	pathID, err := parsePathID(c, param)
	if err != nil {
		return 0, err
	}
	if pathID != userID {
		return 0, apperrors.ErrForbidden
	}
	return userID, nil
}

// ownBodyUser checks that a user_id sent in a request body names the
// authenticated user.
func ownBodyUser(c *gin.Context, bodyUserID uint) (uint, error) {
	userID, err := getUserID(c)
	if err != nil {
		return 0, err
	}
	if bodyUserID != userID {
		return 0, apperrors.ErrForbidden
	}
	return userID, nil
}

// bindError converts a binding failure into INVALID_INPUT.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}
