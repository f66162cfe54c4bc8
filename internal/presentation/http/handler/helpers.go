package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sokoni/depot-api/internal/domain/enum"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserName extracts the user name from the Gin context
func GetUserName(c *gin.Context) string {
	name, exists := c.Get("user_name")
	if !exists {
		return ""
	}
	return name.(string)
}

// IsAdmin checks if the authenticated user has the Admin role
func IsAdmin(c *gin.Context) bool {
	roleVal, exists := c.Get("user_role")
	if !exists {
		return false
	}
	role, ok := roleVal.(string)
	if !ok {
		return false
	}
	return enum.Role(role).IsAdmin()
}
