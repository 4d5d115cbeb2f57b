package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/servicehub/marketplace-api/internal/database"
	apierrors "github.com/servicehub/marketplace-api/internal/errors"
	"github.com/servicehub/marketplace-api/internal/models"
	"gorm.io/gorm"
)

// ContextKeyApplication is the gin context key for the preloaded application.
const ContextKeyApplication = "application"

// RequireApplicationParty loads the application from the :id param and
// verifies the requester is involved in it (task owner or applicant).
// Handlers behind it read the record from the context.
func RequireApplicationParty() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		applicationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid application ID")
			c.Abort()
			return
		}

		var application models.Application
		if err := database.GetDB().First(&application, applicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.NotFound(c, "Application not found")
			} else {
				apierrors.StorageFailure(c, "")
			}
			c.Abort()
			return
		}

		isOwner := application.TaskOwnerID != nil && *application.TaskOwnerID == userID
		if !isOwner && application.ApplicantID != userID {
			apierrors.Forbidden(c, "You are not involved in this application")
			c.Abort()
			return
		}

		c.Set(ContextKeyApplication, application)
		c.Next()
	}
}

// GetApplication retrieves the preloaded application from context
func GetApplication(c *gin.Context) (models.Application, bool) {
	value, exists := c.Get(ContextKeyApplication)
	if !exists {
		return models.Application{}, false
	}
	application, ok := value.(models.Application)
	return application, ok
}
