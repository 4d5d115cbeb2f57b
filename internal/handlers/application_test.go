package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/servicehub/marketplace-api/internal/constants"
	"github.com/servicehub/marketplace-api/internal/database"
	"github.com/servicehub/marketplace-api/internal/middleware"
	"github.com/servicehub/marketplace-api/internal/models"
	"github.com/servicehub/marketplace-api/internal/repository"
	"github.com/servicehub/marketplace-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ApplicationHandlerTestSuite runs the application routes through the full
// middleware chain, including the involved-party check.
type ApplicationHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	router  *gin.Engine
	service *services.ApplicationService

	owner     *models.User
	applicant *models.User
	task      *models.Task
}

// SetupTest runs before each test
func (suite *ApplicationHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskImage{},
		&models.Application{},
		&models.PayPalAccount{},
		&models.Payment{},
	)
	suite.Require().NoError(err)
	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	paymentService := services.NewPaymentService(repository.NewPaymentRepository(suite.db))
	suite.service = services.NewApplicationService(
		repository.NewApplicationRepository(suite.db),
		taskRepo,
		userRepo,
		paymentService,
	)
	handler := NewApplicationHandler(suite.service)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(headerIdentity())

	applications := suite.router.Group("/api/applications")
	{
		applications.POST("", handler.SubmitApplication)
		applications.GET("", handler.ListApplications)

		party := applications.Group("", middleware.RequireApplicationParty())
		{
			party.GET("/:id/task", handler.ResolveTask)
			party.POST("/:id/accept", handler.AcceptApplication)
			party.POST("/:id/reject", handler.RejectApplication)
		}
	}

	suite.owner = suite.createUser("owner@example.com", "Owner")
	suite.applicant = suite.createUser("applicant@example.com", "Applicant")

	taskService := services.NewTaskService(taskRepo)
	suite.task, err = taskService.CreateTask(services.CreateTaskInput{
		Title:       "Logo Design",
		Description: "Need a logo",
		Category:    "Grafikdesign",
		CreatorID:   &suite.owner.ID,
	})
	suite.Require().NoError(err)
}

// TearDownTest runs after each test
func (suite *ApplicationHandlerTestSuite) TearDownTest() {
	database.SetDB(nil)
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// headerIdentity stands in for the session middleware: it reads the user ID
// from a request header and stores it in the context the same way.
func headerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader("X-User-ID"); raw != "" {
			if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
				c.Set(constants.ContextKeyUserID, id)
			}
		}
		c.Next()
	}
}

func (suite *ApplicationHandlerTestSuite) createUser(email, name string) *models.User {
	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: "hashedpassword",
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *ApplicationHandlerTestSuite) request(method, url string, payload map[string]interface{}, userID *uint64) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		suite.Require().NoError(err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if userID != nil {
		req.Header.Set("X-User-ID", strconv.FormatUint(*userID, 10))
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ApplicationHandlerTestSuite) submit() *models.Application {
	application, err := suite.service.SubmitApplication(services.SubmitApplicationInput{
		TaskID:      suite.task.ID,
		Text:        "I am the right candidate",
		ApplicantID: &suite.applicant.ID,
	})
	suite.Require().NoError(err)
	return application
}

func (suite *ApplicationHandlerTestSuite) TestSubmitApplication_Success() {
	w := suite.request("POST", "/api/applications", map[string]interface{}{
		"task_id":          suite.task.ID,
		"application_text": "I am the right candidate",
		"proposed_price":   "150",
	}, &suite.applicant.ID)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "pending", response["status"])
	assert.Equal(suite.T(), "Logo Design", response["task_title"])
	assert.Equal(suite.T(), float64(suite.owner.ID), response["task_owner_id"])
	assert.Equal(suite.T(), "Applicant", response["applicant_name"])
}

func (suite *ApplicationHandlerTestSuite) TestSubmitApplication_Anonymous() {
	w := suite.request("POST", "/api/applications", map[string]interface{}{
		"task_id":          suite.task.ID,
		"application_text": "anonymous attempt",
	}, nil)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *ApplicationHandlerTestSuite) TestListApplications_ByRole() {
	suite.submit()

	w := suite.request("GET", "/api/applications?role=owner", nil, &suite.owner.ID)
	suite.Require().Equal(http.StatusOK, w.Code)

	var response map[string][]map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(suite.T(), response["applications"], 1)

	// Default role: applications the requester submitted.
	w = suite.request("GET", "/api/applications", nil, &suite.owner.ID)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(suite.T(), response["applications"])

	w = suite.request("GET", "/api/applications", nil, &suite.applicant.ID)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(suite.T(), response["applications"], 1)
}

func (suite *ApplicationHandlerTestSuite) TestAcceptApplication_AsOwner() {
	application := suite.submit()

	w := suite.request("POST", fmt.Sprintf("/api/applications/%d/accept", application.ID), nil, &suite.owner.ID)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "accepted", response["status"])
}

func (suite *ApplicationHandlerTestSuite) TestAcceptApplication_AsApplicant() {
	application := suite.submit()

	// The applicant is a party to the application but may not resolve it.
	w := suite.request("POST", fmt.Sprintf("/api/applications/%d/accept", application.ID), nil, &suite.applicant.ID)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *ApplicationHandlerTestSuite) TestAcceptApplication_Uninvolved() {
	application := suite.submit()
	stranger := suite.createUser("stranger@example.com", "Stranger")

	w := suite.request("POST", fmt.Sprintf("/api/applications/%d/accept", application.ID), nil, &stranger.ID)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *ApplicationHandlerTestSuite) TestRejectAfterAccept() {
	application := suite.submit()

	w := suite.request("POST", fmt.Sprintf("/api/applications/%d/accept", application.ID), nil, &suite.owner.ID)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request("POST", fmt.Sprintf("/api/applications/%d/reject", application.ID), nil, &suite.owner.ID)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "INVALID_STATE_TRANSITION", response["code"])
}

func (suite *ApplicationHandlerTestSuite) TestResolveTask_FollowsCurrentState() {
	application := suite.submit()

	suite.db.Model(&models.Task{}).Where("id = ?", suite.task.ID).Update("title", "Renamed")

	w := suite.request("GET", fmt.Sprintf("/api/applications/%d/task", application.ID), nil, &suite.applicant.ID)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Renamed", response["title"])
}

func (suite *ApplicationHandlerTestSuite) TestAcceptApplication_NotFound() {
	w := suite.request("POST", "/api/applications/9999/accept", nil, &suite.owner.ID)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestApplicationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ApplicationHandlerTestSuite))
}
