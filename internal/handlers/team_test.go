package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tmihalic/workboard-api/internal/constants"
	"github.com/tmihalic/workboard-api/internal/models"
	"github.com/tmihalic/workboard-api/internal/repository"
	"github.com/tmihalic/workboard-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TeamHandlerTestSuite defines the test suite for TeamHandler
type TeamHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *services.TeamService
	handler *TeamHandler
}

// SetupTest runs before each test
func (suite *TeamHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Project{},
	)
	suite.Require().NoError(err)

	suite.service = services.NewTeamService(
		repository.NewTeamRepository(suite.db),
		repository.NewUserRepository(suite.db),
	)
	suite.handler = NewTeamHandler(suite.service)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TeamHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *TeamHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
		Active:       true,
	}
	suite.db.Create(user)
	return user
}

func (suite *TeamHandlerTestSuite) createTestTeam(name string, owner *models.User) *models.Team {
	team, err := suite.service.CreateTeam(services.CreateTeamInput{Name: name}, owner)
	suite.Require().NoError(err)
	return team
}

// Helper function to create authenticated context
func (suite *TeamHandlerTestSuite) createAuthContext(method, url string, body []byte, actor *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if actor != nil {
		c.Set(constants.ContextKeyUserID, actor.ID)
		c.Set(constants.ContextKeyActor, actor)
	}

	return c, w
}

func idParam(id uint64) gin.Param {
	return gin.Param{Key: "id", Value: strconv.FormatUint(id, 10)}
}

// TestCreateTeam_Success tests successful team creation
func (suite *TeamHandlerTestSuite) TestCreateTeam_Success() {
	owner := suite.createTestUser("owner")

	requestBody := map[string]interface{}{
		"name":        "Platform",
		"description": "Platform engineering",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/teams", body, owner)

	suite.handler.CreateTeam(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Platform", response["name"])
	assert.EqualValues(suite.T(), 1, response["member_count"])
}

// TestCreateTeam_InvalidRequest tests creation with a missing name
func (suite *TeamHandlerTestSuite) TestCreateTeam_InvalidRequest() {
	owner := suite.createTestUser("owner")

	body, _ := json.Marshal(map[string]interface{}{
		"description": "no name",
	})

	c, w := suite.createAuthContext("POST", "/api/teams", body, owner)

	suite.handler.CreateTeam(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateTeam_Unauthorized tests creation without an authenticated actor
func (suite *TeamHandlerTestSuite) TestCreateTeam_Unauthorized() {
	body, _ := json.Marshal(map[string]interface{}{
		"name": "Platform",
	})

	c, w := suite.createAuthContext("POST", "/api/teams", body, nil)

	suite.handler.CreateTeam(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestGetTeam_NotFound tests retrieval of a missing team
func (suite *TeamHandlerTestSuite) TestGetTeam_NotFound() {
	owner := suite.createTestUser("owner")

	c, w := suite.createAuthContext("GET", "/api/teams/9999", nil, owner)
	c.Params = gin.Params{idParam(9999)}

	suite.handler.GetTeam(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestUpdateTeam_Forbidden tests mutation by a non-owner
func (suite *TeamHandlerTestSuite) TestUpdateTeam_Forbidden() {
	owner := suite.createTestUser("owner")
	outsider := suite.createTestUser("outsider")
	team := suite.createTestTeam("Platform", owner)

	body, _ := json.Marshal(map[string]interface{}{
		"name": "Hijacked",
	})

	c, w := suite.createAuthContext("PUT", "/api/teams/1", body, outsider)
	c.Params = gin.Params{idParam(team.ID)}

	suite.handler.UpdateTeam(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestAddMember_Success tests adding a member
func (suite *TeamHandlerTestSuite) TestAddMember_Success() {
	owner := suite.createTestUser("owner")
	member := suite.createTestUser("member")
	team := suite.createTestTeam("Platform", owner)

	c, w := suite.createAuthContext("POST", "/api/teams/1/members/2", nil, owner)
	c.Params = gin.Params{
		idParam(team.ID),
		{Key: "user_id", Value: strconv.FormatUint(member.ID, 10)},
	}

	suite.handler.AddMember(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.EqualValues(suite.T(), 2, response["member_count"])
}

// TestRemoveMember_Owner tests that the owner cannot be removed
func (suite *TeamHandlerTestSuite) TestRemoveMember_Owner() {
	owner := suite.createTestUser("owner")
	team := suite.createTestTeam("Platform", owner)

	c, w := suite.createAuthContext("DELETE", "/api/teams/1/members/1", nil, owner)
	c.Params = gin.Params{
		idParam(team.ID),
		{Key: "user_id", Value: strconv.FormatUint(owner.ID, 10)},
	}

	suite.handler.RemoveMember(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestDeleteTeam_Success tests team deletion by the owner
func (suite *TeamHandlerTestSuite) TestDeleteTeam_Success() {
	owner := suite.createTestUser("owner")
	team := suite.createTestTeam("Platform", owner)

	c, w := suite.createAuthContext("DELETE", "/api/teams/1", nil, owner)
	c.Params = gin.Params{idParam(team.ID)}

	suite.handler.DeleteTeam(c)
	// Flush the deferred status header; the engine normally does this after
	// the handler chain, but we invoke the handler directly.
	c.Writer.WriteHeaderNow()

	assert.Equal(suite.T(), http.StatusNoContent, w.Code)
}

// TestSuite runs the test suite
func TestTeamHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TeamHandlerTestSuite))
}
