package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tmihalic/workboard-api/internal/models"
	"github.com/tmihalic/workboard-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// CommentServiceTestSuite defines the test suite for CommentService
type CommentServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	service     *CommentService
	taskService *TaskService
}

// SetupTest runs before each test
func (suite *CommentServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Comment{},
		&models.Attachment{},
	)
	suite.Require().NoError(err)

	taskRepo := repository.NewTaskRepository(suite.db)
	suite.service = NewCommentService(repository.NewCommentRepository(suite.db), taskRepo)
	suite.taskService = NewTaskService(
		taskRepo,
		repository.NewProjectRepository(suite.db),
		repository.NewUserRepository(suite.db),
		nil,
	)
}

// TearDownTest runs after each test
func (suite *CommentServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *CommentServiceTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
		Active:       true,
	}
	suite.db.Create(user)
	return user
}

func (suite *CommentServiceTestSuite) createTestTask(title string, creator *models.User) *models.Task {
	task := &models.Task{
		Title:     title,
		CreatorID: creator.ID,
		Status:    models.TaskStatusOpen,
		Priority:  models.TaskPriorityMedium,
	}
	suite.db.Create(task)
	return task
}

func (suite *CommentServiceTestSuite) TestAddComment_AuthorIsActor() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	task := suite.createTestTask("Discuss", alice)

	comment, err := suite.service.AddComment(task.ID, "looks good to me", bob)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), bob.ID, comment.AuthorID)
	assert.Equal(suite.T(), task.ID, comment.TaskID)
	assert.Equal(suite.T(), "looks good to me", comment.Content)
}

func (suite *CommentServiceTestSuite) TestAddComment_BlankContent() {
	alice := suite.createTestUser("alice")
	task := suite.createTestTask("Discuss", alice)

	_, err := suite.service.AddComment(task.ID, "   ", alice)

	assert.ErrorIs(suite.T(), err, ErrCommentContentRequired)
}

func (suite *CommentServiceTestSuite) TestAddComment_UnknownTask() {
	alice := suite.createTestUser("alice")

	_, err := suite.service.AddComment(9999, "into the void", alice)

	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func (suite *CommentServiceTestSuite) TestListCommentsByTask_MostRecentFirst() {
	alice := suite.createTestUser("alice")
	task := suite.createTestTask("Discuss", alice)

	// Explicit timestamps so the ordering is deterministic
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	older := &models.Comment{Content: "first", TaskID: task.ID, AuthorID: alice.ID, CreatedAt: base}
	newer := &models.Comment{Content: "second", TaskID: task.ID, AuthorID: alice.ID, CreatedAt: base.Add(time.Hour)}
	suite.db.Create(older)
	suite.db.Create(newer)

	comments, err := suite.service.ListCommentsByTask(task.ID)

	assert.NoError(suite.T(), err)
	suite.Require().Len(comments, 2)
	assert.Equal(suite.T(), "second", comments[0].Content)
	assert.Equal(suite.T(), "first", comments[1].Content)
}

func (suite *CommentServiceTestSuite) TestDeleteComment_Success() {
	alice := suite.createTestUser("alice")
	task := suite.createTestTask("Discuss", alice)

	comment, err := suite.service.AddComment(task.ID, "remove me", alice)
	suite.Require().NoError(err)

	err = suite.service.DeleteComment(comment.ID)

	assert.NoError(suite.T(), err)

	comments, err := suite.service.ListCommentsByTask(task.ID)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), comments)
}

func (suite *CommentServiceTestSuite) TestDeleteComment_NotFound() {
	err := suite.service.DeleteComment(9999)

	assert.ErrorIs(suite.T(), err, ErrCommentNotFound)
}

func (suite *CommentServiceTestSuite) TestListCommentsByTask_AfterTaskDelete() {
	alice := suite.createTestUser("alice")
	task := suite.createTestTask("Discuss", alice)
	_, err := suite.service.AddComment(task.ID, "soon orphaned", alice)
	suite.Require().NoError(err)

	err = suite.taskService.DeleteTask(task.ID)
	suite.Require().NoError(err)

	comments, err := suite.service.ListCommentsByTask(task.ID)

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), comments)
}

// TestSuite runs the test suite
func TestCommentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CommentServiceTestSuite))
}
