package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tmihalic/workboard-api/internal/models"
	"github.com/tmihalic/workboard-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TaskService
}

// SetupTest runs before each test
func (suite *TaskServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Project{},
		&models.Task{},
		&models.Comment{},
		&models.Attachment{},
	)
	suite.Require().NoError(err)

	// No AI service in tests
	suite.service = NewTaskService(
		repository.NewTaskRepository(suite.db),
		repository.NewProjectRepository(suite.db),
		repository.NewUserRepository(suite.db),
		nil,
	)
}

// TearDownTest runs after each test
func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskServiceTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
		Active:       true,
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskServiceTestSuite) createTestProject(name string, owner *models.User) *models.Project {
	team := &models.Team{Name: name + " Team", OwnerID: owner.ID, Active: true}
	suite.db.Create(team)

	project := &models.Project{Name: name, TeamID: team.ID, Status: models.ProjectStatusActive}
	suite.db.Create(project)
	return project
}

func (suite *TaskServiceTestSuite) createTestTask(title string, actor *models.User) *models.Task {
	task, err := suite.service.CreateTask(CreateTaskInput{Title: title}, actor)
	suite.Require().NoError(err)
	return task
}

func (suite *TaskServiceTestSuite) TestCreateTask_Defaults() {
	actor := suite.createTestUser("alice")

	task := suite.createTestTask("Write release notes", actor)

	assert.Equal(suite.T(), actor.ID, task.CreatorID)
	assert.Equal(suite.T(), models.TaskStatusOpen, task.Status)
	assert.Equal(suite.T(), models.TaskPriorityMedium, task.Priority)
	assert.Nil(suite.T(), task.AssigneeID)
	assert.Nil(suite.T(), task.CompletedAt)
}

func (suite *TaskServiceTestSuite) TestCreateTask_BlankTitle() {
	actor := suite.createTestUser("alice")

	_, err := suite.service.CreateTask(CreateTaskInput{Title: "   "}, actor)

	assert.ErrorIs(suite.T(), err, ErrTitleRequired)
}

func (suite *TaskServiceTestSuite) TestCreateTask_UnknownProject() {
	actor := suite.createTestUser("alice")
	missing := uint64(9999)

	_, err := suite.service.CreateTask(CreateTaskInput{
		Title:     "Orphan",
		ProjectID: &missing,
	}, actor)

	assert.ErrorIs(suite.T(), err, ErrProjectNotFound)
}

func (suite *TaskServiceTestSuite) TestCreateTask_UnknownAssignee() {
	actor := suite.createTestUser("alice")
	missing := uint64(9999)

	_, err := suite.service.CreateTask(CreateTaskInput{
		Title:      "Unassignable",
		AssigneeID: &missing,
	}, actor)

	assert.ErrorIs(suite.T(), err, ErrUserNotFound)
}

func (suite *TaskServiceTestSuite) TestCreateTask_WithProject() {
	actor := suite.createTestUser("alice")
	project := suite.createTestProject("Website", actor)

	task, err := suite.service.CreateTask(CreateTaskInput{
		Title:     "Fix navbar",
		ProjectID: &project.ID,
	}, actor)

	assert.NoError(suite.T(), err)
	suite.Require().NotNil(task.ProjectID)
	assert.Equal(suite.T(), project.ID, *task.ProjectID)
	suite.Require().NotNil(task.Project)
	assert.Equal(suite.T(), project.Name, task.Project.Name)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_CompleteStampsTimestamp() {
	actor := suite.createTestUser("alice")
	task := suite.createTestTask("Deploy", actor)

	completed := models.TaskStatusCompleted
	updated, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{Status: &completed})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TaskStatusCompleted, updated.Status)
	suite.Require().NotNil(updated.CompletedAt)

	// Reopening keeps the completion timestamp
	inProgress := models.TaskStatusInProgress
	reopened, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{Status: &inProgress})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TaskStatusInProgress, reopened.Status)
	assert.NotNil(suite.T(), reopened.CompletedAt)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_EmptyTitle() {
	actor := suite.createTestUser("alice")
	task := suite.createTestTask("Deploy", actor)

	blank := "  "
	_, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{Title: &blank})

	assert.ErrorIs(suite.T(), err, ErrTitleEmpty)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_EmptyInputLeavesTaskUnchanged() {
	actor := suite.createTestUser("alice")
	task := suite.createTestTask("Deploy", actor)

	updated, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), task.Title, updated.Title)
	assert.Equal(suite.T(), task.Status, updated.Status)
	assert.Equal(suite.T(), task.Priority, updated.Priority)
	assert.Nil(suite.T(), updated.AssigneeID)
}

func (suite *TaskServiceTestSuite) TestUpdateTask_NotFound() {
	_, err := suite.service.UpdateTask(9999, UpdateTaskInput{})

	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestAssignTask_ReplacesAssignee() {
	actor := suite.createTestUser("alice")
	first := suite.createTestUser("bob")
	second := suite.createTestUser("carol")
	task := suite.createTestTask("Review PR", actor)

	assigned, err := suite.service.AssignTask(task.ID, first.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(assigned.AssigneeID)
	assert.Equal(suite.T(), first.ID, *assigned.AssigneeID)

	reassigned, err := suite.service.AssignTask(task.ID, second.ID)

	assert.NoError(suite.T(), err)
	suite.Require().NotNil(reassigned.AssigneeID)
	assert.Equal(suite.T(), second.ID, *reassigned.AssigneeID)
}

func (suite *TaskServiceTestSuite) TestAssignTask_UnknownAssignee() {
	actor := suite.createTestUser("alice")
	task := suite.createTestTask("Review PR", actor)

	_, err := suite.service.AssignTask(task.ID, 9999)

	assert.ErrorIs(suite.T(), err, ErrUserNotFound)
}

func (suite *TaskServiceTestSuite) TestMarkCompleted_FromAnyStatus() {
	actor := suite.createTestUser("alice")

	for _, status := range []models.TaskStatus{
		models.TaskStatusOpen,
		models.TaskStatusInProgress,
		models.TaskStatusCancelled,
	} {
		task, err := suite.service.CreateTask(CreateTaskInput{
			Title:  "Task " + string(status),
			Status: status,
		}, actor)
		suite.Require().NoError(err)

		completed, err := suite.service.MarkCompleted(task.ID)

		assert.NoError(suite.T(), err)
		assert.Equal(suite.T(), models.TaskStatusCompleted, completed.Status)
		assert.NotNil(suite.T(), completed.CompletedAt)
	}
}

func (suite *TaskServiceTestSuite) TestListTasksByStatus() {
	actor := suite.createTestUser("alice")
	suite.createTestTask("Open task", actor)
	_, err := suite.service.CreateTask(CreateTaskInput{
		Title:  "In progress task",
		Status: models.TaskStatusInProgress,
	}, actor)
	suite.Require().NoError(err)

	tasks, err := suite.service.ListTasksByStatus(models.TaskStatusInProgress)

	assert.NoError(suite.T(), err)
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), "In progress task", tasks[0].Title)
}

func (suite *TaskServiceTestSuite) TestListTasksForActor_UnionWithoutDuplicates() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")

	created := suite.createTestTask("Created by alice", alice)
	assignedToAlice, err := suite.service.CreateTask(CreateTaskInput{
		Title:      "Created by bob, assigned to alice",
		AssigneeID: &alice.ID,
	}, bob)
	suite.Require().NoError(err)
	both, err := suite.service.CreateTask(CreateTaskInput{
		Title:      "Created and assigned to alice",
		AssigneeID: &alice.ID,
	}, alice)
	suite.Require().NoError(err)
	suite.createTestTask("Unrelated", bob)

	tasks, err := suite.service.ListTasksForActor(alice)

	assert.NoError(suite.T(), err)
	suite.Require().Len(tasks, 3)

	ids := make(map[uint64]bool)
	for _, task := range tasks {
		ids[task.ID] = true
	}
	assert.True(suite.T(), ids[created.ID])
	assert.True(suite.T(), ids[assignedToAlice.ID])
	assert.True(suite.T(), ids[both.ID])
}

func (suite *TaskServiceTestSuite) TestSearchTasks_CaseInsensitive() {
	actor := suite.createTestUser("alice")
	match := suite.createTestTask("Fix Login Bug", actor)
	suite.createTestTask("Update README", actor)

	tasks, err := suite.service.SearchTasks("login")

	assert.NoError(suite.T(), err)
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), match.ID, tasks[0].ID)
}

func (suite *TaskServiceTestSuite) TestSearchTasks_MatchesDescription() {
	actor := suite.createTestUser("alice")
	task, err := suite.service.CreateTask(CreateTaskInput{
		Title:       "Chore",
		Description: "Rotate the signing CERTIFICATE before Friday",
	}, actor)
	suite.Require().NoError(err)

	tasks, err := suite.service.SearchTasks("certificate")

	assert.NoError(suite.T(), err)
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), task.ID, tasks[0].ID)
}

func (suite *TaskServiceTestSuite) TestSearchTasks_EmptyKeywordMatchesAll() {
	actor := suite.createTestUser("alice")
	suite.createTestTask("One", actor)
	suite.createTestTask("Two", actor)

	tasks, err := suite.service.SearchTasks("")

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), tasks, 2)
}

func (suite *TaskServiceTestSuite) TestDeleteTask_CascadesCommentsAndAttachments() {
	actor := suite.createTestUser("alice")
	task := suite.createTestTask("Doomed", actor)

	suite.db.Create(&models.Comment{Content: "gone soon", TaskID: task.ID, AuthorID: actor.ID})
	suite.db.Create(&models.Attachment{
		Filename:     "notes.pdf",
		FilePath:     "uploads/notes.pdf",
		TaskID:       task.ID,
		UploadedByID: actor.ID,
	})

	err := suite.service.DeleteTask(task.ID)

	assert.NoError(suite.T(), err)

	_, err = suite.service.GetTask(task.ID)
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)

	var commentCount, attachmentCount int64
	suite.db.Model(&models.Comment{}).Where("task_id = ?", task.ID).Count(&commentCount)
	suite.db.Model(&models.Attachment{}).Where("task_id = ?", task.ID).Count(&attachmentCount)
	assert.EqualValues(suite.T(), 0, commentCount)
	assert.EqualValues(suite.T(), 0, attachmentCount)
}

func (suite *TaskServiceTestSuite) TestDeleteTask_NotFound() {
	err := suite.service.DeleteTask(9999)

	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestGenerateTasks_NotConfigured() {
	_, err := suite.service.GenerateTasks(context.Background(), GenerateTasksInput{Text: "do things"})

	assert.ErrorIs(suite.T(), err, ErrAIServiceNotConfigured)
}

func (suite *TaskServiceTestSuite) TestCreateTask_KeepsDueDate() {
	actor := suite.createTestUser("alice")
	due := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	task, err := suite.service.CreateTask(CreateTaskInput{
		Title:   "Quarterly report",
		DueDate: &due,
	}, actor)

	assert.NoError(suite.T(), err)
	suite.Require().NotNil(task.DueDate)
	assert.True(suite.T(), task.DueDate.Equal(due))
}

// TestSuite runs the test suite
func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
