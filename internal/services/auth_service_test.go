package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tmihalic/workboard-api/internal/models"
	"github.com/tmihalic/workboard-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// AuthServiceTestSuite defines the test suite for AuthService
type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

// SetupTest runs before each test
func (suite *AuthServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{})
	suite.Require().NoError(err)

	suite.service = NewAuthService(repository.NewUserRepository(suite.db))
}

// TearDownTest runs after each test
func (suite *AuthServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AuthServiceTestSuite) register(username, email string) *models.User {
	user, err := suite.service.Register(RegisterInput{
		Username: username,
		Email:    email,
		Password: "password123",
	})
	suite.Require().NoError(err)
	return user
}

func (suite *AuthServiceTestSuite) TestRegister_Success() {
	user, err := suite.service.Register(RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
		FullName: "Alice Example",
	})

	assert.NoError(suite.T(), err)
	assert.NotZero(suite.T(), user.ID)
	assert.Equal(suite.T(), models.RoleUser, user.Role)
	assert.True(suite.T(), user.Active)

	// Password is stored hashed, never verbatim
	assert.NotEqual(suite.T(), "password123", user.PasswordHash)
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123"))
	assert.NoError(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestRegister_ShortPassword() {
	_, err := suite.service.Register(RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
	})

	assert.ErrorIs(suite.T(), err, ErrPasswordTooShort)
}

func (suite *AuthServiceTestSuite) TestRegister_DuplicateUsername() {
	suite.register("alice", "alice@example.com")

	_, err := suite.service.Register(RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "password123",
	})

	assert.ErrorIs(suite.T(), err, ErrUsernameTaken)
}

func (suite *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	suite.register("alice", "alice@example.com")

	_, err := suite.service.Register(RegisterInput{
		Username: "bob",
		Email:    "alice@example.com",
		Password: "password123",
	})

	assert.ErrorIs(suite.T(), err, ErrEmailTaken)
}

func (suite *AuthServiceTestSuite) TestLogin_WithUsername() {
	registered := suite.register("alice", "alice@example.com")

	user, err := suite.service.Login(LoginInput{
		UsernameOrEmail: "alice",
		Password:        "password123",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), registered.ID, user.ID)
}

func (suite *AuthServiceTestSuite) TestLogin_WithEmail() {
	registered := suite.register("alice", "alice@example.com")

	user, err := suite.service.Login(LoginInput{
		UsernameOrEmail: "alice@example.com",
		Password:        "password123",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), registered.ID, user.ID)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	suite.register("alice", "alice@example.com")

	_, err := suite.service.Login(LoginInput{
		UsernameOrEmail: "alice",
		Password:        "not-the-password",
	})

	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownUser() {
	_, err := suite.service.Login(LoginInput{
		UsernameOrEmail: "ghost",
		Password:        "password123",
	})

	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestResolveActor_Success() {
	registered := suite.register("alice", "alice@example.com")

	actor, err := suite.service.ResolveActor(registered.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), registered.ID, actor.ID)
}

func (suite *AuthServiceTestSuite) TestResolveActor_DeactivatedUser() {
	registered := suite.register("alice", "alice@example.com")
	suite.db.Model(&models.User{}).Where("id = ?", registered.ID).Update("active", false)

	_, err := suite.service.ResolveActor(registered.ID)

	assert.ErrorIs(suite.T(), err, ErrUserNotFound)
}

// TestSuite runs the test suite
func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
