package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"multibank/internal/database"
)

// SettingsRepositoryTestSuite is the test suite for the settings key-value repository
type SettingsRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo SettingsRepositoryInterface
}

func (s *SettingsRepositoryTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)

	err = db.AutoMigrate(&database.SettingsEntry{})
	require.NoError(s.T(), err)

	s.db = db
	s.repo = NewSettingsRepository(db)
}

func (s *SettingsRepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func TestSettingsRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsRepositoryTestSuite))
}

func (s *SettingsRepositoryTestSuite) TestSetAndGet() {
	err := s.repo.Set("autopay.rules", `[{"id":"r1"}]`)
	require.NoError(s.T(), err)

	value, err := s.repo.Get("autopay.rules")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), `[{"id":"r1"}]`, value)
}

func (s *SettingsRepositoryTestSuite) TestSet_Overwrites() {
	require.NoError(s.T(), s.repo.Set("theme", "light"))
	require.NoError(s.T(), s.repo.Set("theme", "dark"))

	value, err := s.repo.Get("theme")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "dark", value)
}

func (s *SettingsRepositoryTestSuite) TestGet_Missing() {
	_, err := s.repo.Get("nope")
	assert.ErrorIs(s.T(), err, ErrSettingNotFound)
}

func (s *SettingsRepositoryTestSuite) TestDelete() {
	require.NoError(s.T(), s.repo.Set("theme", "dark"))
	require.NoError(s.T(), s.repo.Delete("theme"))

	_, err := s.repo.Get("theme")
	assert.ErrorIs(s.T(), err, ErrSettingNotFound)
}

func (s *SettingsRepositoryTestSuite) TestDelete_MissingKeyIsNotAnError() {
	assert.NoError(s.T(), s.repo.Delete("never-existed"))
}
