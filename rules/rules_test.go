package rules

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Nuga25/interneefy-backend/authz"
	"github.com/Nuga25/interneefy-backend/database"
	"github.com/Nuga25/interneefy-backend/errs"
	"github.com/Nuga25/interneefy-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "rules.db") + "?_fk=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedPair(t *testing.T, db *gorm.DB, endDate *time.Time) (authz.Actor, *models.User) {
	t.Helper()
	company := models.Company{Name: "Acme"}
	require.NoError(t, db.Create(&company).Error)

	supervisor := models.User{
		CompanyID: company.ID, FullName: "Sam", Email: "sam@acme.test",
		PasswordHash: "x", Role: models.RoleSupervisor,
	}
	require.NoError(t, db.Create(&supervisor).Error)

	intern := models.User{
		CompanyID: company.ID, FullName: "Ivy", Email: "ivy@acme.test",
		PasswordHash: "x", Role: models.RoleIntern,
		SupervisorID: &supervisor.ID, EndDate: endDate,
	}
	require.NoError(t, db.Create(&intern).Error)

	actor := authz.Actor{UserID: supervisor.ID, CompanyID: company.ID, Role: models.RoleSupervisor}
	return actor, &intern
}

func TestCheckEvaluationSubmission(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	t.Run("unknown intern", func(t *testing.T) {
		db := openTestDB(t)
		actor, _ := seedPair(t, db, nil)
		_, err := CheckEvaluationSubmission(db, actor, 9999, now)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})

	t.Run("intern in another company reads as not found", func(t *testing.T) {
		db := openTestDB(t)
		actor, _ := seedPair(t, db, nil)

		other := models.Company{Name: "Globex"}
		require.NoError(t, db.Create(&other).Error)
		stranger := models.User{
			CompanyID: other.ID, FullName: "Zed", Email: "zed@globex.test",
			PasswordHash: "x", Role: models.RoleIntern,
		}
		require.NoError(t, db.Create(&stranger).Error)

		_, err := CheckEvaluationSubmission(db, actor, stranger.ID, now)
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})

	t.Run("not your intern", func(t *testing.T) {
		db := openTestDB(t)
		actor, intern := seedPair(t, db, nil)
		require.NoError(t, db.Model(intern).Update("supervisor_id", nil).Error)

		_, err := CheckEvaluationSubmission(db, actor, intern.ID, now)
		assert.Equal(t, errs.KindNotYourIntern, errs.KindOf(err))
	})

	t.Run("missing end date", func(t *testing.T) {
		db := openTestDB(t)
		actor, intern := seedPair(t, db, nil)
		_, err := CheckEvaluationSubmission(db, actor, intern.ID, now)
		assert.Equal(t, errs.KindTooEarly, errs.KindOf(err))
	})

	t.Run("end date one second in the future is too early", func(t *testing.T) {
		db := openTestDB(t)
		end := now.Add(time.Second)
		actor, intern := seedPair(t, db, &end)

		_, err := CheckEvaluationSubmission(db, actor, intern.ID, now)
		assert.Equal(t, errs.KindTooEarly, errs.KindOf(err))
		assert.Contains(t, err.Error(), "Ivy")
		assert.Contains(t, err.Error(), end.Format("January 2, 2006"))
	})

	t.Run("end date one second in the past passes", func(t *testing.T) {
		db := openTestDB(t)
		end := now.Add(-time.Second)
		actor, intern := seedPair(t, db, &end)

		got, err := CheckEvaluationSubmission(db, actor, intern.ID, now)
		require.NoError(t, err)
		assert.Equal(t, intern.ID, got.ID)
	})

	t.Run("already evaluated", func(t *testing.T) {
		db := openTestDB(t)
		end := now.Add(-time.Hour)
		actor, intern := seedPair(t, db, &end)

		require.NoError(t, db.Create(&models.Evaluation{
			CompanyID: actor.CompanyID, SupervisorID: actor.UserID, InternID: intern.ID,
			TechnicalScore: 4, CommunicationScore: 4, TeamworkScore: 4,
		}).Error)

		_, err := CheckEvaluationSubmission(db, actor, intern.ID, now)
		assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	})
}

func TestCheckInternAssignment(t *testing.T) {
	db := openTestDB(t)
	actor, intern := seedPair(t, db, nil)

	t.Run("valid intern", func(t *testing.T) {
		got, err := CheckInternAssignment(db, actor, intern.ID)
		require.NoError(t, err)
		assert.Equal(t, intern.ID, got.ID)
	})

	t.Run("unknown intern", func(t *testing.T) {
		_, err := CheckInternAssignment(db, actor, 9999)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("target is not an intern", func(t *testing.T) {
		_, err := CheckInternAssignment(db, actor, actor.UserID)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})
}

func TestCheckSupervisorReference(t *testing.T) {
	db := openTestDB(t)
	actor, intern := seedPair(t, db, nil)

	t.Run("valid supervisor", func(t *testing.T) {
		assert.NoError(t, CheckSupervisorReference(db, actor.CompanyID, actor.UserID))
	})

	t.Run("cross-company supervisor rejected", func(t *testing.T) {
		other := models.Company{Name: "Globex"}
		require.NoError(t, db.Create(&other).Error)
		foreign := models.User{
			CompanyID: other.ID, FullName: "Gus", Email: "gus@globex.test",
			PasswordHash: "x", Role: models.RoleSupervisor,
		}
		require.NoError(t, db.Create(&foreign).Error)

		err := CheckSupervisorReference(db, actor.CompanyID, foreign.ID)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("referenced user is not a supervisor", func(t *testing.T) {
		err := CheckSupervisorReference(db, actor.CompanyID, intern.ID)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})
}

func TestTranslateDeleteError(t *testing.T) {
	assert.NoError(t, TranslateDeleteError(nil))
	assert.Equal(t, errs.KindConflict, errs.KindOf(TranslateDeleteError(gorm.ErrForeignKeyViolated)))
	assert.Equal(t, errs.KindPersistence, errs.KindOf(TranslateDeleteError(gorm.ErrInvalidDB)))
}
