package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suhaniparashar/internhub-backend/internal/models"
)

func TestStatsCountsDistinctApplicants(t *testing.T) {
	db := openTestDB(t)
	admin := NewAdminService(db)
	enrollments := NewEnrollmentService(db)

	alice := createTestUser(t, db, "alice", models.RoleStudent)
	bob := createTestUser(t, db, "bob", models.RoleStudent)
	createTestUser(t, db, "idle", models.RoleStudent)
	first := createTestInternship(t, db, "Frontend Developer Intern")
	second := createTestInternship(t, db, "Data Science Intern")

	// Alice applies twice, Bob once, the third student never applies.
	_, err := enrollments.Apply(alice.ID, first.ID)
	require.NoError(t, err)
	_, err = enrollments.Apply(alice.ID, second.ID)
	require.NoError(t, err)
	_, err = enrollments.Apply(bob.ID, first.ID)
	require.NoError(t, err)

	stats, err := admin.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalInternships)
	assert.Equal(t, int64(3), stats.TotalApplications)
	assert.Equal(t, int64(2), stats.ActiveUsers)
}

func TestStudentProgressJoinsTasks(t *testing.T) {
	db := openTestDB(t)
	admin := NewAdminService(db)
	enrollments := NewEnrollmentService(db)
	tasks := NewTaskService(db)

	student := createTestUser(t, db, "student1", models.RoleStudent)
	internship := createTestInternship(t, db, "Frontend Developer Intern")

	app, err := enrollments.Apply(student.ID, internship.ID)
	require.NoError(t, err)
	app, err = tasks.AddTask(student.ID, app.ID, "Submit design doc", "")
	require.NoError(t, err)
	_, err = tasks.ToggleTask(student.ID, app.ID, app.Tasks[0].ID)
	require.NoError(t, err)

	progress, err := admin.StudentProgress(student.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, progress.User.ID)
	require.Len(t, progress.Applications, 1)
	assert.Equal(t, 100, progress.Applications[0].Progress)
	require.Len(t, progress.Applications[0].Tasks, 1)
	assert.Equal(t, models.TaskDone, progress.Applications[0].Tasks[0].Status)

	_, err = admin.StudentProgress(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	db := openTestDB(t)
	admin := NewAdminService(db)
	enrollments := NewEnrollmentService(db)
	tasks := NewTaskService(db)

	student := createTestUser(t, db, "student1", models.RoleStudent)
	other := createTestUser(t, db, "student2", models.RoleStudent)
	internship := createTestInternship(t, db, "Frontend Developer Intern")

	app, err := enrollments.Apply(student.ID, internship.ID)
	require.NoError(t, err)
	_, err = tasks.AddTask(student.ID, app.ID, "Submit design doc", "")
	require.NoError(t, err)
	_, err = enrollments.Apply(other.ID, internship.ID)
	require.NoError(t, err)

	require.NoError(t, admin.DeleteUser(student.ID))
	assert.ErrorIs(t, admin.DeleteUser(student.ID), ErrUserNotFound)

	var userCount, appCount, taskCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Application{}).Count(&appCount)
	db.Model(&models.Task{}).Count(&taskCount)
	assert.Equal(t, int64(1), userCount)
	assert.Equal(t, int64(1), appCount)
	assert.Equal(t, int64(0), taskCount)
}

func TestClearAllUsersWipesEverything(t *testing.T) {
	db := openTestDB(t)
	admin := NewAdminService(db)
	enrollments := NewEnrollmentService(db)
	tasks := NewTaskService(db)

	// Even admin accounts are cleared: no exemption.
	createTestUser(t, db, "admin1", models.RoleAdmin)
	student := createTestUser(t, db, "student1", models.RoleStudent)
	internship := createTestInternship(t, db, "Frontend Developer Intern")

	app, err := enrollments.Apply(student.ID, internship.ID)
	require.NoError(t, err)
	_, err = tasks.AddTask(student.ID, app.ID, "Submit design doc", "")
	require.NoError(t, err)

	require.NoError(t, admin.ClearAllUsers())

	users, err := admin.ListUsers()
	require.NoError(t, err)
	assert.Empty(t, users)

	all, err := enrollments.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	// The catalog survives a user wipe.
	var internshipCount int64
	db.Model(&models.Internship{}).Count(&internshipCount)
	assert.Equal(t, int64(1), internshipCount)
}
