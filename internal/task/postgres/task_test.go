package postgres_test

import (
	"testing"
	"time"

	activityDatamodel "github.com/voltmover/crm/internal/core/datamodel/activity"
	taskDatamodel "github.com/voltmover/crm/internal/core/datamodel/task"
	userDatamodel "github.com/voltmover/crm/internal/core/datamodel/user"
	"github.com/voltmover/crm/internal/task"
	taskPostgres "github.com/voltmover/crm/internal/task/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestTaskPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Task Postgres Suite")
}

var _ = Describe("Task Repository", func() {
	var (
		db   *gorm.DB
		repo task.RepositoryAPI
		now  time.Time
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&userDatamodel.User{},
			&taskDatamodel.Task{},
			&activityDatamodel.Activity{},
		)
		Expect(err).NotTo(HaveOccurred())

		for _, username := range []string{"jdoe", "jroe"} {
			Expect(db.Create(&userDatamodel.User{
				Email:        username + "@example.com",
				Username:     username,
				FullName:     username,
				PasswordHash: "x",
				Role:         userDatamodel.RoleSales,
				IsActive:     true,
			}).Error).NotTo(HaveOccurred())
		}

		now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
		repo = taskPostgres.NewTaskRepository(db)
	})

	seedTask := func(title string, status taskDatamodel.Status, assigneeID int64, dueDate *time.Time) *taskDatamodel.Task {
		record := &taskDatamodel.Task{
			Title:      title,
			Status:     status,
			Priority:   taskDatamodel.PriorityMedium,
			DueDate:    dueDate,
			AssigneeID: assigneeID,
		}
		Expect(repo.Create(record)).NotTo(HaveOccurred())
		return record
	}

	Describe("Create", func() {
		It("should append an activity log entry", func() {
			record := seedTask("Send quote", taskDatamodel.StatusTodo, 1, nil)

			var entry activityDatamodel.Activity
			Expect(db.Where("user_id = ?", record.AssigneeID).First(&entry).Error).NotTo(HaveOccurred())
			Expect(entry.Type).To(Equal("task"))
			Expect(entry.Subject).To(Equal("Task created: Send quote"))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			past := now.Add(-24 * time.Hour)
			future := now.Add(24 * time.Hour)

			seedTask("Overdue todo", taskDatamodel.StatusTodo, 1, &past)
			seedTask("Overdue but completed", taskDatamodel.StatusCompleted, 1, &past)
			seedTask("Due tomorrow", taskDatamodel.StatusTodo, 2, &future)
			seedTask("No due date", taskDatamodel.StatusInProgress, 2, nil)
		})

		It("should list all tasks without filters", func() {
			records, err := repo.List(task.ListParams{Limit: 100}, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(4))
		})

		It("should filter by status", func() {
			status := taskDatamodel.StatusTodo
			records, err := repo.List(task.ListParams{Limit: 100, Status: &status}, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
		})

		It("should filter by assignee", func() {
			assigneeID := int64(2)
			records, err := repo.List(task.ListParams{Limit: 100, AssigneeID: &assigneeID}, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
			for _, record := range records {
				Expect(record.AssigneeID).To(Equal(int64(2)))
			}
		})

		It("should treat overdue as past due date and not completed", func() {
			records, err := repo.List(task.ListParams{Limit: 100, Overdue: true}, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].Title).To(Equal("Overdue todo"))
		})

		It("should exclude tasks without a due date from overdue", func() {
			records, err := repo.List(task.ListParams{Limit: 100, Overdue: true}, now)
			Expect(err).NotTo(HaveOccurred())
			for _, record := range records {
				Expect(record.DueDate).NotTo(BeNil())
			}
		})
	})

	Describe("AssigneeExists", func() {
		It("should report an existing user", func() {
			exists, err := repo.AssigneeExists(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})

		It("should report a missing user", func() {
			exists, err := repo.AssigneeExists(99)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("Update", func() {
		It("should persist a completion timestamp", func() {
			record := seedTask("Finish report", taskDatamodel.StatusTodo, 1, nil)

			completedAt := now
			record.Status = taskDatamodel.StatusCompleted
			record.CompletedAt = &completedAt
			Expect(repo.Update(record)).NotTo(HaveOccurred())

			reloaded, err := repo.GetByID(record.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.Status).To(Equal(taskDatamodel.StatusCompleted))
			Expect(reloaded.CompletedAt).NotTo(BeNil())
		})
	})
})
