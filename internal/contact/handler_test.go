package contact_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/go-chi/chi"
	"github.com/voltmover/crm/internal/contact"
	contactPostgres "github.com/voltmover/crm/internal/contact/postgres"
	contactDatamodel "github.com/voltmover/crm/internal/core/datamodel/contact"
	dealDatamodel "github.com/voltmover/crm/internal/core/datamodel/deal"
	userDatamodel "github.com/voltmover/crm/internal/core/datamodel/user"
	"github.com/voltmover/crm/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Contact Handler Integration", func() {
	var (
		db      *gorm.DB
		service *contact.Service
		handler *contact.Handler
		router  *chi.Mux
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&userDatamodel.User{},
			&contactDatamodel.Contact{},
			&dealDatamodel.Deal{},
		)
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&userDatamodel.User{
			Email:        "owner@example.com",
			Username:     "owner",
			FullName:     "Record Owner",
			PasswordHash: "x",
			Role:         userDatamodel.RoleSales,
			IsActive:     true,
		}).Error).NotTo(HaveOccurred())

		repo := contactPostgres.NewContactRepository(db)
		service = contact.NewService(repo, slogger)
		baseHandler := &transport.BaseHandler{Logger: slogger}
		handler = contact.NewHandler(baseHandler, service)

		router = chi.NewRouter()
		router.Post("/api/contacts", handler.Create)
		router.Get("/api/contacts", handler.List)
		router.Get("/api/contacts/{id}", handler.Get)
		router.Put("/api/contacts/{id}", handler.Update)
		router.Delete("/api/contacts/{id}", handler.Delete)
	})

	Describe("POST /api/contacts", func() {
		It("should create a contact and return 201", func() {
			body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@acme.test","owner_id":1}`
			req := httptest.NewRequest(http.MethodPost, "/api/contacts", strings.NewReader(body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var created contact.Contact
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.FirstName).To(Equal("Ada"))
		})

		It("should return 422 when the owner does not exist", func() {
			body := `{"first_name":"Ada","last_name":"Lovelace","owner_id":99}`
			req := httptest.NewRequest(http.MethodPost, "/api/contacts", strings.NewReader(body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		})

		It("should return 400 for a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/contacts", strings.NewReader("{not json"))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /api/contacts/{id}", func() {
		It("should return 404 for a missing contact", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/contacts/999", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 400 for a non-numeric id", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/contacts/abc", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("PUT /api/contacts/{id}", func() {
		var createdID int64

		BeforeEach(func() {
			created, err := service.Create(contact.CreateContactDTO{
				FirstName: "Grace",
				LastName:  "Hopper",
				OwnerID:   1,
			})
			Expect(err).NotTo(HaveOccurred())
			createdID = created.ID
		})

		It("should apply a partial update, leaving other fields untouched", func() {
			body := `{"company":"Navy"}`
			req := httptest.NewRequest(http.MethodPut, "/api/contacts/1", strings.NewReader(body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var updated contact.Contact
			Expect(json.NewDecoder(w.Body).Decode(&updated)).To(Succeed())
			Expect(updated.ID).To(Equal(createdID))
			Expect(*updated.Company).To(Equal("Navy"))
			Expect(updated.FirstName).To(Equal("Grace"))
			Expect(updated.LastName).To(Equal("Hopper"))
		})
	})

	Describe("DELETE /api/contacts/{id}", func() {
		It("should delete and confirm with a message", func() {
			created, err := service.Create(contact.CreateContactDTO{
				FirstName: "Alan",
				LastName:  "Turing",
				OwnerID:   1,
			})
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodDelete, "/api/contacts/1", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]string
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp["message"]).To(Equal("Contact deleted successfully"))

			_, err = service.GetByID(created.ID)
			Expect(err).To(HaveOccurred())
		})

		It("should return 409 when deals reference the contact", func() {
			created, err := service.Create(contact.CreateContactDTO{
				FirstName: "Alan",
				LastName:  "Turing",
				OwnerID:   1,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(db.Create(&dealDatamodel.Deal{
				Title:     "Fleet upgrade",
				Stage:     dealDatamodel.StageLead,
				ContactID: created.ID,
				OwnerID:   1,
			}).Error).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodDelete, "/api/contacts/1", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})
})
