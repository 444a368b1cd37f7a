package contact_test

import (
	"errors"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/voltmover/crm/internal"
	"github.com/voltmover/crm/internal/contact"
	contactDatamodel "github.com/voltmover/crm/internal/core/datamodel/contact"
)

func TestContact(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Contact Module Suite")
}

type mockContactRepository struct {
	contacts      map[int64]*contactDatamodel.Contact
	nextID        int64
	owners        map[int64]bool
	dealCounts    map[int64]int64
	returnError   bool
	errorToReturn error
}

func newMockContactRepository() *mockContactRepository {
	return &mockContactRepository{
		contacts:   make(map[int64]*contactDatamodel.Contact),
		nextID:     1,
		owners:     map[int64]bool{1: true},
		dealCounts: make(map[int64]int64),
	}
}

func (m *mockContactRepository) Create(record *contactDatamodel.Contact) error {
	if m.returnError {
		return m.errorToReturn
	}
	record.ID = m.nextID
	m.nextID++
	m.contacts[record.ID] = record
	return nil
}

func (m *mockContactRepository) GetByID(id int64) (*contactDatamodel.Contact, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	if record, exists := m.contacts[id]; exists {
		copied := *record
		return &copied, nil
	}
	return nil, errors.New("record not found")
}

func (m *mockContactRepository) List(params contact.ListParams) ([]*contactDatamodel.Contact, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	var records []*contactDatamodel.Contact
	for _, record := range m.contacts {
		records = append(records, record)
	}
	return records, nil
}

func (m *mockContactRepository) Update(record *contactDatamodel.Contact) error {
	if m.returnError {
		return m.errorToReturn
	}
	m.contacts[record.ID] = record
	return nil
}

func (m *mockContactRepository) Delete(id int64) error {
	if m.returnError {
		return m.errorToReturn
	}
	delete(m.contacts, id)
	return nil
}

func (m *mockContactRepository) OwnerExists(ownerID int64) (bool, error) {
	if m.returnError {
		return false, m.errorToReturn
	}
	return m.owners[ownerID], nil
}

func (m *mockContactRepository) CountDeals(contactID int64) (int64, error) {
	if m.returnError {
		return 0, m.errorToReturn
	}
	return m.dealCounts[contactID], nil
}

var _ = Describe("ContactService", func() {
	var (
		service  *contact.Service
		mockRepo *mockContactRepository
	)

	BeforeEach(func() {
		mockRepo = newMockContactRepository()
		service = contact.NewService(mockRepo, slog.Default())
	})

	Describe("Create", func() {
		It("should create a contact for an existing owner", func() {
			email := "ada@acme.test"
			created, err := service.Create(contact.CreateContactDTO{
				FirstName: "Ada",
				LastName:  "Lovelace",
				Email:     &email,
				OwnerID:   1,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.FirstName).To(Equal("Ada"))
			Expect(*created.Email).To(Equal("ada@acme.test"))
		})

		Context("when the owner does not exist", func() {
			It("should return a validation error", func() {
				created, err := service.Create(contact.CreateContactDTO{
					FirstName: "Ada",
					LastName:  "Lovelace",
					OwnerID:   99,
				})

				Expect(created).To(BeNil())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(422))
			})
		})

		Context("when required fields are missing", func() {
			It("should reject an empty first name", func() {
				created, err := service.Create(contact.CreateContactDTO{
					LastName: "Lovelace",
					OwnerID:  1,
				})

				Expect(created).To(BeNil())
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Update", func() {
		var existingID int64

		BeforeEach(func() {
			created, err := service.Create(contact.CreateContactDTO{
				FirstName: "Grace",
				LastName:  "Hopper",
				OwnerID:   1,
			})
			Expect(err).ToNot(HaveOccurred())
			existingID = created.ID
		})

		It("should apply only the supplied fields", func() {
			company := "Navy"
			updated, err := service.Update(existingID, contact.UpdateContactDTO{Company: &company})

			Expect(err).ToNot(HaveOccurred())
			Expect(*updated.Company).To(Equal("Navy"))
			Expect(updated.FirstName).To(Equal("Grace"))
			Expect(updated.LastName).To(Equal("Hopper"))
		})

		It("should reject blanking a required field", func() {
			empty := ""
			updated, err := service.Update(existingID, contact.UpdateContactDTO{LastName: &empty})

			Expect(updated).To(BeNil())
			Expect(err).To(HaveOccurred())
		})

		Context("when the contact does not exist", func() {
			It("should return a not found error", func() {
				name := "Nobody"
				updated, err := service.Update(999, contact.UpdateContactDTO{FirstName: &name})

				Expect(updated).To(BeNil())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(404))
			})
		})
	})

	Describe("Delete", func() {
		var existingID int64

		BeforeEach(func() {
			created, err := service.Create(contact.CreateContactDTO{
				FirstName: "Linus",
				LastName:  "T",
				OwnerID:   1,
			})
			Expect(err).ToNot(HaveOccurred())
			existingID = created.ID
		})

		It("should delete an unreferenced contact", func() {
			Expect(service.Delete(existingID)).To(Succeed())

			_, err := service.GetByID(existingID)
			Expect(err).To(HaveOccurred())
		})

		Context("when deals still reference the contact", func() {
			It("should return a conflict error", func() {
				mockRepo.dealCounts[existingID] = 2

				err := service.Delete(existingID)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(409))
			})
		})

		Context("when the contact does not exist", func() {
			It("should return a not found error", func() {
				err := service.Delete(999)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(404))
			})
		})
	})
})
