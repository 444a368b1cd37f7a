package swagger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/voltmover/crm/internal/transport/swagger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSwagger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Swagger Suite")
}

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("should be a valid OpenAPI 3 document", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("should document the core API surface", func() {
		for _, path := range []string{
			"/api/auth/login",
			"/api/users",
			"/api/users/me",
			"/api/contacts/{id}",
			"/api/deals/pipeline/stats",
			"/api/tasks/my",
			"/api/dashboard/stats",
			"/api/dashboard/deals-by-stage",
			"/api/dashboard/recent-activities",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), "missing path %s", path)
		}
	})

	It("should enumerate the pipeline stages", func() {
		stage := doc.Components.Schemas["DealStage"]
		Expect(stage).NotTo(BeNil())
		Expect(stage.Value.Enum).To(HaveLen(6))
	})
})

var _ = Describe("Swagger UI handler", func() {
	It("should serve the UI index", func() {
		req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
		w := httptest.NewRecorder()

		swagger.Handler().ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("swagger"))
	})
})
