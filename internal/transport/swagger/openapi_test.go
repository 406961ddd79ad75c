package swagger_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSwagger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Swagger Suite")
}

// Guards the published contract: the document must stay loadable and
// internally consistent, and the routes the router mounts must stay in it.
var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("validates against the OpenAPI 3 schema", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("documents every mounted route group", func() {
		for _, path := range []string{
			"/auth/login",
			"/auth/refresh",
			"/auth/logout",
			"/me",
			"/dashboard",
			"/assets",
			"/assets/{id}",
			"/categories",
			"/categories/recount",
			"/sites",
			"/areas",
			"/departments",
			"/positions",
			"/users",
			"/history",
		} {
			Expect(doc.Paths.Value(path)).NotTo(BeNil(), "missing path %s", path)
		}
	})

	It("secures the asset endpoints with bearer auth", func() {
		item := doc.Paths.Value("/assets")
		Expect(item).NotTo(BeNil())
		Expect(item.Get.Security).NotTo(BeNil())
		Expect(doc.Components.SecuritySchemes).To(HaveKey("bearerAuth"))
	})
})
