package rest_test

import (
	"context"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

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

	It("documents every mounted route", func() {
		expected := map[string][]string{
			"/auth-login":                    {http.MethodPost},
			"/auth-create-user":              {http.MethodPost},
			"/auth-update-password":          {http.MethodPost},
			"/auth-logout":                   {http.MethodPost},
			"/api/v1/users":                  {http.MethodGet},
			"/api/v1/users/{id}":             {http.MethodPatch},
			"/api/v1/staff":                  {http.MethodGet, http.MethodPost},
			"/api/v1/staff/{id}":             {http.MethodGet, http.MethodPatch, http.MethodDelete},
			"/api/v1/salary-categories":      {http.MethodGet, http.MethodPost},
			"/api/v1/salary-categories/{id}": {http.MethodDelete},
		}

		for path, methods := range expected {
			item := doc.Paths.Find(path)
			Expect(item).NotTo(BeNil(), "missing path %s", path)
			for _, method := range methods {
				Expect(item.GetOperation(method)).NotTo(BeNil(), "missing %s %s", method, path)
			}
		}
	})

	It("requires the session header on protected operations", func() {
		item := doc.Paths.Find("/auth-create-user")
		Expect(item).NotTo(BeNil())
		op := item.GetOperation(http.MethodPost)
		Expect(op.Security).NotTo(BeNil())

		scheme := doc.Components.SecuritySchemes["SessionToken"]
		Expect(scheme).NotTo(BeNil())
		Expect(scheme.Value.In).To(Equal("header"))
		Expect(scheme.Value.Name).To(Equal("x-session-token"))
	})
})
