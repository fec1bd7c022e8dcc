package dimension_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	dimensionDatamodel "github.com/frahmantamala/talento-plus/internal/core/datamodel/dimension"
	"github.com/frahmantamala/talento-plus/internal/dimension"
	dimensionPostgres "github.com/frahmantamala/talento-plus/internal/dimension/postgres"
	"github.com/frahmantamala/talento-plus/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Dimension Handler Integration", func() {
	var router *chi.Mux

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&dimensionDatamodel.JobTitle{}, &dimensionDatamodel.Department{}, &dimensionDatamodel.EducationLevel{})).To(Succeed())

		repo := dimensionPostgres.NewDimensionRepository(db)
		service := dimension.NewService(repo, slogger)
		rec := service.NewReconciler()
		for _, name := range []string{"Ventas", "IT"} {
			_, err := rec.Resolve(context.Background(), dimension.KindDepartment, name)
			Expect(err).NotTo(HaveOccurred())
		}

		handler := dimension.NewHandler(&transport.BaseHandler{Logger: slogger}, service)
		router = chi.NewRouter()
		router.Get("/dimensions/{kind}", handler.GetDimensions)
	})

	It("lists a kind sorted by name", func() {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dimensions/departamentos", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))

		var body dimension.DimensionsResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Kind).To(Equal(dimension.KindDepartment))
		Expect(body.Dimensions).To(HaveLen(2))
		Expect(body.Dimensions[0].Name).To(Equal("IT"))
		Expect(body.Dimensions[1].Name).To(Equal("Ventas"))
	})

	It("answers 404 for an unknown kind", func() {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dimensions/shifts", nil))
		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})
})
