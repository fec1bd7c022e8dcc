package importer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/talento-plus/internal/importer"
	"github.com/frahmantamala/talento-plus/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func uploadRequest(field string, content io.Reader) *http.Request {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile(field, "empleados.xlsx")
	Expect(err).NotTo(HaveOccurred())
	_, err = io.Copy(part, content)
	Expect(err).NotTo(HaveOccurred())
	Expect(mw.Close()).To(Succeed())

	req := httptest.NewRequest(http.MethodPost, "/employees/import", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

var _ = Describe("Importer Handler", func() {
	var (
		f       *fixture
		handler *importer.Handler
	)

	BeforeEach(func() {
		f = newFixture()
		handler = importer.NewHandler(&transport.BaseHandler{Logger: f.lg}, f.service, 0)
	})

	It("returns the batch report", func() {
		rec := httptest.NewRecorder()
		handler.ImportEmployees(rec, uploadRequest("file", workbook(
			standardHeader,
			[]interface{}{"123", "Ana", "Ruiz", "Desarrollador", "IT", "3000", "2023-01-15"},
			[]interface{}{"", "", "Gil", "", "", "", ""},
		)))

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var report importer.Result
		Expect(json.Unmarshal(rec.Body.Bytes(), &report)).To(Succeed())
		Expect(report.BatchID).NotTo(BeEmpty())
		Expect(report.Imported).To(HaveLen(1))
		Expect(report.Imported[0].Email).To(Equal("123@empresa.com"))
		Expect(report.SkippedRows).To(Equal([]int{3}))
		Expect(report.AccountsCreated).To(Equal(1))
	})

	It("rejects an upload without the file field", func() {
		rec := httptest.NewRecorder()
		handler.ImportEmployees(rec, uploadRequest("attachment", workbook(standardHeader)))

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("file is required"))
	})

	It("rejects a body that is not multipart", func() {
		req := httptest.NewRequest(http.MethodPost, "/employees/import", bytes.NewBufferString(`{"file":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.ImportEmployees(rec, req)

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("maps an unreadable workbook to a validation error", func() {
		rec := httptest.NewRecorder()
		handler.ImportEmployees(rec, uploadRequest("file", bytes.NewBufferString("not a workbook")))

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("INVALID_SPREADSHEET"))
	})

	It("answers 408 when the request is cancelled mid-import", func() {
		req := uploadRequest("file", workbook(
			standardHeader,
			[]interface{}{"123", "Ana", "Ruiz", "Desarrollador", "IT", "3000", "2023-01-15"},
		))
		cancelled, cancel := context.WithCancel(req.Context())
		cancel()

		rec := httptest.NewRecorder()
		handler.ImportEmployees(rec, req.WithContext(cancelled))

		Expect(rec.Code).To(Equal(http.StatusRequestTimeout))
		Expect(rec.Body.String()).To(ContainSubstring("IMPORT_CANCELLED"))
		Expect(f.allEmployees(context.Background())).To(BeEmpty())
	})

	It("refuses uploads over the size limit", func() {
		small := importer.NewHandler(&transport.BaseHandler{Logger: f.lg}, f.service, 512)
		rec := httptest.NewRecorder()
		small.ImportEmployees(rec, uploadRequest("file", workbook(standardHeader)))

		Expect(rec.Code).To(Equal(http.StatusRequestEntityTooLarge))
		Expect(f.allEmployees(context.Background())).To(BeEmpty())
	})
})
