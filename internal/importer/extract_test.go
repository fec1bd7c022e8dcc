package importer

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

var _ = Describe("Row extraction", func() {
	var layout Layout

	BeforeEach(func() {
		layout = NewLayout(ResolveHeaders([]string{"Documento", "Nombre", "Salario", "Fecha Ingreso", "Telefono"}))
	})

	row := func(values []string, raw []string) Row {
		if raw == nil {
			raw = values
		}
		return Row{Number: 2, Values: values, Raw: raw}
	}

	Describe("String", func() {
		It("returns trimmed text", func() {
			Expect(layout.String(row([]string{"1", "  Ana "}, nil), FieldGivenNames)).To(Equal("Ana"))
		})

		It("returns empty for unmapped fields and short rows", func() {
			r := row([]string{"1"}, nil)
			Expect(layout.String(r, FieldSurname)).To(BeEmpty())
			Expect(layout.String(r, FieldGivenNames)).To(BeEmpty())
		})

		It("reads identity numbers without number formatting", func() {
			r := row([]string{"1.23E+09", "Ana"}, []string{"1234567890", "Ana"})
			Expect(layout.String(r, FieldDocument)).To(Equal("1234567890"))
		})
	})

	Describe("Decimal", func() {
		It("treats non-numeric content as zero", func() {
			Expect(layout.Decimal(row([]string{"1", "Ana", "mucho"}, nil), FieldSalary).IsZero()).To(BeTrue())
		})

		It("treats a missing column as zero", func() {
			other := NewLayout(ResolveHeaders([]string{"Documento"}))
			Expect(other.Decimal(row([]string{"1"}, nil), FieldSalary).IsZero()).To(BeTrue())
		})

		DescribeTable("amount formats",
			func(in string, want string) {
				got := layout.Decimal(row([]string{"1", "Ana", in}, nil), FieldSalary)
				Expect(got.Equal(decimal.RequireFromString(want))).To(BeTrue(), "got %s", got)
			},
			Entry("plain", "3000", "3000"),
			Entry("fraction", "3000.75", "3000.75"),
			Entry("currency", "$ 3,000.50", "3000.5"),
			Entry("european", "3.000,50", "3000.5"),
			Entry("decimal comma", "1500,5", "1500.5"),
			Entry("thousands comma", "3,000", "3000"),
		)
	})

	Describe("Date", func() {
		fallback := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

		It("reads serial dates from the raw value", func() {
			r := row([]string{"1", "Ana", "0", "01-15-23"}, []string{"1", "Ana", "0", "44941"})
			got := layout.Date(r, FieldHireDate, fallback, false)
			Expect(got.Format("2006-01-02")).To(Equal("2023-01-15"))
		})

		DescribeTable("text layouts",
			func(in string) {
				got := layout.Date(row([]string{"1", "Ana", "0", in}, nil), FieldHireDate, fallback, false)
				Expect(got.Format("2006-01-02")).To(Equal("2023-01-15"))
			},
			Entry("iso", "2023-01-15"),
			Entry("day first", "15/01/2023"),
			Entry("slashes iso", "2023/01/15"),
			Entry("timestamp", "2023-01-15 08:30:00"),
			Entry("day first dashes", "15-01-2023"),
			Entry("day first dashes short year", "15-01-23"),
			Entry("day first slashes short year", "15/01/23"),
			Entry("single digit month", "15-1-2023"),
		)

		DescribeTable("reads ambiguous text dates day first",
			func(in string) {
				got := layout.Date(row([]string{"1", "Ana", "0", in}, nil), FieldHireDate, fallback, false)
				Expect(got.Format("2006-01-02")).To(Equal("2023-03-05"))
			},
			Entry("dashes", "05-03-2023"),
			Entry("dashes short year", "05-03-23"),
			Entry("slashes", "05/03/2023"),
			Entry("slashes short year", "05/03/23"),
			Entry("no padding", "5/3/2023"),
			Entry("no padding short year", "5-3-23"),
		)

		It("falls back when nothing parses", func() {
			got := layout.Date(row([]string{"1", "Ana", "0", "pronto"}, nil), FieldHireDate, fallback, false)
			Expect(got).To(Equal(fallback))
		})

		It("does not read a bare year as a serial date", func() {
			got := layout.Date(row([]string{"1", "Ana", "0", "2023"}, nil), FieldHireDate, fallback, false)
			Expect(got).To(Equal(fallback))
		})
	})
})
