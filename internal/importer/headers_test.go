package importer

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func permutations(items []string) [][]string {
	if len(items) <= 1 {
		return [][]string{append([]string(nil), items...)}
	}
	var out [][]string
	for i := range items {
		rest := make([]string, 0, len(items)-1)
		rest = append(rest, items[:i]...)
		rest = append(rest, items[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]string{items[i]}, p...))
		}
	}
	return out
}

func columnOf(l Layout, f Field) int {
	col, _ := l.Column(f)
	return col
}

var _ = Describe("ResolveHeaders", func() {
	It("lower-cases and trims keys with 1-based columns", func() {
		h := ResolveHeaders([]string{" Documento ", "NOMBRE", "", "Salario"})
		Expect(h).To(Equal(HeaderMap{"documento": 1, "nombre": 2, "salario": 4}))
	})

	It("keeps the last column when keys collide", func() {
		h := ResolveHeaders([]string{"Email", "Nombre", "email "})
		Expect(h["email"]).To(Equal(3))
	})
})

var _ = Describe("NewLayout", func() {
	expected := map[string]Field{
		"Documento":     FieldDocument,
		"Nombre":        FieldGivenNames,
		"Apellido":      FieldSurname,
		"Cargo":         FieldJobTitle,
		"Departamento":  FieldDepartment,
		"Salario":       FieldSalary,
		"Fecha Ingreso": FieldHireDate,
	}

	It("maps every concept to its column under any column order", func() {
		headers := make([]string, 0, len(expected))
		for h := range expected {
			headers = append(headers, h)
		}
		perms := permutations(headers)
		Expect(perms).To(HaveLen(5040))

		for _, perm := range perms {
			layout := NewLayout(ResolveHeaders(perm))
			for col, header := range perm {
				got, ok := layout.Column(expected[header])
				Expect(ok).To(BeTrue(), "field for %q missing in %v", header, perm)
				Expect(got).To(Equal(col+1), "field for %q in %v", header, perm)
			}
		}
	})

	It("matches headers regardless of accents", func() {
		layout := NewLayout(ResolveHeaders([]string{"Cédula", "Teléfono", "Dirección", "Educación"}))
		Expect(columnOf(layout, FieldDocument)).To(Equal(1))
		Expect(columnOf(layout, FieldPhone)).To(Equal(2))
		Expect(columnOf(layout, FieldAddress)).To(Equal(3))
		Expect(columnOf(layout, FieldEducationLevel)).To(Equal(4))
	})

	It("keeps the later column when headers differ only in accents", func() {
		layout := NewLayout(ResolveHeaders([]string{"Documento", "Teléfono", "Nombres", "Email", "Telefono"}))
		Expect(columnOf(layout, FieldPhone)).To(Equal(5))
		Expect(columnOf(layout, FieldDocument)).To(Equal(1))
		Expect(columnOf(layout, FieldGivenNames)).To(Equal(3))
	})

	It("never takes the birth date column for the hire date", func() {
		layout := NewLayout(ResolveHeaders([]string{"Fecha Nacimiento", "Fecha Ingreso"}))
		Expect(columnOf(layout, FieldBirthDate)).To(Equal(1))
		Expect(columnOf(layout, FieldHireDate)).To(Equal(2))

		onlyBirth := NewLayout(ResolveHeaders([]string{"Fecha Nacimiento"}))
		Expect(onlyBirth.Has(FieldHireDate)).To(BeFalse())
	})

	It("falls back to a bare date header for the hire date", func() {
		layout := NewLayout(ResolveHeaders([]string{"Nombre", "Fecha"}))
		Expect(columnOf(layout, FieldHireDate)).To(Equal(2))
	})

	It("prefers the higher-priority alias over column order", func() {
		layout := NewLayout(ResolveHeaders([]string{"Educativo", "Nivel Educativo"}))
		Expect(columnOf(layout, FieldEducationLevel)).To(Equal(2))
	})

	It("prefers an exact header over one that merely contains the alias", func() {
		layout := NewLayout(ResolveHeaders([]string{"Nombre Completo", "Nombre"}))
		Expect(columnOf(layout, FieldGivenNames)).To(Equal(2))
	})

	It("distinguishes given names from surnames", func() {
		layout := NewLayout(ResolveHeaders([]string{"Apellidos", "Nombres"}))
		Expect(columnOf(layout, FieldSurname)).To(Equal(1))
		Expect(columnOf(layout, FieldGivenNames)).To(Equal(2))
	})

	It("leaves unknown concepts unmapped", func() {
		layout := NewLayout(ResolveHeaders([]string{"Documento", "Color favorito"}))
		Expect(layout.Has(FieldSalary)).To(BeFalse())
		Expect(layout.Has(FieldDocument)).To(BeTrue())
	})
})
