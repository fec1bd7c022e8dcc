package importer

import (
	"sort"
	"strings"

	"github.com/frahmantamala/talento-plus/pkg/textnorm"
)

// HeaderMap maps lower-cased, trimmed header text to its 1-based column.
// When two headers normalize to the same key the later column wins.
type HeaderMap map[string]int

// ResolveHeaders builds the header map from the header row. Empty cells are
// ignored.
func ResolveHeaders(cells []string) HeaderMap {
	headers := make(HeaderMap, len(cells))
	for i, cell := range cells {
		key := strings.ToLower(strings.TrimSpace(cell))
		if key == "" {
			continue
		}
		headers[key] = i + 1
	}
	return headers
}

type Field int

const (
	FieldDocument Field = iota
	FieldBirthDate
	FieldHireDate
	FieldGivenNames
	FieldSurname
	FieldEmail
	FieldPhone
	FieldAddress
	FieldJobTitle
	FieldDepartment
	FieldEducationLevel
	FieldSalary
	FieldStatus
	FieldSummary
)

var fieldNames = map[Field]string{
	FieldDocument:       "document",
	FieldBirthDate:      "birth_date",
	FieldHireDate:       "hire_date",
	FieldGivenNames:     "given_names",
	FieldSurname:        "surname",
	FieldEmail:          "email",
	FieldPhone:          "phone",
	FieldAddress:        "address",
	FieldJobTitle:       "job_title",
	FieldDepartment:     "department",
	FieldEducationLevel: "education_level",
	FieldSalary:         "salary",
	FieldStatus:         "status",
	FieldSummary:        "summary",
}

func (f Field) String() string {
	return fieldNames[f]
}

// fieldAliases is the precedence table. Fields claim columns top to bottom;
// within a field aliases are tried left to right. For each alias an exact
// (accent-insensitive) header match wins, the later column when two headers
// differ only in accents; otherwise the lowest unclaimed column whose header
// contains the alias. Birth date is resolved before hire
// date so "fecha nacimiento" is never taken for the generic "fecha" alias.
var fieldAliases = []struct {
	field   Field
	aliases []string
}{
	{FieldDocument, []string{"documento", "cedula", "identificacion", "dni"}},
	{FieldBirthDate, []string{"fecha nacimiento", "fecha de nacimiento", "nacimiento"}},
	{FieldHireDate, []string{"fecha ingreso", "fecha de ingreso", "ingreso", "fecha"}},
	{FieldGivenNames, []string{"nombres", "nombre"}},
	{FieldSurname, []string{"apellidos", "apellido"}},
	{FieldEmail, []string{"email", "correo", "e-mail", "mail"}},
	{FieldPhone, []string{"telefono", "celular", "movil"}},
	{FieldAddress, []string{"direccion", "domicilio"}},
	{FieldJobTitle, []string{"cargo", "puesto"}},
	{FieldDepartment, []string{"departamento", "area"}},
	{FieldEducationLevel, []string{"nivel educativo", "nivel", "educativo", "educacion"}},
	{FieldSalary, []string{"salario", "sueldo"}},
	{FieldStatus, []string{"estado"}},
	{FieldSummary, []string{"perfil", "resumen"}},
}

// Layout is the resolved column of every field the sheet provides.
type Layout struct {
	columns map[Field]int
}

func NewLayout(headers HeaderMap) Layout {
	type header struct {
		key    string
		column int
	}
	ordered := make([]header, 0, len(headers))
	for key, col := range headers {
		ordered = append(ordered, header{key: textnorm.StripDiacritics(key), column: col})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].column < ordered[j].column })

	layout := Layout{columns: make(map[Field]int, len(fieldAliases))}
	claimed := make(map[int]bool, len(ordered))

	for _, entry := range fieldAliases {
		for _, alias := range entry.aliases {
			col := 0
			for i := len(ordered) - 1; i >= 0; i-- {
				if h := ordered[i]; !claimed[h.column] && h.key == alias {
					col = h.column
					break
				}
			}
			if col == 0 {
				for _, h := range ordered {
					if !claimed[h.column] && strings.Contains(h.key, alias) {
						col = h.column
						break
					}
				}
			}
			if col != 0 {
				layout.columns[entry.field] = col
				claimed[col] = true
				break
			}
		}
	}
	return layout
}

// Column returns the 1-based column of f.
func (l Layout) Column(f Field) (int, bool) {
	col, ok := l.columns[f]
	return col, ok
}

func (l Layout) Has(f Field) bool {
	_, ok := l.columns[f]
	return ok
}
