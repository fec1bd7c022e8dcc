package dimension

import (
	"errors"
	"fmt"
	"strings"

	dimensionDatamodel "github.com/frahmantamala/talento-plus/internal/core/datamodel/dimension"
)

// Kind identifies one of the lookup tables an employee references.
type Kind string

const (
	KindJobTitle       Kind = "job_title"
	KindDepartment     Kind = "department"
	KindEducationLevel Kind = "education_level"
)

// Kinds lists every dimension in a stable order.
var Kinds = []Kind{KindJobTitle, KindDepartment, KindEducationLevel}

var (
	ErrUnknownKind = errors.New("unknown dimension kind")
	ErrEmptyName   = errors.New("dimension name is empty")
)

var kindAliases = map[string]Kind{
	"job_title":        KindJobTitle,
	"job_titles":       KindJobTitle,
	"cargo":            KindJobTitle,
	"cargos":           KindJobTitle,
	"department":       KindDepartment,
	"departments":      KindDepartment,
	"departamento":     KindDepartment,
	"departamentos":    KindDepartment,
	"education_level":  KindEducationLevel,
	"education_levels": KindEducationLevel,
	"nivel_educativo":  KindEducationLevel,
	"niveles":          KindEducationLevel,
}

// ParseKind accepts the canonical kind or its plural/Spanish route forms.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Table returns the backing table name.
func (k Kind) Table() string {
	switch k {
	case KindJobTitle:
		return dimensionDatamodel.JobTitle{}.TableName()
	case KindDepartment:
		return dimensionDatamodel.Department{}.TableName()
	case KindEducationLevel:
		return dimensionDatamodel.EducationLevel{}.TableName()
	}
	return ""
}

func (k Kind) Valid() bool {
	return k.Table() != ""
}

type Dimension struct {
	ID   int64  `json:"id"`
	Kind Kind   `json:"kind"`
	Name string `json:"name"`
}

// Key is the case-insensitive identity of a dimension name.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func FromDataModel(kind Kind, r *dimensionDatamodel.Record) *Dimension {
	return &Dimension{
		ID:   r.ID,
		Kind: kind,
		Name: r.Name,
	}
}

func ToDataModel(d *Dimension) *dimensionDatamodel.Record {
	return &dimensionDatamodel.Record{
		ID:   d.ID,
		Name: d.Name,
	}
}
