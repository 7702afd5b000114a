package model

// Specialty identifies a medical capability a hospital may provide. The set is
// closed: tags outside it are treated as not provided.
type Specialty string

const (
	SpecTrauma     Specialty = "trauma"
	SpecCardiac    Specialty = "cardiac"
	SpecMaternity  Specialty = "maternity"
	SpecPediatrics Specialty = "pediatrics"
	SpecGeneral    Specialty = "general"
)

// SpecNone marks a patient without a specialty requirement.
const SpecNone Specialty = ""

// KnownSpecialties lists every specialty tag a hospital can carry.
var KnownSpecialties = []Specialty{SpecTrauma, SpecCardiac, SpecMaternity, SpecPediatrics, SpecGeneral}
