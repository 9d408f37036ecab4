package reconcile

// Field groups tracked in provenance.
const (
	FieldName         = "name"
	FieldWebsite      = "website"
	FieldEmployees    = "employees"
	FieldIndustry     = "industry"
	FieldHeadquarters = "headquarters"
	FieldType         = "type"
	FieldSpecialties  = "specialties"
	FieldFinancials   = "financials"
	FieldRegistry     = "registry"
	FieldSocial       = "social"
)

// Provenance records, per optional field group, which collaborator supplied
// the value of the merged record. It exists for observability; nothing in
// the engine makes a decision based on it.
type Provenance map[string]SourceID

// record notes the winning source for a field group.
func (p Provenance) record(field string, source SourceID) {
	p[field] = source
}

// Source returns the source that supplied a field group, if any.
func (p Provenance) Source(field string) (SourceID, bool) {
	id, ok := p[field]
	return id, ok
}
