package entity

// Idea is one ranked research idea produced by the idea-synthesis
// collaborator from a batch of headlines. The synthesis service is an
// external collaborator; this type only pins down the record shape the
// rest of the system consumes.
type Idea struct {
	// Title is the short statement of the idea.
	Title string

	// Rationale explains why the collaborator considers the idea promising.
	// May be empty when the idea comes from the degraded fallback path.
	Rationale string

	// Category is the topical bucket assigned to the idea.
	Category string
}
