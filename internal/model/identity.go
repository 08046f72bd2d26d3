package model

// SubjectKind tells which account table an authenticated ID belongs to.
type SubjectKind string

const (
	SubjectUser      SubjectKind = "user"
	SubjectCaregiver SubjectKind = "caregiver"
)

// Identity is the authenticated caller, resolved once per request.
type Identity struct {
	SubjectID string
	Kind      SubjectKind
}

func (i Identity) IsUser() bool      { return i.Kind == SubjectUser }
func (i Identity) IsCaregiver() bool { return i.Kind == SubjectCaregiver }
