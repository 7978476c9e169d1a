package session

// Role classifies a backend user account.
type Role string

const (
	// RoleAdmin is an exported constant or variable used by the session client.
	RoleAdmin Role = "ADMIN"
	// RoleProfessional is an exported constant or variable used by the session client.
	RoleProfessional Role = "PROFESSIONAL"
	// RoleInactive is an exported constant or variable used by the session client.
	RoleInactive Role = "INACTIVE"
)

// Status is the approval state of a professional profile. It gates access to
// the main application independently of authentication success.
type Status string

const (
	// StatusActive is an exported constant or variable used by the session client.
	StatusActive Status = "ACTIVE"
	// StatusInactive is an exported constant or variable used by the session client.
	StatusInactive Status = "INACTIVE"
)

// User is the canonical user identity as recorded by the application backend.
// Role always comes from the backend record, never from token claims; the
// claims only prove identity.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Profile carries the demographic and professional fields attached to a user,
// plus the approval [Status] that drives route gating.
type Profile struct {
	FullName         string `json:"full_name,omitempty"`
	Specialty        string `json:"specialty"`
	Phone            string `json:"phone"`
	RUT              string `json:"rut,omitempty"`
	Bio              string `json:"bio,omitempty"`
	BirthDate        string `json:"birth_date,omitempty"`
	Gender           string `json:"gender,omitempty"`
	Nationality      string `json:"nationality,omitempty"`
	ResidenceCountry string `json:"residence_country,omitempty"`
	University       string `json:"university,omitempty"`
	Status           Status `json:"status"`
	AvatarURL        string `json:"avatar_url,omitempty"`
}

// ProfilePatch is a partial profile update. Nil fields are left untouched by
// [Store.UpdateProfile].
type ProfilePatch struct {
	FullName         *string
	Specialty        *string
	Phone            *string
	RUT              *string
	Bio              *string
	BirthDate        *string
	Gender           *string
	Nationality      *string
	ResidenceCountry *string
	University       *string
	Status           *Status
	AvatarURL        *string
}

func (p ProfilePatch) apply(dst *Profile) {
	if p.FullName != nil {
		dst.FullName = *p.FullName
	}
	if p.Specialty != nil {
		dst.Specialty = *p.Specialty
	}
	if p.Phone != nil {
		dst.Phone = *p.Phone
	}
	if p.RUT != nil {
		dst.RUT = *p.RUT
	}
	if p.Bio != nil {
		dst.Bio = *p.Bio
	}
	if p.BirthDate != nil {
		dst.BirthDate = *p.BirthDate
	}
	if p.Gender != nil {
		dst.Gender = *p.Gender
	}
	if p.Nationality != nil {
		dst.Nationality = *p.Nationality
	}
	if p.ResidenceCountry != nil {
		dst.ResidenceCountry = *p.ResidenceCountry
	}
	if p.University != nil {
		dst.University = *p.University
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.AvatarURL != nil {
		dst.AvatarURL = *p.AvatarURL
	}
}

// State is a full snapshot of the session held by the [Store].
//
// Invariant: Authenticated is true iff Token is non-empty and User is non-nil.
// Every Store mutation preserves it, so no reader ever observes an
// authenticated state without an identity.
type State struct {
	Token         string
	User          *User
	Profile       *Profile
	Authenticated bool
}

func (s State) clone() State {
	out := State{Token: s.Token, Authenticated: s.Authenticated}
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.Profile != nil {
		p := *s.Profile
		out.Profile = &p
	}
	return out
}
