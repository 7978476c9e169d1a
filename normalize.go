package medauth

import (
	"encoding/json"
	"fmt"
)

// normalizeMe converts the raw /auth/me payload into canonical session types.
// The backend has shipped both Go-style exported casing (User, ID, ProfileData)
// and snake_case (user, id, profile_data) for the same fields, and the profile
// block sometimes arrives as a JSON-encoded string. Normalization accepts all
// observed shapes; only a payload with no recognizable user object is an error.
func normalizeMe(payload map[string]any) (User, Profile, error) {
	userData := objectField(payload, "user", "User")
	if userData == nil {
		return User{}, Profile{}, fmt.Errorf("user object missing from identity payload")
	}

	rawProfile := objectField(userData, "ProfileData", "profile_data")
	if rawProfile == nil {
		if encoded := stringField(userData, "ProfileData", "profile_data"); encoded != "" {
			var decoded map[string]any
			if err := json.Unmarshal([]byte(encoded), &decoded); err == nil {
				rawProfile = decoded
			}
		}
	}
	if rawProfile == nil {
		rawProfile = map[string]any{}
	}

	user := User{
		ID:    stringField(userData, "ID", "id"),
		Email: stringField(userData, "Email", "email"),
		Role:  Role(stringField(userData, "Role", "role")),
	}

	profile := Profile{
		Status:           Status(stringField(userData, "Status", "status")),
		FullName:         stringField(rawProfile, "full_name", "name"),
		Specialty:        stringField(rawProfile, "specialty"),
		Phone:            stringField(rawProfile, "phone"),
		Gender:           stringField(rawProfile, "gender"),
		Bio:              stringField(rawProfile, "bio"),
		BirthDate:        stringField(rawProfile, "birth_date"),
		RUT:              stringField(rawProfile, "rut"),
		Nationality:      stringField(rawProfile, "nationality"),
		ResidenceCountry: stringField(rawProfile, "residence_country"),
		University:       stringField(rawProfile, "university"),
		AvatarURL:        firstNonEmpty(
			stringField(userData, "AvatarURL"),
			stringField(rawProfile, "avatar_url"),
			stringField(rawProfile, "picture"),
		),
	}

	return user, profile, nil
}

// objectField returns the first of keys present in m as an object, or nil.
func objectField(m map[string]any, keys ...string) map[string]any {
	for _, key := range keys {
		if obj, ok := m[key].(map[string]any); ok {
			return obj
		}
	}
	return nil
}

// stringField returns the first of keys present in m as a non-empty string.
func stringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
