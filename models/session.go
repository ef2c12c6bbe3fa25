package models

// Role is the role claim decoded from the session token.
type Role string

const (
	RolePatient  Role = "patient"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
	RoleNone     Role = "" // no valid token, or token without a decodable role claim
)

// Preference is the display preference ("theme") value.
type Preference string

const (
	PreferenceLight Preference = "light"
	PreferenceDark  Preference = "dark"
)

// Toggled returns the opposite preference.
func (p Preference) Toggled() Preference {
	if p == PreferenceDark {
		return PreferenceLight
	}
	return PreferenceDark
}

// Phase tracks session restoration on process start.
type Phase string

const (
	PhaseRestoring Phase = "restoring"
	PhaseReady     Phase = "ready"
)

// Session is the authenticated identity of the running client.
// Role and UserID are derived solely from Token; they are empty iff Token is empty.
type Session struct {
	Token      string     `json:"token,omitempty"`
	UserID     string     `json:"userId,omitempty"`
	Role       Role       `json:"role,omitempty"`
	Preference Preference `json:"preference"`
	Phase      Phase      `json:"phase"`
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Settings is the server-side user settings payload.
type Settings struct {
	DarkMode bool `json:"dark_mode"`
}

// PreferenceFromSettings maps the remote darkMode flag to a Preference.
func PreferenceFromSettings(s Settings) Preference {
	if s.DarkMode {
		return PreferenceDark
	}
	return PreferenceLight
}

// SettingsFromPreference maps a Preference to the remote settings payload.
func SettingsFromPreference(p Preference) Settings {
	return Settings{DarkMode: p == PreferenceDark}
}

// LoginResponse is the payload returned by the password login endpoint.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}
