package model

import "time"

// Plan tiers offered by the product.  New accounts always start on Free;
// upgrades happen through the profile update path.
const (
	PlanFree       = "Free"
	PlanPro        = "Pro"
	PlanEnterprise = "Enterprise"
)

// Preferences holds the per-account notification and UI toggles.  Each
// toggle is independently settable through a profile update.
type Preferences struct {
	EmailNotifications bool `json:"emailNotifications"`
	MarketingEmails    bool `json:"marketingEmails"`
	UsageAlerts        bool `json:"usageAlerts"`
	DarkMode           bool `json:"darkMode"`
	Animations         bool `json:"animations"`
}

// DefaultPreferences returns the toggles applied to newly created accounts.
func DefaultPreferences() Preferences {
	return Preferences{
		EmailNotifications: true,
		MarketingEmails:    false,
		UsageAlerts:        true,
		DarkMode:           true,
		Animations:         true,
	}
}

// Profile holds the free-form public fields of an account.  All of them are
// optional and default to empty strings.
type Profile struct {
	Bio      string `json:"bio"`
	Location string `json:"location"`
	Website  string `json:"website"`
}

// Account mirrors a row in the `accounts` table.
//
// PasswordHash carries the bcrypt digest of the account password and is
// never serialized outward; handlers build separate response types that
// have no field for it.  TotalGenerations only grows, and only through
// generation-completed events consumed by the worker.  LastLoginAt is nil
// until the first successful login.
type Account struct {
	ID               string      // accounts.id (opaque UUID)
	Email            string      // accounts.email (unique, case-preserving)
	PasswordHash     string      // accounts.password_hash
	Name             string      // accounts.name
	Avatar           string      // accounts.avatar
	Plan             string      // accounts.plan
	TotalGenerations uint64      // accounts.total_generations
	Preferences      Preferences // accounts.email_notifications .. animations
	Profile          Profile     // accounts.bio, location, website
	CreatedAt        time.Time   // accounts.created_at (set once)
	UpdatedAt        time.Time   // accounts.updated_at
	LastLoginAt      *time.Time  // accounts.last_login_at (nullable)
}
