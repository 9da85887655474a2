package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aiverse/aiverse-api/internal/model"
	"github.com/aiverse/aiverse-api/internal/utils"
)

// AccountRepo reads and writes rows of the `accounts` table.  It is the
// only component that ever sees the password_hash column.
type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

const accountColumns = `id, email, password_hash, name, avatar, plan, total_generations,
		bio, location, website,
		email_notifications, marketing_emails, usage_alerts, dark_mode, animations,
		created_at, updated_at, last_login_at`

// Create inserts a new account with the default plan, preferences and an
// empty profile.  The password is hashed here so the plaintext never
// reaches a row value.  Duplicate emails surface as ErrEmailExists; the
// unique index decides the winner when two registrations race.
func (r *AccountRepo) Create(ctx context.Context, name, email, password string, cost int) (string, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	prefs := model.DefaultPreferences()
	now := time.Now().UTC()

	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO accounts
		 (id, email, password_hash, name, avatar, plan, total_generations,
		  bio, location, website,
		  email_notifications, marketing_emails, usage_alerts, dark_mode, animations,
		  created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		id, strings.TrimSpace(email), hash, name, "", model.PlanFree, 0,
		"", "", "",
		prefs.EmailNotifications, prefs.MarketingEmails, prefs.UsageAlerts, prefs.DarkMode, prefs.Animations,
		now, now)
	if err != nil {
		// 1062 is MySQL's duplicate-key error.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return "", ErrEmailExists
		}
		return "", err
	}
	return id, nil
}

// GetByEmail fetches an account by email.  The email column uses a
// case-insensitive collation, so lookups match regardless of case while the
// stored value keeps the case the user registered with.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE email=? LIMIT 1",
		strings.TrimSpace(email))
	return scanAccount(row)
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (model.Account, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id=? LIMIT 1", id)
	return scanAccount(row)
}

// TouchLastLogin stamps last_login_at after a successful credential check.
func (r *AccountRepo) TouchLastLogin(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET last_login_at=? WHERE id=?", time.Now().UTC(), id)
	return err
}

// ProfileUpdate enumerates the columns a profile update may touch.  Fields
// left nil are not written.  Credential and identity columns have no
// counterpart here, so they are unreachable through this path.
type ProfileUpdate struct {
	Name               *string
	Avatar             *string
	Plan               *string
	Bio                *string
	Location           *string
	Website            *string
	EmailNotifications *bool
	MarketingEmails    *bool
	UsageAlerts        *bool
	DarkMode           *bool
	Animations         *bool
}

// UpdateProfile merges the non-nil fields of upd into the account row and
// refreshes updated_at.
func (r *AccountRepo) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) error {
	var sets []string
	var args []any
	set := func(col string, v any) {
		sets = append(sets, col+"=?")
		args = append(args, v)
	}
	if upd.Name != nil {
		set("name", *upd.Name)
	}
	if upd.Avatar != nil {
		set("avatar", *upd.Avatar)
	}
	if upd.Plan != nil {
		set("plan", *upd.Plan)
	}
	if upd.Bio != nil {
		set("bio", *upd.Bio)
	}
	if upd.Location != nil {
		set("location", *upd.Location)
	}
	if upd.Website != nil {
		set("website", *upd.Website)
	}
	if upd.EmailNotifications != nil {
		set("email_notifications", *upd.EmailNotifications)
	}
	if upd.MarketingEmails != nil {
		set("marketing_emails", *upd.MarketingEmails)
	}
	if upd.UsageAlerts != nil {
		set("usage_alerts", *upd.UsageAlerts)
	}
	if upd.DarkMode != nil {
		set("dark_mode", *upd.DarkMode)
	}
	if upd.Animations != nil {
		set("animations", *upd.Animations)
	}
	set("updated_at", time.Now().UTC())
	args = append(args, id)

	_, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	return err
}

// IncrementGenerations adds delta to the usage counter.  Called only by the
// generation-completed consumer, which keeps the counter monotonic.
func (r *AccountRepo) IncrementGenerations(ctx context.Context, id string, delta uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET total_generations = total_generations + ?, updated_at=? WHERE id=?",
		delta, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAccount(row *sql.Row) (model.Account, error) {
	var a model.Account
	err := row.Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Avatar, &a.Plan, &a.TotalGenerations,
		&a.Profile.Bio, &a.Profile.Location, &a.Profile.Website,
		&a.Preferences.EmailNotifications, &a.Preferences.MarketingEmails,
		&a.Preferences.UsageAlerts, &a.Preferences.DarkMode, &a.Preferences.Animations,
		&a.CreatedAt, &a.UpdatedAt, &a.LastLoginAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, ErrNotFound
	}
	return a, err
}
