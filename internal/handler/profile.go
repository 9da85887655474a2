package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aiverse/aiverse-api/internal/model"
	"github.com/aiverse/aiverse-api/internal/repository"
)

// ProfileHandler serves the account profile endpoints.  Both require a
// verified session and always re-read the store, unlike /auth/me.
type ProfileHandler struct {
	Accounts AccountStore
}

func NewProfileHandler(accounts AccountStore) *ProfileHandler {
	return &ProfileHandler{Accounts: accounts}
}

// accountView is the sanitized account representation.  The password hash
// has no field here, so it cannot leak through serialization.
type accountView struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	Avatar           string            `json:"avatar"`
	Plan             string            `json:"plan"`
	JoinDate         string            `json:"joinDate"`
	TotalGenerations uint64            `json:"totalGenerations"`
	Preferences      model.Preferences `json:"preferences"`
	Profile          model.Profile     `json:"profile"`
}

func sanitizedView(a model.Account) accountView {
	plan := a.Plan
	if plan == "" {
		plan = model.PlanFree
	}
	return accountView{
		ID:               a.ID,
		Name:             a.Name,
		Email:            a.Email,
		Avatar:           a.Avatar,
		Plan:             plan,
		JoinDate:         a.CreatedAt.Format("January 2006"),
		TotalGenerations: a.TotalGenerations,
		Preferences:      a.Preferences,
		Profile:          a.Profile,
	}
}

// GetProfile loads the caller's account and returns the sanitized view.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Accounts.GetByID(ctx, contextString(c, "user_id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": sanitizedView(a)})
}

// ----- update DTOs -----
//
// The request types enumerate every field a profile update may touch.
// Anything else in the payload (password, id, createdAt included) has no
// field to bind to and is dropped during decoding, which makes the
// allow-list a property of the types rather than of a strip step.

type updatePreferencesReq struct {
	EmailNotifications *bool `json:"emailNotifications"`
	MarketingEmails    *bool `json:"marketingEmails"`
	UsageAlerts        *bool `json:"usageAlerts"`
	DarkMode           *bool `json:"darkMode"`
	Animations         *bool `json:"animations"`
}

type updateProfileFieldsReq struct {
	Bio      *string `json:"bio"`
	Location *string `json:"location"`
	Website  *string `json:"website"`
}

type updateProfileReq struct {
	Name        *string                 `json:"name"`
	Avatar      *string                 `json:"avatar"`
	Plan        *string                 `json:"plan" validate:"omitempty,oneof=Free Pro Enterprise"`
	Preferences *updatePreferencesReq   `json:"preferences"`
	Profile     *updateProfileFieldsReq `json:"profile"`
}

// UpdateProfile merges the allow-listed fields into the account and
// refreshes updated_at.  Returns an acknowledgment, not the record.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid field value"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid := contextString(c, "user_id")
	if _, err := h.Accounts.GetByID(ctx, uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	upd := repository.ProfileUpdate{
		Name:   req.Name,
		Avatar: req.Avatar,
		Plan:   req.Plan,
	}
	if p := req.Preferences; p != nil {
		upd.EmailNotifications = p.EmailNotifications
		upd.MarketingEmails = p.MarketingEmails
		upd.UsageAlerts = p.UsageAlerts
		upd.DarkMode = p.DarkMode
		upd.Animations = p.Animations
	}
	if p := req.Profile; p != nil {
		upd.Bio = p.Bio
		upd.Location = p.Location
		upd.Website = p.Website
	}

	if err := h.Accounts.UpdateProfile(ctx, uid, upd); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile updated successfully"})
}
