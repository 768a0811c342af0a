package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/caseops/casectl/pkg/records"
)

// User is the authenticated identity as /auth/me reports it.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Session is what a successful login yields. ExpiresAt is zero when the
// backend sent no expiry.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

func parseUser(v gjson.Result) User {
	return User{
		ID:       v.Get("id").String(),
		Username: v.Get("username").String(),
		Email:    v.Get("email").String(),
		Role:     v.Get("role").String(),
	}
}

// Login authenticates and returns the session. The client itself is not
// mutated; callers decide whether to persist and adopt the session.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	res, err := c.do(ctx, http.MethodPost, "/auth/login", body)
	if err != nil {
		return nil, err
	}

	root := gjson.ParseBytes(res.BodyBytes)
	token := root.Get("token").String()
	if token == "" {
		token = root.Get("access_token").String()
	}
	if token == "" {
		return nil, errors.New("login response carried no token")
	}

	sess := &Session{Token: token, User: parseUser(root.Get("user"))}
	if v := root.Get("expires_at"); v.Type == gjson.String {
		if ts, err := time.Parse(time.RFC3339, v.Str); err == nil {
			sess.ExpiresAt = ts
		}
	} else if v := root.Get("expires_in"); v.Type == gjson.Number {
		sess.ExpiresAt = time.Now().Add(time.Duration(v.Int()) * time.Second)
	}
	return sess, nil
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	res, err := c.do(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	u := parseUser(gjson.ParseBytes(res.BodyBytes))
	return &u, nil
}

// MeRecord fetches the profile as a raw record so it can go through the
// generic form builder.
func (c *Client) MeRecord(ctx context.Context) (*records.Record, error) {
	res, err := c.do(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	return records.Parse(res.BodyBytes)
}

// UpdateMe patches the authenticated user's profile with a change-set.
func (c *Client) UpdateMe(ctx context.Context, changes map[string]any) (*User, error) {
	if len(changes) == 0 {
		return nil, ErrNoChanges
	}
	body, err := json.Marshal(changes)
	if err != nil {
		return nil, fmt.Errorf("encoding change-set: %w", err)
	}
	res, err := c.do(ctx, http.MethodPatch, "/auth/me", body)
	if err != nil {
		return nil, err
	}
	if len(res.BodyBytes) == 0 {
		return c.Me(ctx)
	}
	u := parseUser(gjson.ParseBytes(res.BodyBytes))
	return &u, nil
}
