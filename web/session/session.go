// Package session binds the authenticated admin to the panel cookie. The
// whole user record is stored so credential checks on settings changes do
// not hit the database on every request.
package session

import (
	"encoding/gob"

	"github.com/netpesa/netpesa/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	cookieName   = "netpesa"
	loginUserKey = "LOGIN_USER"
)

func init() {
	gob.Register(model.User{})
}

// Login stores the admin and bounds the session lifetime in one save.
// maxAge is in seconds; zero keeps the cookie for the browser session.
func Login(c *gin.Context, user *model.User, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	s.Set(loginUserKey, *user)
	return s.Save()
}

// Refresh replaces the stored admin after a credential change without
// touching the session lifetime.
func Refresh(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(loginUserKey, *user)
	return s.Save()
}

// GetLoginUser returns the stored admin, nil when anonymous.
func GetLoginUser(c *gin.Context) *model.User {
	s := sessions.Default(c)
	if obj := s.Get(loginUserKey); obj != nil {
		if user, ok := obj.(model.User); ok {
			return &user
		}
	}
	return nil
}

// IsLogin reports whether the request carries an authenticated session.
func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

// Logout drops the session state and expires the cookie.
func Logout(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	if err := s.Save(); err != nil {
		return err
	}
	c.SetCookie(cookieName, "", -1, "/", "", false, true)
	return nil
}
