package session

import (
	"context"
	"errors"

	"textsim/internal/analyzer"
	"textsim/internal/logger"
)

var ErrNotLoggedIn = errors.New("login required")

type Authenticator interface {
	Authenticate(username, password string) error
}

type Analyzer interface {
	Analyze(ctx context.Context, text1, text2, modelName string) (analyzer.Result, error)
}

type Controller struct {
	gate     Authenticator
	analyzer Analyzer
	logger   logger.ILogger
}

func NewController(gate Authenticator, a Analyzer, log logger.ILogger) *Controller {
	return &Controller{
		gate:     gate,
		analyzer: a,
		logger:   log,
	}
}

// Login marks the session as logged in. On failure the state is left as is.
func (c *Controller) Login(st *State, username, password string) error {
	if err := c.gate.Authenticate(username, password); err != nil {
		return err
	}
	st.LoggedIn = true
	c.logger.Info("session", "logged in", map[string]interface{}{"session_id": st.ID.String()})
	return nil
}

// Process compares st.Text1 and st.Text2 with modelName and stores the result.
// The previous result survives any error.
func (c *Controller) Process(ctx context.Context, st *State, modelName string) error {
	if !st.LoggedIn {
		return ErrNotLoggedIn
	}

	res, err := c.analyzer.Analyze(ctx, st.Text1, st.Text2, modelName)
	if err != nil {
		c.logger.Warn("session", "comparison failed", map[string]interface{}{
			"session_id": st.ID.String(),
			"model":      modelName,
			"error":      err.Error(),
		})
		return err
	}

	st.Result = &res
	return nil
}

func (c *Controller) Clear(st *State) {
	st.Text1 = ""
	st.Text2 = ""
	st.Result = nil
}

// Logout drops the login and the result. Texts are kept.
func (c *Controller) Logout(st *State) {
	st.LoggedIn = false
	st.Result = nil
	c.logger.Info("session", "logged out", map[string]interface{}{"session_id": st.ID.String()})
}
