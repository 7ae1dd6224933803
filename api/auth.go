package api

import (
	"context"
	"encoding/json"
)

// Token synonym keys probed on the authentication response, in order.
var tokenKeys = []string{"token", "Token", "access_token", "AccessToken", "jwt"}

// LoginResult is a successful authentication. Token may be empty when
// the backend answered 2xx without any recognizable token field; the
// caller decides whether that still counts as a session.
type LoginResult struct {
	Token string
	Raw   map[string]any
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. Non-2xx responses
// come back as *StatusError carrying the backend's message when one
// could be mined from the body.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	payload, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return LoginResult{}, err
	}
	body, err := c.postJSON(ctx, c.authPath, payload)
	if err != nil {
		return LoginResult{}, err
	}

	// An empty 2xx body is a success without a token, as the backend
	// sometimes answers on password-change flows.
	raw := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil {
			return LoginResult{}, &DecodeError{Err: err}
		}
	}

	res := LoginResult{Raw: raw}
	for _, k := range tokenKeys {
		if s, ok := raw[k].(string); ok && s != "" {
			res.Token = s
			break
		}
	}
	return res, nil
}
