package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Error message synonym keys probed on non-2xx JSON bodies, in order.
var errorMessageKeys = []string{"message", "Message", "error", "Error"}

// StatusError is a non-2xx response. Message holds the text mined from
// the body's error-message keys, or "HTTP <code>" when the body was
// empty or undecodable.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string { return e.Message }

// DecodeError is a 2xx response whose body could not be parsed.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("Error al procesar respuesta: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// newStatusError mines the response body for a message.
func newStatusError(code int, body []byte) *StatusError {
	if len(body) > 0 {
		var m map[string]any
		if err := json.Unmarshal(body, &m); err == nil {
			for _, k := range errorMessageKeys {
				if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
					return &StatusError{Code: code, Message: s}
				}
			}
		}
	}
	return &StatusError{Code: code, Message: fmt.Sprintf("HTTP %d", code)}
}

// IsTimeout reports whether err is a deadline or network timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// UserMessage converts any service error into the text shown to the
// user. Timeouts and connection failures get fixed generic messages;
// protocol errors surface the mined message verbatim.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Error()
	}
	if IsTimeout(err) {
		return "Tiempo de espera agotado. El servidor tardó demasiado en responder."
	}
	if errors.Is(err, ErrNoLocationEndpoint) {
		return err.Error()
	}
	return fmt.Sprintf("Sin conexión (%v)", err)
}
