package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// TransportError is returned when a remote call fails, either before a response arrives or with a non-success status
type TransportError struct {
	Method     string
	Url        string
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (s *TransportError) Error() string {
	if s.StatusCode != 0 {
		if s.Code != "" {
			return fmt.Sprintf("%s %s: status %d: %s: %s", s.Method, s.Url, s.StatusCode, s.Code, s.Message)
		}
		return fmt.Sprintf("%s %s: status %d: %s", s.Method, s.Url, s.StatusCode, s.Message)
	}
	return fmt.Sprintf("%s %s: %v", s.Method, s.Url, s.Err)
}

func (s *TransportError) Unwrap() error {
	return s.Err
}

// IsClientError reports a 4xx other than authentication or throttling, meaning the service refused the request itself
func (s *TransportError) IsClientError() bool {
	switch s.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return false
	}
	return s.StatusCode >= http.StatusBadRequest && s.StatusCode < http.StatusInternalServerError
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newStatusError(req *http.Request, res *http.Response) *TransportError {
	transportErr := &TransportError{
		Method:     req.Method,
		Url:        req.URL.String(),
		StatusCode: res.StatusCode,
		Message:    res.Status,
	}

	defer res.Body.Close()
	if body, err := io.ReadAll(res.Body); err != nil {
		transportErr.Message = fmt.Sprintf("%s; failure reading response body", res.Status)
	} else {
		var errRes errorResponse
		if err := json.Unmarshal(body, &errRes); err == nil && errRes.Error.Code != "" {
			transportErr.Code = errRes.Error.Code
			transportErr.Message = errRes.Error.Message
		} else if len(body) > 0 {
			transportErr.Message = string(body)
		}
	}

	return transportErr
}
