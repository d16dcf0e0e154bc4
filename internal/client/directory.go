package client

import (
	"context"
	"time"
)

// DirectoryClient talks to the person directory (attendee service).  The
// directory owns attendee records and their secret hashes; this platform
// never sees a stored secret, only the yes/no answer.
type DirectoryClient struct{ base }

// NewDirectoryClient returns a client for the attendee service at baseURL.
func NewDirectoryClient(baseURL string, timeout time.Duration) *DirectoryClient {
	return &DirectoryClient{base{service: "attendee", baseURL: baseURL, timeout: timeout}}
}

// SecretResult is the directory's answer to a secret check.  Name is only
// populated when Valid is true.
type SecretResult struct {
	Valid bool   `json:"valid"`
	Code  string `json:"code,omitempty"`
	Name  string `json:"name,omitempty"`
}

type validateSecretReq struct {
	Code   string `json:"code"`
	Secret string `json:"secret"`
}

// ValidateSecret asks the directory whether the claimed secret matches the
// stored hash for the attendee code.  An unknown code and a wrong secret are
// indistinguishable to the caller: both come back as Valid=false.
func (c *DirectoryClient) ValidateSecret(ctx context.Context, token, code, secret string) (SecretResult, error) {
	var out SecretResult
	err := c.doJSON(ctx, "POST", "/attendees/validate-secret", token,
		validateSecretReq{Code: code, Secret: secret}, &out)
	return out, err
}
