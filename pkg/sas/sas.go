// Package sas parses IoT hub connection strings and creates shared access
// signature tokens for the service API.
package sas

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingHostName = errors.New("connection string is missing HostName")
	ErrMissingKey      = errors.New("connection string is missing SharedAccessKey")
)

// ConnectionString is a parsed hub-level connection string, for example
// "HostName=example-hub.azure-devices.net;SharedAccessKeyName=service;SharedAccessKey=...".
type ConnectionString struct {
	HostName            string
	SharedAccessKeyName string
	SharedAccessKey     string
}

// ParseConnectionString splits a connection string into its properties.
// Values may contain '=' characters, so each pair is cut at the first one.
func ParseConnectionString(value string) (*ConnectionString, error) {
	result := &ConnectionString{}

	for _, pair := range strings.Split(value, ";") {
		pair = strings.TrimSpace(pair)

		if pair == "" {
			continue
		}

		key, val, ok := strings.Cut(pair, "=")

		if !ok {
			return nil, fmt.Errorf("invalid connection string segment %q", pair)
		}

		switch key {
		case "HostName":
			result.HostName = val

		case "SharedAccessKeyName":
			result.SharedAccessKeyName = val

		case "SharedAccessKey":
			result.SharedAccessKey = val
		}
	}

	if result.HostName == "" {
		return nil, ErrMissingHostName
	}

	if result.SharedAccessKey == "" {
		return nil, ErrMissingKey
	}

	return result, nil
}

// Signer mints tokens for one shared access policy.
func (c *ConnectionString) Signer() (*Signer, error) {
	return NewSigner(c.SharedAccessKeyName, c.SharedAccessKey)
}

// Signer creates shared access signature tokens from a base64 policy key.
type Signer struct {
	keyName string
	key     []byte
}

// NewSigner decodes the base64 policy key. The key name may be empty for
// device-scoped keys.
func NewSigner(keyName, key string) (*Signer, error) {
	decoded, err := base64.StdEncoding.DecodeString(key)

	if err != nil {
		return nil, fmt.Errorf("decode shared access key: %w", err)
	}

	return &Signer{
		keyName: keyName,
		key:     decoded,
	}, nil
}

// Token signs the lowercased, URL-encoded resource URI together with the
// expiry and returns the complete Authorization header value.
func (s *Signer) Token(resource string, expiry time.Time) string {
	sr := url.QueryEscape(strings.ToLower(resource))
	se := strconv.FormatInt(expiry.Unix(), 10)

	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(sr + "\n" + se))

	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	token := "SharedAccessSignature sr=" + sr + "&sig=" + url.QueryEscape(signature) + "&se=" + se

	if s.keyName != "" {
		token += "&skn=" + url.QueryEscape(s.keyName)
	}

	return token
}
