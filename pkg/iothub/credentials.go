package iothub

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/edgetap/iothub-go/pkg/sas"
)

// aadScope is the Entra ID scope of the hub service API.
const aadScope = "https://iothubs.azure.net/.default"

// renewMargin is how long before expiry a cached token is replaced.
const renewMargin = 5 * time.Minute

// Credential produces the Authorization header value for a request.
type Credential interface {
	Authorization(ctx context.Context) (string, error)
}

// SharedAccessCredential mints shared access signature tokens for a hub
// policy and caches them until shortly before expiry.
type SharedAccessCredential struct {
	signer *sas.Signer

	resource string
	validity time.Duration

	mu      sync.Mutex
	token   string
	expires time.Time
}

func NewSharedAccessCredential(host, keyName, key string) (*SharedAccessCredential, error) {
	signer, err := sas.NewSigner(keyName, key)

	if err != nil {
		return nil, err
	}

	return &SharedAccessCredential{
		signer: signer,

		resource: host,
		validity: time.Hour,
	}, nil
}

func (c *SharedAccessCredential) Authorization(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.expires.Add(-renewMargin)) {
		return c.token, nil
	}

	expires := time.Now().Add(c.validity)

	c.token = c.signer.Token(c.resource, expires)
	c.expires = expires

	return c.token, nil
}

type tokenCredential struct {
	credential azcore.TokenCredential

	mu    sync.Mutex
	token azcore.AccessToken
}

// NewTokenCredential adapts an Entra ID credential, caching access
// tokens and sending them as bearer tokens.
func NewTokenCredential(credential azcore.TokenCredential) Credential {
	return &tokenCredential{
		credential: credential,
	}
}

func (c *tokenCredential) Authorization(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token.Token != "" && time.Now().Before(c.token.ExpiresOn.Add(-renewMargin)) {
		return "Bearer " + c.token.Token, nil
	}

	token, err := c.credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{aadScope},
	})

	if err != nil {
		return "", err
	}

	c.token = token

	return "Bearer " + token.Token, nil
}

// NewDefaultCredential tries the environment service principal first and
// falls back to the Azure CLI login.
func NewDefaultCredential() (Credential, error) {
	if credential, err := azidentity.NewEnvironmentCredential(nil); err == nil {
		return NewTokenCredential(credential), nil
	}

	if credential, err := azidentity.NewAzureCLICredential(nil); err == nil {
		return NewTokenCredential(credential), nil
	}

	return nil, errors.New("no azure credential available")
}
