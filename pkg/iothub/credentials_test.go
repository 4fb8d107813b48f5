package iothub

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharedAccessCredential(t *testing.T) {
	credential, err := NewSharedAccessCredential("example-hub.azure-devices.net", "service", "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY=")
	require.NoError(t, err)

	authorization, err := credential.Authorization(context.Background())
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(authorization, "SharedAccessSignature "))

	values, err := url.ParseQuery(strings.TrimPrefix(authorization, "SharedAccessSignature "))
	require.NoError(t, err)

	assert.Equal(t, "example-hub.azure-devices.net", values.Get("sr"))
	assert.Equal(t, "service", values.Get("skn"))
	assert.NotEmpty(t, values.Get("sig"))
	assert.NotEmpty(t, values.Get("se"))
}

func TestSharedAccessCredentialCaches(t *testing.T) {
	credential, err := NewSharedAccessCredential("example-hub.azure-devices.net", "service", "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY=")
	require.NoError(t, err)

	first, err := credential.Authorization(context.Background())
	require.NoError(t, err)

	second, err := credential.Authorization(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSharedAccessCredentialInvalidKey(t *testing.T) {
	_, err := NewSharedAccessCredential("example-hub.azure-devices.net", "service", "not base64!")

	assert.Error(t, err)
}

type fakeAzureCredential struct {
	calls int

	token azcore.AccessToken
	err   error

	scopes []string
}

func (f *fakeAzureCredential) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	f.calls++
	f.scopes = options.Scopes

	return f.token, f.err
}

func TestTokenCredential(t *testing.T) {
	fake := &fakeAzureCredential{
		token: azcore.AccessToken{
			Token:     "aad-token",
			ExpiresOn: time.Now().Add(time.Hour),
		},
	}

	credential := NewTokenCredential(fake)

	authorization, err := credential.Authorization(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer aad-token", authorization)
	assert.Equal(t, []string{aadScope}, fake.scopes)

	_, err = credential.Authorization(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, fake.calls)
}

func TestTokenCredentialRenewsExpired(t *testing.T) {
	fake := &fakeAzureCredential{
		token: azcore.AccessToken{
			Token:     "aad-token",
			ExpiresOn: time.Now().Add(time.Minute),
		},
	}

	credential := NewTokenCredential(fake)

	_, err := credential.Authorization(context.Background())
	require.NoError(t, err)

	// within the renew margin, so the next call fetches again
	_, err = credential.Authorization(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, fake.calls)
}

func TestTokenCredentialError(t *testing.T) {
	fake := &fakeAzureCredential{
		err: errors.New("login required"),
	}

	credential := NewTokenCredential(fake)

	_, err := credential.Authorization(context.Background())

	assert.ErrorContains(t, err, "login required")
}
