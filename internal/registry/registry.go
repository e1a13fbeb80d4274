package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// DefaultURL is the public npm registry.
const DefaultURL = "https://registry.npmjs.org/"

// abbreviatedMetadata asks the registry for the install-only package document.
const abbreviatedMetadata = "application/vnd.npm.install-v1+json; q=1.0, application/json; q=0.8, */*"

// VersionLookupError reports a failure to resolve a package's latest version.
type VersionLookupError struct {
	Package string
	Err     error
}

func (e *VersionLookupError) Error() string {
	return fmt.Sprintf("resolve latest version of %s: %v", e.Package, e.Err)
}

func (e *VersionLookupError) Unwrap() error {
	return e.Err
}

type packument struct {
	DistTags map[string]string `json:"dist-tags"`
}

// Client resolves package versions against an npm-compatible registry.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New creates a registry client. An empty baseURL selects DefaultURL.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Latest returns the version the registry's "latest" dist-tag points at.
func (c *Client) Latest(ctx context.Context, name string) (string, error) {
	endpoint, err := c.packageURL(name)
	if err != nil {
		return "", &VersionLookupError{Package: name, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", &VersionLookupError{Package: name, Err: err}
	}
	req.Header.Set("Accept", abbreviatedMetadata)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", &VersionLookupError{Package: name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", &VersionLookupError{Package: name, Err: fmt.Errorf("registry returned status %d", resp.StatusCode)}
	}

	var doc packument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", &VersionLookupError{Package: name, Err: fmt.Errorf("decode package document: %w", err)}
	}

	latest, ok := doc.DistTags["latest"]
	if !ok || latest == "" {
		return "", &VersionLookupError{Package: name, Err: fmt.Errorf("no latest dist-tag")}
	}
	v, err := semver.StrictNewVersion(latest)
	if err != nil {
		return "", &VersionLookupError{Package: name, Err: fmt.Errorf("invalid version %q: %w", latest, err)}
	}
	return v.String(), nil
}

// packageURL escapes name the way npm clients do: scoped packages keep the
// leading @ and encode the slash.
func (c *Client) packageURL(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty package name")
	}
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid registry URL %q: %w", c.BaseURL, err)
	}
	return strings.TrimSuffix(base.String(), "/") + "/" + url.PathEscape(name), nil
}
