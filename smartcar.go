// Package smartcar is a client for the Smartcar vehicle API. It covers the
// Connect authorization flow, token exchange and refresh, and authenticated
// vehicle data and command requests, including batch reads.
//
// The package keeps no session state: credentials, tokens and vehicle ids
// are passed explicitly on every call, so concurrent use needs no locking
// and token persistence stays entirely in the caller's hands.
package smartcar

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
)

const apiVersion = "v2.0"

const (
	defaultAPIOrigin     = "https://api.smartcar.com"
	defaultAuthOrigin    = "https://auth.smartcar.com"
	defaultConnectOrigin = "https://connect.smartcar.com"
)

// Origins are overridable through the environment, mainly so tests and the
// simulated environment can point the SDK at a different host.
func apiOrigin() string {
	return getEnv("SMARTCAR_API_ORIGIN", defaultAPIOrigin)
}

func authOrigin() string {
	return getEnv("SMARTCAR_AUTH_ORIGIN", defaultAuthOrigin)
}

func connectOrigin() string {
	return getEnv("SMARTCAR_CONNECT_ORIGIN", defaultConnectOrigin)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// PageOptions restricts a paged listing. Zero values leave the provider
// defaults in place.
type PageOptions struct {
	Limit  int
	Offset int
}

// GetVehicles returns the ids of the vehicles the authenticated user has
// granted the application access to.
func GetVehicles(ctx context.Context, accessToken string, opts *PageOptions) (*Vehicles, error) {
	r := newRequest(http.MethodGet, apiOrigin()+"/"+apiVersion+"/vehicles").
		withHeader("Authorization", bearerHeader(accessToken))

	if opts != nil {
		q := url.Values{}
		if opts.Limit > 0 {
			q.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			q.Set("offset", strconv.Itoa(opts.Offset))
		}
		r = r.withQuery(q)
	}

	res, err := r.send(ctx)
	if err != nil {
		return nil, err
	}

	var vehicles Vehicles
	if err := res.decode(&vehicles); err != nil {
		return nil, err
	}
	vehicles.Meta = res.meta
	return &vehicles, nil
}

// GetUser returns the id of the vehicle owner who granted access to the
// application.
func GetUser(ctx context.Context, accessToken string) (*User, error) {
	res, err := newRequest(http.MethodGet, apiOrigin()+"/"+apiVersion+"/user").
		withHeader("Authorization", bearerHeader(accessToken)).
		send(ctx)
	if err != nil {
		return nil, err
	}

	var user User
	if err := res.decode(&user); err != nil {
		return nil, err
	}
	user.Meta = res.meta
	return &user, nil
}

// CompatibilityOptions supplies the client credentials for a compatibility
// lookup. Empty fields fall back to the SMARTCAR_CLIENT_ID and
// SMARTCAR_CLIENT_SECRET environment variables.
type CompatibilityOptions struct {
	ClientID     string
	ClientSecret string
	Flags        map[string]string
}

// GetCompatibility checks whether the vehicle with the given VIN is
// compatible with the API and capable of the endpoints the scope requires.
// Country is an ISO 3166-1 alpha-2 code, e.g. "US".
func GetCompatibility(ctx context.Context, vin string, scope *Scope, country string, opts *CompatibilityOptions) (*Compatibility, error) {
	clientID := os.Getenv("SMARTCAR_CLIENT_ID")
	clientSecret := os.Getenv("SMARTCAR_CLIENT_SECRET")
	var flags map[string]string
	if opts != nil {
		if opts.ClientID != "" {
			clientID = opts.ClientID
		}
		if opts.ClientSecret != "" {
			clientSecret = opts.ClientSecret
		}
		flags = opts.Flags
	}
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("smartcar: compatibility requires client credentials")
	}

	q := url.Values{}
	q.Set("vin", vin)
	if scope != nil {
		q.Set("scope", scope.String())
	}
	q.Set("country", country)
	if len(flags) > 0 {
		q.Set("flags", formatFlags(flags))
	}

	res, err := newRequest(http.MethodGet, apiOrigin()+"/"+apiVersion+"/compatibility").
		withHeader("Authorization", basicAuthHeader(clientID, clientSecret)).
		withQuery(q).
		send(ctx)
	if err != nil {
		return nil, err
	}

	var compatibility Compatibility
	if err := res.decode(&compatibility); err != nil {
		return nil, err
	}
	compatibility.Meta = res.meta
	return &compatibility, nil
}
