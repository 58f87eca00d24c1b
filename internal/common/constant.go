// Package common contains shared constants and sentinel errors used across
// linekeeper components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on inbound admin requests.
const AccessTokenHeaderName = "access_token"

// EnvAccessToken is read by the admin CLI when no -t flag is given.
const EnvAccessToken = "LINEKEEPER_TOKEN"
