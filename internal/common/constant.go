package common

import "time"

// AccessTokenHeaderName is the gRPC metadata key (and HTTP header) used to
// carry the access token.
const AccessTokenHeaderName = "access_token"

// LegacyTokenHeaderName is the HTTP header the browser frontend sends.
const LegacyTokenHeaderName = "x-auth-token"

// DefaultTokenValidity is how long an issued session token stays valid.
const DefaultTokenValidity = 24 * time.Hour
