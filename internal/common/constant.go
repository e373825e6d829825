package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// outbound API requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme prefixes the access token in the Authorization header.
const BearerScheme = "Bearer"

// Metadata keys under which the session is kept in the local store.
const (
	MetadataAccessToken = "access_token"
	MetadataUserName    = "user_name"
	MetadataUserID      = "user_id"
)
