// Package google handles OAuth2 credentials for the Google Calendar API.
//
// The client secret is the JSON file downloaded from the Google Cloud
// console. Tokens live in a single JSON file (token.json by default) and
// are refreshed and re-saved transparently. When no token exists the
// loopback authorizer prints a consent URL and waits for Google to
// redirect back to a local listener with the authorization code.
package google
