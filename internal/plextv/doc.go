/*
Package plextv authenticates with plex.tv and queries the plex.tv account API.

[Config] implements the Plex authentication flows needed to obtain a legacy
authentication token: username/password registration and the PIN (link) flow.
It does this in an approach similar to [oauth2], though Plex authentication is
not compatible with oauth2 itself: [Config.TokenSource] builds a [TokenSource]
from a fixed token, credentials, or a PIN callback, and the resulting source
caches the token it obtains.

[Client] uses a [TokenSource] to call the plex.tv API. Currently it only
supports the /api/v2/user endpoint, which is what the watch history commands
need: it validates the token and returns the account UUID.

[oauth2]: https://pkg.go.dev/golang.org/x/oauth2
*/
package plextv
