/*
Package community implements a client for the community.plex.tv GraphQL API,
which owns the watch history synced to a Plex account.

The watch history hub is paginated by the service; [Client.WatchHistory] walks
the cursor internally and returns the full list, in the order the service
returns it. [Client.RemoveWatchHistoryEntry] removes a single entry.
*/
package community
