package community

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/clambin/go-common/set"
)

// ErrNotRemoved indicates that the service accepted the removeActivity call but did not remove the entry.
var ErrNotRemoved = errors.New("entry was not removed")

const getWatchHistoryQuery = `query GetWatchHistoryHub($uuid: ID = "", $first: PaginationInt!, $after: String, $skipUserState: Boolean = false) {
  user(id: $uuid) {
    watchHistory(first: $first, after: $after) {
      nodes {
        id
        date
        metadataItem {
          id
          title
          type
          year
          index
          parent {
            title
            index
            type
          }
          grandparent {
            title
            type
          }
        }
      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
}`

const removeWatchHistoryQuery = `mutation removeActivity($input: RemoveActivityInput!) {
  removeActivity(input: $input)
}`

type pageInfo struct {
	EndCursor   string `json:"endCursor"`
	HasNextPage bool   `json:"hasNextPage"`
}

// WatchHistory returns all watch history entries for the user identified by
// userUUID, in the order the service returns them. The hub is cursor-paginated;
// entries repeated across page boundaries are dropped.
func (c *Client) WatchHistory(ctx context.Context, userUUID string) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	seen := set.New[string]()
	variables := map[string]any{
		"uuid":          userUUID,
		"first":         c.pageSize,
		"after":         nil,
		"skipUserState": true,
	}

	for {
		var response struct {
			User struct {
				WatchHistory struct {
					Nodes    []HistoryEntry `json:"nodes"`
					PageInfo pageInfo       `json:"pageInfo"`
				} `json:"watchHistory"`
			} `json:"user"`
		}
		request := graphQLRequest{
			OperationName: "GetWatchHistoryHub",
			Query:         getWatchHistoryQuery,
			Variables:     variables,
		}
		if err := c.query(ctx, request, &response); err != nil {
			return nil, fmt.Errorf("watch history: %w", err)
		}

		for _, entry := range response.User.WatchHistory.Nodes {
			if seen.Contains(entry.ID) {
				continue
			}
			seen.Add(entry.ID)
			entries = append(entries, entry)
		}

		page := response.User.WatchHistory.PageInfo
		if !page.HasNextPage {
			return entries, nil
		}
		c.logger.Debug("fetching next watch history page", "cursor", page.EndCursor, "entries", len(entries))
		variables["after"] = page.EndCursor
	}
}

// RemoveWatchHistoryEntry removes a single watch history entry from the account.
func (c *Client) RemoveWatchHistoryEntry(ctx context.Context, id string) error {
	var response struct {
		RemoveActivity bool `json:"removeActivity"`
	}
	request := graphQLRequest{
		OperationName: "removeActivity",
		Query:         removeWatchHistoryQuery,
		Variables: map[string]any{
			"input": map[string]any{
				"id":   id,
				"type": "WATCH_HISTORY",
			},
		},
	}
	if err := c.query(ctx, request, &response); err != nil {
		return fmt.Errorf("remove activity: %w", err)
	}
	if !response.RemoveActivity {
		return ErrNotRemoved
	}
	return nil
}
