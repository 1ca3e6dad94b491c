// Package pagination implements the opaque cursors used by the request
// feeds. A cursor pins a position in the created_at DESC, id DESC ordering
// as a base64-encoded "created_at|id" pair, so pages stay stable while new
// requests arrive at the head of the feed.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLimit is the page size when the query string omits a limit.
	DefaultLimit = 25
	// MaxLimit caps how many rows a single feed page can return.
	MaxLimit = 100
)

// Params carries the raw limit and cursor taken from the query string.
type Params struct {
	Limit  int
	Cursor string
}

// PageSize clamps the requested limit to [1, MaxLimit], falling back to
// DefaultLimit when unset.
func (p Params) PageSize() int {
	switch {
	case p.Limit <= 0:
		return DefaultLimit
	case p.Limit > MaxLimit:
		return MaxLimit
	}
	return p.Limit
}

// FetchSize is PageSize plus one sentinel row, so a repository query can
// reveal whether a further page exists without a second round trip.
func (p Params) FetchSize() int {
	return p.PageSize() + 1
}

// After decodes the cursor, returning nil when the feed starts at the top.
func (p Params) After() (*Cursor, error) {
	raw := strings.TrimSpace(p.Cursor)
	if raw == "" {
		return nil, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	stamp, rawID, ok := strings.Cut(string(decoded), "|")
	if !ok {
		return nil, fmt.Errorf("malformed cursor payload")
	}

	createdAt, err := time.Parse(time.RFC3339Nano, stamp)
	if err != nil {
		return nil, fmt.Errorf("cursor timestamp: %w", err)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("cursor id: %w", err)
	}
	return &Cursor{CreatedAt: createdAt, ID: id}, nil
}

// Cursor identifies the last row of the previous page.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// Encode serializes the cursor for the next_cursor response field.
func (c Cursor) Encode() string {
	payload := c.CreatedAt.UTC().Format(time.RFC3339Nano) + "|" + c.ID.String()
	return base64.StdEncoding.EncodeToString([]byte(payload))
}
