package discussion

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/crackit360/crackit360-api/internal/config"
	"github.com/google/uuid"
)

var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor points just past the last discussion of a page.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// Encode seals the cursor so clients cannot forge positions.
func (c Cursor) Encode() (string, error) {
	plain := strconv.FormatInt(c.CreatedAt.UnixNano(), 10) + "|" + c.ID.String()
	return config.Encrypt(plain)
}

func DecodeCursor(token string) (*Cursor, error) {
	plain, err := config.Decrypt(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	parts := strings.SplitN(plain, "|", 2)
	if len(parts) != 2 {
		return nil, ErrInvalidCursor
	}
	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, ErrInvalidCursor
	}
	return &Cursor{CreatedAt: time.Unix(0, nanos), ID: id}, nil
}
