package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gksession/internal/client/models"
	"github.com/dmitrijs2005/gksession/internal/client/storage"
	"github.com/dmitrijs2005/gksession/internal/client/store"
)

// Restore resolves the session at startup from the saved record.
//
// A usable record is dispatched as LoginRestored, which validates its token.
// Without one Logout is dispatched so the current user stops being
// undetermined. A record older than maxAge (when maxAge > 0) or one that
// does not decode is removed first.
func Restore(ctx context.Context, st storage.Storage, d store.Dispatcher, maxAge time.Duration) error {
	item, ok, err := st.GetItem(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("failed to read saved session: %w", err)
	}
	if !ok {
		return d.DispatchContext(ctx, Logout{})
	}

	user, err := decodeSaved(item, maxAge, time.Now())
	if err != nil {
		if rmErr := st.RemoveItem(ctx, StorageKey); rmErr != nil {
			return fmt.Errorf("failed to remove saved session: %w", rmErr)
		}
		return d.DispatchContext(ctx, Logout{})
	}

	return d.DispatchContext(ctx, LoginRestored{User: user})
}

func decodeSaved(item storage.Item, maxAge time.Duration, now time.Time) (models.User, error) {
	if maxAge > 0 && !item.SavedAt.IsZero() && now.Sub(item.SavedAt) > maxAge {
		return models.User{}, fmt.Errorf("saved session is older than %s", maxAge)
	}

	var u models.User
	if err := json.Unmarshal([]byte(item.Value), &u); err != nil {
		return models.User{}, err
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	return u, nil
}
