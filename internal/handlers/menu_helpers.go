package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"menulink/internal/models"
)

// normalizeMenuItemDocument tolerates the numeric type drift the catalogue
// accumulated across backend migrations (prices and views stored as int32,
// int64 or double) and computes the presentation badge.
func normalizeMenuItemDocument(raw bson.M) (models.MenuItem, error) {
	for _, field := range []string{"price", "views"} {
		if val, ok := raw[field]; ok {
			switch typed := val.(type) {
			case int32:
				raw[field] = int64(typed)
			case int64:
				raw[field] = typed
			case float64:
				raw[field] = int64(typed)
			case int:
				raw[field] = int64(typed)
			default:
				raw[field] = int64(0)
			}
		} else {
			raw[field] = int64(0)
		}
	}

	data, err := bson.Marshal(raw)
	if err != nil {
		return models.MenuItem{}, err
	}

	var item models.MenuItem
	if err := bson.Unmarshal(data, &item); err != nil {
		return models.MenuItem{}, err
	}

	item.Badge = models.BadgeForViews(item.Views)

	return item, nil
}

func decodeMenuItems(ctx context.Context, cursor *mongo.Cursor) ([]models.MenuItem, error) {
	items := make([]models.MenuItem, 0)

	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}

		item, err := normalizeMenuItemDocument(raw)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
