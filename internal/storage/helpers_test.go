package storage

import (
	"testing"
	"time"

	"github.com/guttosm/tradedesk/internal/domain/models"
	"github.com/guttosm/tradedesk/internal/schema"
)

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*PostgresStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)

func testCatalog(t *testing.T) (*models.Catalog, *schema.Validator) {
	t.Helper()
	c, err := models.NewCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c, schema.NewValidator(c.Enums)
}

func homer() schema.Record {
	return schema.Record{
		"id": int64(4), "role": "investor", "name": "Homer",
		"degree": []schema.Record{{
			"id":          int64(1),
			"created_at":  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			"type_degree": schema.Member{Enum: models.EnumDegreeType, Value: "expert"},
		}},
	}
}

func trade(id int64, price float64) schema.Record {
	return schema.Record{"id": id, "user_id": int64(1), "currency": "BTC", "side": "buy", "price": price, "amount": 2.12}
}
