package cli

import (
	"testing"

	"github.com/m-mizutani/gt"
)

func TestIndexConfig(t *testing.T) {
	cfg := getIndexConfig()

	gt.NoError(t, cfg.Validate()).Required()
	gt.Array(t, cfg.Collections).Length(1)

	col := cfg.Collections[0]
	gt.Value(t, col.Name).Equal("workboards")
	gt.Array(t, col.Indexes).Length(2)

	// Index paths must match the document's Go field names, not snake_case.
	for _, idx := range col.Indexes {
		for _, field := range idx.Fields {
			switch field.Path {
			case "TenantID", "EntityType", "IsDefault", "CreatedAt":
			default:
				t.Errorf("unexpected index field path: %s", field.Path)
			}
		}
	}
}
