package normalize

import (
	"reflect"
	"testing"

	"github.com/talentbridge/dashboard-gateway/config"
	"github.com/talentbridge/dashboard-gateway/model"
)

func testSettings() *config.CollectionSettings {
	settings := &config.CollectionSettings{
		Name:             "companies",
		SearchableFields: []string{"name"},
		FilterableFields: []string{"type"},
		RequiredFields:   []string{"name", "type"},
		BoolFields:       []string{"isActive"},
	}
	settings.ApplyDefaults()
	return settings
}

func TestNormalize_DropsMalformedRecords(t *testing.T) {
	tests := []struct {
		name      string
		record    model.Record
		wantKept  bool
		wantWhyNo string
	}{
		{
			name:     "well-formed record kept",
			record:   model.Record{"id": "c1", "name": "TechNova", "type": "agency", "isActive": true},
			wantKept: true,
		},
		{
			name:     "missing id dropped",
			record:   model.Record{"name": "TechNova", "type": "agency"},
			wantKept: false,
		},
		{
			name:     "empty id dropped",
			record:   model.Record{"id": "", "name": "TechNova", "type": "agency"},
			wantKept: false,
		},
		{
			name:     "non-string id dropped",
			record:   model.Record{"id": 42.0, "name": "TechNova", "type": "agency"},
			wantKept: false,
		},
		{
			name:     "missing required field dropped",
			record:   model.Record{"id": "c2", "name": "TechNova"},
			wantKept: false,
		},
		{
			name:     "blank required field dropped",
			record:   model.Record{"id": "c3", "name": "   ", "type": "agency"},
			wantKept: false,
		},
		{
			name:     "non-string required field dropped",
			record:   model.Record{"id": "c4", "name": "TechNova", "type": 7.0},
			wantKept: false,
		},
		{
			name:     "nil record dropped",
			record:   nil,
			wantKept: false,
		},
	}

	settings := testSettings()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize([]model.Record{tt.record}, settings)
			if tt.wantKept && len(got) != 1 {
				t.Errorf("Normalize() dropped a well-formed record")
			}
			if !tt.wantKept && len(got) != 0 {
				t.Errorf("Normalize() kept a malformed record: %v", got)
			}
		})
	}
}

func TestNormalize_CoercesBoolFields(t *testing.T) {
	settings := testSettings()
	raw := []model.Record{
		{"id": "c1", "name": "A", "type": "agency"},                      // flag absent
		{"id": "c2", "name": "B", "type": "agency", "isActive": "yes"},   // wrong type
		{"id": "c3", "name": "C", "type": "agency", "isActive": true},    // already bool
	}

	got := Normalize(raw, settings)
	if len(got) != 3 {
		t.Fatalf("Normalize() kept %d records, want 3", len(got))
	}

	wantFlags := []bool{false, false, true}
	for i, record := range got {
		flag, ok := record["isActive"].(bool)
		if !ok {
			t.Errorf("record %d: isActive is %T, want bool", i, record["isActive"])
			continue
		}
		if flag != wantFlags[i] {
			t.Errorf("record %d: isActive = %v, want %v", i, flag, wantFlags[i])
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	settings := testSettings()
	raw := []model.Record{
		{"id": "c1", "name": "TechNova", "type": "agency"},
		{"name": "no id"},
		{"id": "c2", "name": "Brightside", "type": "startup", "isActive": true},
	}

	once := Normalize(raw, settings)
	twice := Normalize(once, settings)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Normalize() is not idempotent:\nonce  = %v\ntwice = %v", once, twice)
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	settings := testSettings()
	raw := []model.Record{
		{"id": "c1", "name": "TechNova", "type": "agency"}, // no isActive key
	}

	Normalize(raw, settings)

	if _, exists := raw[0]["isActive"]; exists {
		t.Errorf("Normalize() mutated an input record")
	}
}

func TestNormalize_EmptyAndNilInput(t *testing.T) {
	settings := testSettings()

	if got := Normalize(nil, settings); len(got) != 0 {
		t.Errorf("Normalize(nil) = %v, want empty", got)
	}
	if got := Normalize([]model.Record{}, settings); len(got) != 0 {
		t.Errorf("Normalize(empty) = %v, want empty", got)
	}
}
