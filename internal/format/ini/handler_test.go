package ini

import (
	"errors"
	"strings"
	"testing"

	"github.com/thirteen37/configfile/internal/format"
	"github.com/thirteen37/configfile/internal/resolve"
	"github.com/thirteen37/configfile/value"
)

func TestHandler_Parse(t *testing.T) {
	h := New()

	tests := []struct {
		name     string
		input    string
		wantKeys []string
		wantErr  bool
	}{
		{
			name:     "simple section",
			input:    "[section]\nkey = value",
			wantKeys: []string{"section"},
		},
		{
			name:     "multiple sections",
			input:    "[section1]\nkey1 = value1\n\n[section2]\nkey2 = value2",
			wantKeys: []string{"section1", "section2"},
		},
		{
			name:     "global keys first",
			input:    "name = app\n\n[section]\nkey = value",
			wantKeys: []string{"name", "section"},
		},
		{
			name:     "empty section kept",
			input:    "[empty]\n\n[full]\nk = v",
			wantKeys: []string{"empty", "full"},
		},
		{
			name:     "empty ini",
			input:    "",
			wantKeys: []string{},
		},
		{
			name:    "unclosed section",
			input:   "[section\nkey = value",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.Parse([]byte(tt.input), format.ParseOptions{})
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, format.ErrParsing) {
					t.Errorf("Parse() error = %v, want ErrParsing", err)
				}
				return
			}
			gotKeys := got.Keys()
			if len(gotKeys) != len(tt.wantKeys) {
				t.Errorf("Parse() got %d keys (%v), want %d (%v)", len(gotKeys), gotKeys, len(tt.wantKeys), tt.wantKeys)
				return
			}
			for i, k := range gotKeys {
				if k != tt.wantKeys[i] {
					t.Errorf("Parse() key[%d] = %q, want %q", i, k, tt.wantKeys[i])
				}
			}
		})
	}
}

func TestHandler_Parse_StripCommentsError(t *testing.T) {
	h := New()

	_, err := h.Parse([]byte("[section]\nkey = value"), format.ParseOptions{StripComments: true})
	if err == nil {
		t.Error("Parse() with StripComments should return error for INI")
	}
}

func TestHandler_Parse_Values(t *testing.T) {
	h := New()

	input := `[database]
host = localhost
port = 3306
enabled = true
`

	tree, err := h.Parse([]byte(input), format.ParseOptions{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	db, exists := tree.Get("database")
	if !exists {
		t.Fatal("Parse() missing 'database' section")
	}
	dbMap, ok := db.AsMapping()
	if !ok {
		t.Fatalf("database is %s, want map", db.Kind())
	}

	// All values should be strings in INI
	for key, want := range map[string]string{"host": "localhost", "port": "3306", "enabled": "true"} {
		got, _ := dbMap.Get(key)
		if !got.Equal(value.Scalar(want)) {
			t.Errorf("%s = %v (%s), want %q (string)", key, got, got.Kind(), want)
		}
	}
}

func TestHandler_Limit(t *testing.T) {
	if New().Limit() != resolve.TwoLevel {
		t.Errorf("Limit() = %v, want two-level", New().Limit())
	}
}

func TestHandler_Serialize(t *testing.T) {
	h := New()

	section := value.NewMapping()
	section.Set("key", value.Scalar("value"))
	section.Set("port", value.Int(42))

	tree := value.NewMapping()
	tree.Set("section", value.Map(section))

	data, err := h.Serialize(tree, format.SerializeOptions{})
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	// Should contain section header and key
	output := string(data)
	if !strings.Contains(output, "[section]") {
		t.Errorf("Serialize() missing section header: %q", output)
	}
	if !strings.Contains(output, "key") || !strings.Contains(output, "value") {
		t.Errorf("Serialize() missing key/value: %q", output)
	}
	if !strings.Contains(output, "42") {
		t.Errorf("Serialize() missing int value: %q", output)
	}
}

func TestHandler_Serialize_FoldedValues(t *testing.T) {
	h := New()

	tree := value.NewMapping()
	if err := resolve.Set(tree, []string{"a", "b", "c"}, value.Int(5), h.Limit()); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := resolve.Set(tree, []string{"a", "list"}, value.Sequence(value.Scalar("x"), value.Int(1)), h.Limit()); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, err := h.Serialize(tree, format.SerializeOptions{})
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	tree2, err := h.Parse(data, format.ParseOptions{})
	if err != nil {
		t.Fatalf("Re-parse error = %v\n%s", err, data)
	}

	b, err := resolve.Get(tree2, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Get(a.b) error = %v", err)
	}
	if !b.Equal(value.Scalar(`{"c":5}`)) {
		t.Errorf("a.b = %v, want JSON text", b)
	}

	coerced, _ := value.Coerce(b).AsMapping()
	c, _ := coerced.Get("c")
	if !c.Equal(value.Int(5)) {
		t.Errorf("coerced a.b.c = %v, want 5", c)
	}

	list, _ := resolve.Get(tree2, []string{"a", "list"})
	if !value.Coerce(list).Equal(value.Sequence(value.Scalar("x"), value.Int(1))) {
		t.Errorf("coerced a.list = %v", value.Coerce(list))
	}
}

func TestHandler_ParseAndSerialize_RoundTrip(t *testing.T) {
	h := New()

	input := `name = app

[database]
host = localhost
port = 3306

[server]
address = 0.0.0.0
`

	tree, err := h.Parse([]byte(input), format.ParseOptions{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// Modify a value
	p := []string{"database", "port"}
	if err := resolve.Set(tree, p, value.Scalar("5432"), h.Limit()); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Serialize
	data, err := h.Serialize(tree, format.SerializeOptions{})
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	// Re-parse and verify
	tree2, err := h.Parse(data, format.ParseOptions{})
	if err != nil {
		t.Fatalf("Re-parse error = %v", err)
	}

	if !tree.Equal(tree2) {
		t.Errorf("Round-trip mismatch:\n%s", data)
	}
	port, err := resolve.Get(tree2, p)
	if err != nil || !port.Equal(value.Scalar("5432")) {
		t.Errorf("Round-trip port = %v, want '5432'", port)
	}
}
