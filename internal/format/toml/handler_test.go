package toml

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
			name:     "simple toml",
			input:    `key = "value"`,
			wantKeys: []string{"key"},
		},
		{
			name:     "with section",
			input:    "[section]\nkey = \"value\"",
			wantKeys: []string{"section"},
		},
		{
			name:     "nested section",
			input:    "[outer]\n[outer.inner]\nkey = \"value\"",
			wantKeys: []string{"outer"},
		},
		{
			name:     "empty document",
			input:    "",
			wantKeys: []string{},
		},
		{
			name:    "invalid toml",
			input:   `[invalid`,
			wantErr: true,
		},
		{
			name:    "duplicate key",
			input:   "a = 1\na = 2",
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

	_, err := h.Parse([]byte(`key = "value"`), format.ParseOptions{StripComments: true})
	if err == nil {
		t.Error("Parse() with StripComments should return error for TOML")
	}
}

func TestHandler_Parse_PreservesOrder(t *testing.T) {
	h := New()

	input := `zebra = "last"
apple = "first"
mango = "middle"

[servers]
beta = 2
alpha = 1
`

	tree, err := h.Parse([]byte(input), format.ParseOptions{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []string{"zebra", "apple", "mango", "servers"}
	got := tree.Keys()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Parse() keys = %v, want %v", got, want)
	}

	servers, _ := tree.Get("servers")
	sm, _ := servers.AsMapping()
	if strings.Join(sm.Keys(), ",") != "beta,alpha" {
		t.Errorf("servers keys = %v, want [beta alpha]", sm.Keys())
	}
}

func TestHandler_Parse_NativeTypes(t *testing.T) {
	h := New()

	input := `s = "x"
i = 42
f = 1.5
b = true
d = 1979-05-27
l = [1, "a"]
`

	tree, err := h.Parse([]byte(input), format.ParseOptions{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := map[string]value.Value{
		"s": value.Scalar("x"),
		"i": value.Int(42),
		"f": value.Float(1.5),
		"b": value.Bool(true),
		"d": value.Scalar("1979-05-27"),
		"l": value.Sequence(value.Int(1), value.Scalar("a")),
	}
	for key, w := range want {
		got, _ := tree.Get(key)
		if !got.Equal(w) {
			t.Errorf("%s = %v (%s), want %v (%s)", key, got, got.Kind(), w, w.Kind())
		}
	}
}

func TestHandler_Parse_ArrayOfTables(t *testing.T) {
	h := New()

	input := `[[products]]
name = "Hammer"
sku = 738594937

[[products]]
name = "Nail"
sku = 284758393
`

	tree, err := h.Parse([]byte(input), format.ParseOptions{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	products, _ := tree.Get("products")
	items, ok := products.AsSequence()
	if !ok || len(items) != 2 {
		t.Fatalf("products = %v, want 2-element sequence", products)
	}
	first, ok := items[0].AsMapping()
	if !ok {
		t.Fatalf("products[0] is %s, want map", items[0].Kind())
	}
	if strings.Join(first.Keys(), ",") != "name,sku" {
		t.Errorf("products[0] keys = %v, want [name sku]", first.Keys())
	}
}

func TestHandler_Serialize(t *testing.T) {
	h := New()

	server := value.NewMapping()
	server.Set("host", value.Scalar("localhost"))
	server.Set("port", value.Int(8080))

	tree := value.NewMapping()
	tree.Set("title", value.Scalar("demo"))
	tree.Set("server", value.Map(server))
	tree.Set("debug", value.Bool(false))

	data, err := h.Serialize(tree, format.SerializeOptions{})
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	// Plain keys come before tables so they stay in the root table
	want := "title = \"demo\"\ndebug = false\n\n[server]\nhost = \"localhost\"\nport = 8080\n"
	if string(data) != want {
		t.Errorf("Serialize() = %q, want %q", string(data), want)
	}
}

func TestHandler_Serialize_QuotedKeys(t *testing.T) {
	h := New()

	inner := value.NewMapping()
	inner.Set("k", value.Int(1))
	tree := value.NewMapping()
	tree.Set("a.b", value.Map(inner))

	data, err := h.Serialize(tree, format.SerializeOptions{})
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if !strings.Contains(string(data), `["a.b"]`) {
		t.Errorf("Serialize() = %q, want quoted table header", data)
	}

	tree2, err := h.Parse(data, format.ParseOptions{})
	if err != nil {
		t.Fatalf("Re-parse error = %v\n%s", err, data)
	}
	if !tree.Equal(tree2) {
		t.Errorf("Round-trip mismatch:\n%s", data)
	}
}

func TestHandler_Serialize_NullError(t *testing.T) {
	h := New()

	tree := value.NewMapping()
	tree.Set("n", value.Null())

	if _, err := h.Serialize(tree, format.SerializeOptions{}); err == nil {
		t.Error("Serialize() with null value should return error")
	}
}

func TestHandler_Limit(t *testing.T) {
	if New().Limit() != resolve.Unlimited {
		t.Errorf("Limit() = %v, want unlimited", New().Limit())
	}
}

func TestHandler_ParseAndSerialize_RoundTrip(t *testing.T) {
	h := New()

	input := `name = "app"
ratio = 2.0
tags = ["a", "b"]

[database]
host = "localhost"
port = 5432

[database.pool]
size = 10

[[plugins]]
name = "one"

[[plugins]]
name = "two"
enabled = true
`

	tree, err := h.Parse([]byte(input), format.ParseOptions{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if err := resolve.Set(tree, []string{"database", "pool", "timeout"}, value.Int(30), h.Limit()); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := resolve.Set(tree, []string{"cache", "ttl"}, value.Scalar("1h"), h.Limit()); err != nil {
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
	if !tree.Equal(tree2) {
		t.Errorf("Round-trip mismatch:\n%s", data)
	}

	ratio, _ := tree2.Get("ratio")
	if !ratio.Equal(value.Float(2)) {
		t.Errorf("ratio = %v (%s), want float 2", ratio, ratio.Kind())
	}
}

func TestHandler_Serialize_DateTimes(t *testing.T) {
	h := New()

	input := `d = 2020-01-02
t = 1979-05-27T07:32:00Z
lt = 07:32:00
ldt = 1979-05-27T07:32:00
days = [2020-01-02, 2021-03-04]
`

	tree, err := h.Parse([]byte(input), format.ParseOptions{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	d, _ := tree.Get("d")
	if !d.IsDateTime() {
		t.Errorf("d is not marked as a date-time literal")
	}

	data, err := h.Serialize(tree, format.SerializeOptions{})
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if string(data) != input {
		t.Errorf("Serialize() =\n%s\nwant:\n%s", data, input)
	}
}

func TestHandler_Serialize_DateTextStaysQuoted(t *testing.T) {
	tree := value.NewMapping()
	tree.Set("d", value.Scalar("2020-01-02"))

	data, err := New().Serialize(tree, format.SerializeOptions{})
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if want := "d = \"2020-01-02\"\n"; string(data) != want {
		t.Errorf("Serialize() = %q, want %q", data, want)
	}
}
