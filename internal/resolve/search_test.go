package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thirteen37/configfile/value"
)

func TestExists(t *testing.T) {
	tree := om(
		"a", value.Map(om("b", value.Map(om("c", value.Int(1))))),
		"servers", value.Sequence(
			value.Map(om("host", value.Scalar("one"))),
			value.Scalar("plain"),
		),
		"top", value.Scalar("x"),
	)

	tests := []struct {
		name string
		path []string
		wild bool
		want bool
	}{
		{name: "local top-level", path: segs("top"), want: true},
		{name: "local nested", path: segs("a", "b", "c"), want: true},
		{name: "local section", path: segs("a", "b"), want: true},
		{name: "local misses nested key", path: segs("c"), want: false},
		{name: "wild finds nested key", path: segs("c"), wild: true, want: true},
		{name: "wild ignores leading segments", path: segs("nowhere", "c"), wild: true, want: true},
		{name: "wild finds intermediate key", path: segs("b"), wild: true, want: true},
		{name: "wild searches sequences", path: segs("host"), wild: true, want: true},
		{name: "wild absent", path: segs("x"), wild: true, want: false},
		{name: "local through sequence", path: segs("servers", "host"), want: false},
		{name: "empty path", path: segs(), wild: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Exists(tree, tt.path, tt.wild))
		})
	}
}

func TestExists_WildIsStable(t *testing.T) {
	tree := om("a", value.Map(om("k", value.Int(1))), "b", value.Map(om("k", value.Int(2))))
	for i := 0; i < 10; i++ {
		assert.True(t, Exists(tree, segs("k"), true))
	}
}
