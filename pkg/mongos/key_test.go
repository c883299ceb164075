package mongos

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeKey_ExactPassThrough(t *testing.T) {
	tests := []struct {
		name string
		key  any
	}{
		{name: "string", key: "player1"},
		{name: "int", key: 42},
		{name: "float", key: 1.5},
		{name: "bool", key: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.key, normalizeKey(tt.key))
		})
	}
}

func TestNormalizeKey_CaseInsensitive(t *testing.T) {
	got := normalizeKey(CaseInsensitive("abc"))

	pattern, ok := got.(primitive.Regex)
	require.True(t, ok, "expected a regex, got %T", got)
	assert.Equal(t, "i", pattern.Options)

	re, err := regexp.Compile("(?i)" + pattern.Pattern)
	require.NoError(t, err)

	assert.True(t, re.MatchString("abc"))
	assert.True(t, re.MatchString("ABC"))
	assert.True(t, re.MatchString("aBc"))
	assert.False(t, re.MatchString("xabc"), "match must be anchored, no substring hits")
	assert.False(t, re.MatchString("abcx"))
	assert.False(t, re.MatchString("ab"))
}

func TestNormalizeKey_CaseInsensitiveQuotesMeta(t *testing.T) {
	got := normalizeKey(CaseInsensitive("a.c"))

	pattern, ok := got.(primitive.Regex)
	require.True(t, ok)

	re, err := regexp.Compile("(?i)" + pattern.Pattern)
	require.NoError(t, err)

	assert.True(t, re.MatchString("a.c"))
	assert.False(t, re.MatchString("abc"), "dot must be literal, not a wildcard")
}

func TestStoredKey(t *testing.T) {
	assert.Equal(t, "ABC", storedKey(CaseInsensitive("ABC")))
	assert.Equal(t, "plain", storedKey("plain"))
	assert.Equal(t, 7, storedKey(7))
}

func TestDescriptor_Filter(t *testing.T) {
	assert.Equal(t, bson.M{"key": "p1"}, ByKey("p1").filter())
	assert.Equal(t, bson.M{"owner": "p1"}, ByField("owner", "p1").filter())

	// Zero field targets the default key field.
	assert.Equal(t, bson.M{"key": 9}, Descriptor{Value: 9}.filter())
}

func TestDescriptor_FilterCaseInsensitive(t *testing.T) {
	filter := ByKey(CaseInsensitive("Guney")).filter()

	pattern, ok := filter["key"].(primitive.Regex)
	require.True(t, ok, "case-insensitive key must compile inside the filter")
	assert.Equal(t, "i", pattern.Options)
}
