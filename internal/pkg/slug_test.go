package pkg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Kickoff", "kickoff"},
		{"Robotics Club", "robotics-club"},
		{"  Hello,  World!  ", "hello-world"},
		{"already-a-slug", "already-a-slug"},
		{"Weekly Meetup #42", "weekly-meetup-42"},
		{"___", ""},
		{"", ""},
		{"--Edge--Case--", "edge-case"},
		{"CamelCaseTitle", "camelcasetitle"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Slugify(c.in), "input %q", c.in)
	}
}

func TestTruncateSlug(t *testing.T) {
	long := strings.Repeat("ab-", 100)
	got := TruncateSlug(long, 240)
	assert.LessOrEqual(t, len(got), 240)
	assert.False(t, strings.HasSuffix(got, "-"))

	assert.Equal(t, "short", TruncateSlug("short", 240))
}

func TestRandHex(t *testing.T) {
	s, err := RandHex(4)
	assert.NoError(t, err)
	assert.Len(t, s, 8)
}
