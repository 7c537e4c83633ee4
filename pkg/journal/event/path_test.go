package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/randalmurphal/journal/pkg/journal/event"
)

func TestValidatePath(t *testing.T) {
	valid := []string{
		"/",
		"/journal",
		"/journal/channel/add",
		"/a/b/c/d/e",
		"/with space/segment",
	}
	for _, p := range valid {
		assert.NoError(t, event.ValidatePath(p), "path %q", p)
	}

	invalid := []string{
		"",
		"journal",
		"journal/channel",
		"/journal/",
		"//journal",
		"/journal//add",
		"/journal/ /add",
		"//",
	}
	for _, p := range invalid {
		assert.Error(t, event.ValidatePath(p), "path %q", p)
	}
}

func TestValidatePath_NeverNormalizes(t *testing.T) {
	// A trailing slash could be "fixed" by trimming; it must be rejected instead.
	err := event.ValidatePath("/journal/")
	assert.Error(t, err)

	var perr *event.PathError
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, "/journal/", perr.Path)
}

func TestSplitPath(t *testing.T) {
	assert.Nil(t, event.SplitPath("/"))
	assert.Equal(t, []string{"journal"}, event.SplitPath("/journal"))
	assert.Equal(t, []string{"journal", "channel", "add"}, event.SplitPath("/journal/channel/add"))
}

func TestDescends(t *testing.T) {
	tests := []struct {
		path     string
		ancestor string
		want     bool
	}{
		{"/journal/channel", "/journal", true},
		{"/journal/channel/add", "/journal", true},
		{"/journal", "/journal", false},
		{"/journalx", "/journal", false},
		{"/journal", "/journal/channel", false},
		{"/journal", "/", true},
		{"/", "/", false},
		{"/a/b", "/a/b/c", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, event.Descends(tt.path, tt.ancestor),
			"Descends(%q, %q)", tt.path, tt.ancestor)
	}
}
