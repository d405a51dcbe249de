package filesystem

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	assert.Equal(t, "/home/tester", ExpandHome("~"))
	assert.Equal(t, filepath.Join("/home/tester", "logs", "a.log"), ExpandHome("~/logs/a.log"))
	assert.Equal(t, "/var/log/x", ExpandHome("/var/log/x"))
	assert.Equal(t, "relative/~/x", ExpandHome("relative/~/x"))
}

func TestAppPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	assert.Equal(t, filepath.Join("/home/tester", ".termnamer"), AppDir())
	assert.Equal(t, filepath.Join("/home/tester", ".termnamer", "usage.db"), AppPath("usage.db"))
}
