package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakePathCaps(validPaths map[string]bool) HostCapabilities {
	return HostCapabilities{
		IsValidPath: func(p string) bool { return validPaths[p] },
		UnescapePath: func(p string) string {
			return p
		},
	}
}

func TestInsertInfersQuotedValidPath(t *testing.T) {
	c := New("", 0, fakePathCaps(map[string]bool{"/tmp/x": true}))
	c.Insert("'/tmp/x'")
	assert.Equal(t, "@/tmp/x", c.Text())
}

func TestInsertLeavesInvalidPathUnchanged(t *testing.T) {
	c := New("", 0, fakePathCaps(map[string]bool{}))
	c.Insert("'/tmp/x'")
	assert.Equal(t, "'/tmp/x'", c.Text())
}

func TestInsertSkipsInferenceForShortChunks(t *testing.T) {
	c := New("", 0, fakePathCaps(map[string]bool{"ab": true}))
	c.Insert("ab")
	assert.Equal(t, "ab", c.Text())
}

func TestInsertWithoutPathCapabilitiesNeverInfers(t *testing.T) {
	c := New("", 0, HostCapabilities{})
	c.Insert("'/tmp/x'")
	assert.Equal(t, "'/tmp/x'", c.Text())
}
