package version

import (
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestShort(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"no commit", Info{Version: "v1.2.0", GitCommit: "unknown"}, "v1.2.0"},
		{"release", Info{Version: "v1.2.0", GitCommit: "0123456789ab"}, "v1.2.0 (0123456)"},
		{"dev", Info{Version: "dev", GitCommit: "0123456789ab"}, "dev-0123456"},
		{"dirty", Info{Version: "dev", GitCommit: "0123456789ab", Dirty: true}, "dev-0123456-dirty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.Short())
		})
	}
}

func TestDetailed(t *testing.T) {
	info := Info{
		Version:   "v1.0.0",
		GitCommit: "abc1234",
		BuildTime: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		GoVersion: "go1.24.0",
		Platform:  "linux/amd64",
	}
	lines := strings.Split(info.Detailed(), "\n")
	assert.Equal(t, []string{
		"Version: v1.0.0",
		"Commit: abc1234",
		"Built: 2024-05-01T12:00:00Z",
		"Go: go1.24.0",
		"Platform: linux/amd64",
	}, lines)

	info.GitCommit = "unknown"
	info.BuildTime = time.Time{}
	assert.NotContains(t, info.Detailed(), "Commit")
	assert.NotContains(t, info.Detailed(), "Built")
}

func TestIsRelease(t *testing.T) {
	assert.True(t, Info{Version: "v1.0.0"}.IsRelease())
	assert.False(t, Info{Version: "dev"}.IsRelease())
	assert.False(t, Info{Version: "dev-abc1234"}.IsRelease())
}

func TestParseTime(t *testing.T) {
	assert.True(t, parseTime("unknown").IsZero())
	assert.True(t, parseTime("yesterday").IsZero())
	assert.Equal(t, 2024, parseTime("2024-05-01T12:00:00Z").Year())
	assert.Equal(t, 12, parseTime("2024-05-01 12:00:00").Hour())
}
