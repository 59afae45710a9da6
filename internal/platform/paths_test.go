package platform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a.txt", "a.txt"},
		{filepath.Join("dir", "sub", "b.txt"), "dir/sub/b.txt"},
		{filepath.Join("dir", ".", "c.txt"), "dir/c.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, SnapshotKey(tt.in))
		})
	}
}

func TestFromSnapshotKey(t *testing.T) {
	root := filepath.Join("base", "root")
	assert.Equal(t, filepath.Join(root, "dir", "x.raw"), FromSnapshotKey(root, "dir/x.raw"))
}

func TestValidateSubfolder(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"Simple", "archive", false},
		{"Nested", "archive/2024", false},
		{"Empty", "", true},
		{"Blank", "   ", true},
		{"Parent", "../outside", true},
		{"Absolute", "/abs/path", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubfolder(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsWithin(t *testing.T) {
	root := filepath.Join("data", "src")
	assert.True(t, IsWithin(root, root))
	assert.True(t, IsWithin(root, filepath.Join(root, "a", "b")))
	assert.False(t, IsWithin(root, filepath.Join("data", "other")))
}
