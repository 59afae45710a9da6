package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileFingerprintEqual(t *testing.T) {
	a := FileFingerprint{Size: 10, Digest: [DigestSize]byte{1, 2, 3}}
	b := FileFingerprint{Size: 10, Digest: [DigestSize]byte{1, 2, 3}}
	c := FileFingerprint{Size: 11, Digest: [DigestSize]byte{1, 2, 3}}
	d := FileFingerprint{Size: 10, Digest: [DigestSize]byte{9}}

	assert.True(t, a.Equal(a), "reflexive")
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a), "symmetric")
	assert.False(t, a.Equal(c), "size differs")
	assert.False(t, a.Equal(d), "digest differs")
	assert.Equal(t, "10:01020300000000000000000000000000", a.String())
}

func TestDirectorySnapshot(t *testing.T) {
	entries := map[string]FileFingerprint{
		"b.txt":   {Size: 2},
		"a/c.txt": {Size: 3},
		"a.txt":   {Size: 1},
	}
	snap := NewDirectorySnapshot("/root", entries)

	// the snapshot keeps its own copy
	entries["late.txt"] = FileFingerprint{}

	assert.Equal(t, "/root", snap.Root())
	assert.Equal(t, 3, snap.Len())
	assert.False(t, snap.Has("late.txt"))
	assert.Equal(t, []string{"a.txt", "a/c.txt", "b.txt"}, snap.Paths())
	assert.Equal(t, uint64(6), snap.TotalBytes())

	fp, ok := snap.Get("b.txt")
	require.True(t, ok)
	assert.Equal(t, uint64(2), fp.Size)

	var nilSnap *DirectorySnapshot
	assert.Equal(t, 0, nilSnap.Len())
	assert.Nil(t, nilSnap.Paths())
}

func TestPathSetSorted(t *testing.T) {
	s := NewPathSet("z", "a", "m")
	s.Add("b")

	assert.Equal(t, 4, s.Len())
	assert.True(t, s.Contains("m"))
	assert.False(t, s.Contains("q"))
	assert.Equal(t, []string{"a", "b", "m", "z"}, s.Sorted())
}

func TestReconciliationResult(t *testing.T) {
	r := NewReconciliationResult()
	assert.True(t, r.Identical())

	r.Missing.Add("x")
	r.Extra.Add("y")
	assert.False(t, r.Identical())
	assert.Equal(t, 2, r.Unpaired())
}

func TestReconciliationActionValidate(t *testing.T) {
	tests := []struct {
		name    string
		action  ReconciliationAction
		wantErr bool
	}{
		{"None", NoAction(), false},
		{"Delete", Delete(), false},
		{"Relocate", Relocate("archive"), false},
		{"RelocateEmpty", Relocate(""), true},
		{"Unknown", ReconciliationAction{Kind: "shred"}, true},
		{"Zero", ReconciliationAction{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.action.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "relocate(archive)", Relocate("archive").String())
	assert.Equal(t, "delete", Delete().String())
}

func TestActionErrorUnwrap(t *testing.T) {
	cause := errors.New("permission denied")
	actionErr := &ActionError{
		Action: Delete(),
		Failures: []*FileError{
			{Path: "/a", Op: "delete", Err: cause},
			{Path: "/b", Op: "delete", Err: errors.New("busy")},
		},
	}

	assert.ErrorIs(t, actionErr, cause)
	assert.Contains(t, actionErr.Error(), "2 file(s) failed")

	var fe *FileError
	require.ErrorAs(t, actionErr, &fe)
	assert.Equal(t, "/a", fe.Path)
}

func TestFilesystemErrorUnwrap(t *testing.T) {
	cause := errors.New("no such directory")
	err := &FilesystemError{Path: "/missing", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "/missing")
}

func TestRunStatusExitCode(t *testing.T) {
	tests := []struct {
		status RunStatus
		want   int
	}{
		{StatusSuccess, 0},
		{StatusPartial, 1},
		{StatusFailed, 2},
		{StatusAborted, 3},
		{RunStatus("bogus"), 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.ExitCode())
		})
	}
}

func TestActionOutcomeTouched(t *testing.T) {
	var nilOutcome *ActionOutcome
	assert.Equal(t, 0, nilOutcome.Touched())

	o := NewActionOutcome(NoAction())
	assert.Equal(t, StateIdle, o.State)
	o.Deleted = append(o.Deleted, "/x")
	o.Moved = append(o.Moved, Relocation{From: "/a", To: "/b"})
	assert.Equal(t, 2, o.Touched())
}
