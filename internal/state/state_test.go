package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRestoreRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	require.Nil(t, s.Restore())

	s.Save("doc-1", "report.pdf", "sess-1")
	st := s.Restore()
	require.NotNil(t, st)
	assert.Equal(t, "doc-1", st.DocumentID)
	assert.Equal(t, "report.pdf", st.DocumentName)
	assert.Equal(t, "sess-1", st.SessionID)
	assert.True(t, st.IsActive)
}

// 单槽存储：后写覆盖先写
func TestSaveOverwrites(t *testing.T) {
	s := NewStore(t.TempDir())

	s.Save("doc-1", "a.pdf", "sess-1")
	s.Save("doc-2", "b.pdf", "sess-2")

	st := s.Restore()
	require.NotNil(t, st)
	assert.Equal(t, "doc-2", st.DocumentID)
	assert.Equal(t, "sess-2", st.SessionID)
}

func TestClearIsIdempotent(t *testing.T) {
	s := NewStore(t.TempDir())

	s.Save("doc-1", "a.pdf", "sess-1")
	s.Clear()
	assert.Nil(t, s.Restore())

	// 重复清除不报错
	s.Clear()
	assert.Nil(t, s.Restore())
}

// 损坏的记录按"无保存状态"处理，不上抛
func TestRestoreMalformedRecord(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, stateFileName), []byte("{not json"), 0600))
	assert.Nil(t, s.Restore())
}

// isActive 为 false 的记录视为不存在
func TestRestoreInactiveRecord(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	record := `{"documentId":"doc-1","documentName":"a.pdf","sessionId":"sess-1","isActive":false}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, stateFileName), []byte(record), 0600))
	assert.Nil(t, s.Restore())
}
