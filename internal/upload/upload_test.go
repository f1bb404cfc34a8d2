package upload

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-chat-cli/internal/api"
	"doc-chat-cli/internal/doclist"
	"doc-chat-cli/internal/loop"
	"doc-chat-cli/internal/ui"
)

func TestCleanDocumentName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"documents/report_ab12cd34.pdf", "report.pdf"},
		{"documents/report.pdf", "report.pdf"},
		{"report_x9.pdf", "report.pdf"},
		{"notes.txt", "notes.txt"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CleanDocumentName(tc.in), "输入: %s", tc.in)
	}
}

type pipelineFixture struct {
	pipeline *Pipeline
	list     *doclist.List
	screen   *ui.Screen
	alerts   []string
	uploaded []string
	filePath string
}

func newFixture(t *testing.T, handler http.HandlerFunc) *pipelineFixture {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	filePath := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(filePath, []byte("%PDF"), 0600))

	f := &pipelineFixture{
		list:     doclist.New(nil, nil),
		screen:   ui.NewScreen(&bytes.Buffer{}),
		filePath: filePath,
	}
	f.pipeline = NewPipeline(
		api.NewClient(srv.URL, "/upload/", "", ""),
		loop.NewSync(),
		f.list,
		f.screen,
		func(kind, title, message string) { f.alerts = append(f.alerts, title+": "+message) },
		func(id, name string) { f.uploaded = append(f.uploaded, id+"/"+name) },
	)
	return f
}

func uploadOK(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"document": map[string]string{"id": "doc-1", "name": "documents/report_ab12cd34.pdf"},
	})
}

func uploadFail(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]interface{}{"success": false})
}

func TestUploadPrimarySuccess(t *testing.T) {
	f := newFixture(t, uploadOK)

	f.pipeline.UploadPrimary(f.filePath)

	// 清洗后的显示名进入列表头部，随后移交控制器
	require.Equal(t, 1, f.list.Len())
	entry := f.list.EntryAt(0)
	assert.Equal(t, "doc-1", entry.ID)
	assert.Equal(t, "report.pdf", entry.DisplayName)
	assert.Equal(t, []string{"doc-1/report.pdf"}, f.uploaded)
	assert.Empty(t, f.alerts)

	// 加载指示收起，成功指示可见
	assert.False(t, f.screen.Preloader())
	assert.True(t, f.screen.Success())
}

func TestUploadPrimaryFailureLeavesListUnchanged(t *testing.T) {
	f := newFixture(t, uploadFail)

	f.pipeline.UploadPrimary(f.filePath)

	assert.True(t, f.list.IsEmpty())
	assert.Empty(t, f.uploaded)
	assert.Equal(t, []string{"Upload Failed: Failed to upload document"}, f.alerts)
	assert.False(t, f.screen.Preloader())
	assert.False(t, f.screen.Success())
}

func TestUploadPrimaryTransportError(t *testing.T) {
	f := newFixture(t, uploadOK)
	// 指向已关闭的端口制造传输错误
	f.pipeline.api = api.NewClient("http://localhost:0", "/upload/", "", "")

	f.pipeline.UploadPrimary(f.filePath)

	assert.True(t, f.list.IsEmpty())
	assert.Equal(t, []string{"Upload Failed: Failed to upload document"}, f.alerts)
}

func TestUploadQuickSuccessAndTriggerReset(t *testing.T) {
	f := newFixture(t, uploadOK)
	f.pipeline.resetDelay = 10 * time.Millisecond

	f.pipeline.UploadQuick(f.filePath)

	require.Equal(t, 1, f.list.Len())
	assert.Equal(t, []string{"doc-1/report.pdf"}, f.uploaded)

	// 触发器先保持禁用，固定延迟后自动恢复
	assert.True(t, f.pipeline.QuickBusy())
	assert.Eventually(t, func() bool { return !f.pipeline.QuickBusy() },
		time.Second, 5*time.Millisecond)
}

// 禁用期间的重复触发被忽略
func TestUploadQuickIgnoredWhileBusy(t *testing.T) {
	f := newFixture(t, uploadOK)
	f.pipeline.resetDelay = time.Hour

	f.pipeline.UploadQuick(f.filePath)
	f.pipeline.UploadQuick(f.filePath)

	assert.Equal(t, 1, f.list.Len())
	assert.Len(t, f.uploaded, 1)
}

// 失败立即恢复触发器
func TestUploadQuickFailureResetsImmediately(t *testing.T) {
	f := newFixture(t, uploadFail)

	f.pipeline.UploadQuick(f.filePath)

	assert.False(t, f.pipeline.QuickBusy())
	assert.Equal(t, []string{"Upload Failed: Failed to upload document"}, f.alerts)
	assert.True(t, f.list.IsEmpty())
}
