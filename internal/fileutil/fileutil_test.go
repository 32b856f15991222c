package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-markscript/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{name: "html", extension: "html"},
		{name: "empty", extension: "", wantErr: fileutil.ErrExtensionEmpty},
		{name: "forward slash", extension: "../etc/passwd", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "backslash", extension: `..\windows`, wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "null byte", extension: "html\x00exe", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidateOutputPath - Destination checks for published pages
// ---------------------------------------------------------------------------

func TestValidateOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "plain file", path: "index.html"},
		{name: "nested", path: "site/news/index.html"},
		{name: "upper case extension", path: "INDEX.HTML"},
		{name: "absolute", path: "/var/www/page.html"},
		{name: "dots inside a name", path: "v1..2.html"},
		{name: "empty", path: "", wantErr: fileutil.ErrOutputPathEmpty},
		{name: "blank", path: "  ", wantErr: fileutil.ErrOutputPathEmpty},
		{name: "wrong extension", path: "page.htm", wantErr: fileutil.ErrOutputExtension},
		{name: "no extension", path: "page", wantErr: fileutil.ErrOutputExtension},
		{name: "html in the middle", path: "page.html.exe", wantErr: fileutil.ErrOutputExtension},
		{name: "leading traversal", path: "../page.html", wantErr: fileutil.ErrOutputTraversal},
		{name: "inner traversal", path: "a/../../page.html", wantErr: fileutil.ErrOutputTraversal},
		{name: "windows traversal", path: `a\..\page.html`, wantErr: fileutil.ErrOutputTraversal},
		{name: "four dots is a name", path: "....//page.html"},
		{name: "null byte", path: "page\x00.html", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateOutputPath(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateOutputPath(%q) = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteTempFile - Temporary file creation
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		extension string
	}{
		{name: "html page", content: "<html><body>ページ</body></html>", extension: "html"},
		{name: "empty content", content: "", extension: "html"},
		{name: "document", content: "タイトル テスト", extension: "ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path, cleanup, err := fileutil.WriteTempFile(tt.content, tt.extension)
			if err != nil {
				t.Fatalf("WriteTempFile() error = %v", err)
			}
			defer cleanup()

			if !strings.Contains(filepath.Base(path), "markscript-") {
				t.Errorf("path %q does not contain prefix 'markscript-'", path)
			}
			if !strings.HasSuffix(path, "."+tt.extension) {
				t.Errorf("path %q does not have extension .%s", path, tt.extension)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read temp file: %v", err)
			}
			if string(data) != tt.content {
				t.Errorf("file content = %q, want %q", data, tt.content)
			}
		})
	}
}

func TestWriteTempFile_Cleanup(t *testing.T) {
	t.Parallel()

	path, cleanup, err := fileutil.WriteTempFile("x", "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}
	cleanup()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("temp file still exists after cleanup at %s", path)
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	_, _, err := fileutil.WriteTempFile("x", "../foo")
	if !errors.Is(err, fileutil.ErrExtensionPathTraversal) {
		t.Errorf("error = %v, want ErrExtensionPathTraversal", err)
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath / TestIsCSS - Style argument classification
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"./brand.css", true},
		{"brand.css", true},
		{"BRAND.CSS", true},
		{"/abs/path.css", true},
		{`C:\styles\a.css`, true},
		{"styles/theme", true},
		{"h1 { color: red; }", false},
		{"a/b { color: red; }", false},
		{"default", false},
	}

	for _, tt := range tests {
		if got := fileutil.IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsCSS(t *testing.T) {
	t.Parallel()

	if !fileutil.IsCSS("p { margin: 0 }") {
		t.Error("IsCSS() = false for a rule")
	}
	if fileutil.IsCSS("brand.css") {
		t.Error("IsCSS() = true for a file name")
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.html")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true")
	}
}
