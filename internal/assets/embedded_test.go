package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestEmbeddedLoader_Load(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		kind        Kind
		asset       string
		wantErr     error
		wantContain string
	}{
		{
			name:        "default stylesheet",
			kind:        Style,
			asset:       DefaultStyleName,
			wantContain: ".code-box",
		},
		{
			name:        "page template",
			kind:        Template,
			asset:       PageTemplateName,
			wantContain: "{{.Body}}",
		},
		{
			name:        "grammar guide",
			kind:        Guide,
			asset:       GrammarGuideName,
			wantContain: "タイトル",
		},
		{
			name:    "missing asset",
			kind:    Style,
			asset:   "nonexistent-xyz",
			wantErr: ErrAssetNotFound,
		},
		{
			name:    "kind mismatch",
			kind:    Guide,
			asset:   PageTemplateName,
			wantErr: ErrAssetNotFound,
		},
		{
			name:    "traversal name",
			kind:    Style,
			asset:   "../page",
			wantErr: ErrInvalidAssetName,
		},
		{
			name:    "unknown kind",
			kind:    Kind(9),
			asset:   "default",
			wantErr: ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.Load(tt.kind, tt.asset)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Load(%v, %q) error = %v, want %v", tt.kind, tt.asset, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load(%v, %q) unexpected error: %v", tt.kind, tt.asset, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("Load(%v, %q) missing %q", tt.kind, tt.asset, tt.wantContain)
			}
		})
	}
}

func TestPackageHelpers(t *testing.T) {
	t.Parallel()

	if _, err := LoadStyle(DefaultStyleName); err != nil {
		t.Errorf("LoadStyle() error = %v", err)
	}
	if _, err := LoadTemplate(PageTemplateName); err != nil {
		t.Errorf("LoadTemplate() error = %v", err)
	}
	if _, err := LoadGuide(GrammarGuideName); err != nil {
		t.Errorf("LoadGuide() error = %v", err)
	}
}
