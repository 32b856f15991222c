// Package assets provides the stylesheets, page templates and guides used
// to publish MarkScript documents.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the asset is
// not found, so a custom directory may override a single asset.
//
// # Directory Structure
//
// Assets are organized by kind:
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css     # page stylesheets (default.css)
//	├── templates/
//	│   └── {name}.html    # page skeletons (page.html)
//	└── guides/
//	    └── {name}.md      # reference documents (grammar.md)
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
