// Package markscript converts MarkScript documents into sanitized,
// self-contained HTML pages.
//
// MarkScript is a line-oriented markup language with Japanese keywords.
// Each line is matched against an ordered rule table (title, heading,
// button, box, image, ...) and rendered to a fixed HTML vocabulary. User
// text is escaped exactly once; colors and URLs are validated before they
// reach an attribute. Problems never abort a conversion: they are rendered
// as visible placeholders and reported in Result.Diagnostics.
//
// # Quick Start
//
// For HTML output the package-level Convert is enough. It never fails:
//
//	res := markscript.Convert("タイトル こんにちは\n色付 (赤) 重要なお知らせ")
//	fmt.Println(res.Title) // こんにちは
//	os.WriteFile("index.html", []byte(res.HTML), 0o644)
//
// # Converter
//
// A Converter adds custom styling, syntax highlighting and PDF export:
//
//	conv, err := markscript.NewConverter(
//	    markscript.WithHighlightStyle("github"),
//	    markscript.WithStylesheet("./brand.css"),
//	    markscript.WithTimeout(time.Minute),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, markscript.Input{
//	    Document: doc,
//	    PDF:      true,
//	    Page:     &markscript.PageSettings{Size: markscript.PageSizeA4},
//	})
//
// # Parallel Processing
//
// Each Converter that exports PDF owns a headless browser. For batch work
// use a ConverterPool:
//
//	pool, err := markscript.NewConverterPool(markscript.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	defer pool.Release(conv)
//
// # Browser Requirements
//
// PDF export requires Chrome/Chromium. The go-rod library downloads a
// managed Chromium on first use (~/.cache/rod/browser/). Set
// ROD_BROWSER_BIN to use a specific binary; containers and CI run it
// without the sandbox.
package markscript
