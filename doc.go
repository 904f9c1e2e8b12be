// Package mdexport exports markdown documents as standalone HTML files.
//
// A document is rendered by an embedded backend (headless Chrome via go-rod,
// or a browserless in-process renderer) and assembled into a single HTML
// file. Resources referenced by the document can be inlined as data URIs or
// copied into a "<basename>_files" folder next to the output.
//
// # Quick Start
//
// Prepare an export session, run the export, and close when done:
//
//	exp := mdexport.NewExporter()
//	opts := mdexport.ExportOptions{
//	    Format: mdexport.FormatHTML,
//	    HTML: &mdexport.HTMLExportOptions{
//	        EmbedStyles:  true,
//	        CompletePage: true,
//	        EmbedImages:  true,
//	    },
//	}
//	if err := exp.Prepare(opts); err != nil {
//	    log.Fatal(err)
//	}
//	defer exp.Close()
//
//	doc := mdexport.NewFileDocument("notes/a.md")
//	if err := exp.DoExport(opts, doc, "out/a.html"); err != nil {
//	    log.Fatal(err)
//	}
//
// One Prepare serves any number of sequential exports; Close tears the
// session down so the next Prepare gets a fresh backend. At most one export
// may be in flight per Exporter.
//
// # Cancellation
//
// Stop requests cancellation of an in-flight export; DoExport then returns
// ErrExportCancelled, distinct from render and write failures. A write that
// already started is not rolled back.
//
// # Export Modes
//
// With CompletePage set, body image references are rewritten: EmbedImages
// inlines them as data URIs, otherwise they are copied next to the output
// file and relinked by relative path. EmbedStyles inlines stylesheet url()
// resources. References that cannot be resolved are left untouched and the
// export still succeeds.
//
// # Browser Requirements
//
// The default backend drives headless Chrome; go-rod downloads a managed
// Chromium on first run. Set ROD_BROWSER_BIN to use a pre-installed browser.
// Use WithBackendFactory(NewLocalBackend) for a browserless export.
package mdexport
