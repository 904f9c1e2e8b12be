package mdexport

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/alnah/go-mdexport/internal/fileutil"
	"github.com/alnah/go-mdexport/internal/rewrite"
	tpl "github.com/alnah/go-mdexport/internal/template"
)

// assembler fills the export skeleton with rendered fragments and writes
// the final document.
type assembler struct {
	skeleton string
	appName  string
	rewriter *rewrite.Rewriter
	log      *zap.Logger
}

// writeHTMLFile assembles and writes the exported document. The resource
// folder "<basename>_files" next to outputPath is only ever created as a
// side effect of resource copying; if it ends up empty it is removed.
func (a *assembler) writeHTMLFile(outputPath string, base *url.URL, frags ContentFragments, opt HTMLExportOptions) error {
	baseName := strings.TrimSuffix(filepath.Base(outputPath), filepath.Ext(outputPath))
	title := baseName + " - " + a.appName
	resourceFolder := filepath.Join(filepath.Dir(outputPath), baseName+"_files")

	page := tpl.FillTitle(a.skeleton, title)

	if frags.Style != "" && opt.EmbedStyles {
		style, _ := a.rewriter.EmbedStyleResources(frags.Style)
		page = tpl.FillStyleContent(page, style)
	}

	if frags.Head != "" {
		page = tpl.FillHeadContent(page, frags.Head)
	}

	body := frags.Body
	if opt.CompletePage {
		if opt.EmbedImages {
			body, _ = a.rewriter.EmbedBodyResources(base, body)
		} else {
			body, _ = a.rewriter.RelinkBodyResources(base, resourceFolder, body)
		}
	}

	if opt.AddOutlinePanel {
		page = tpl.FillOutlineContent(page, tpl.BuildOutline(body))
	}

	page = tpl.FillBodyContent(page, body)
	page = tpl.Strip(page)

	var err error
	if werr := os.WriteFile(outputPath, []byte(page), 0o600); werr != nil {
		err = fmt.Errorf("%w: %v", ErrWriteOutput, werr)
		a.log.Warn("writing export output failed", zap.String("path", outputPath), zap.Error(werr))
	}

	// Delete the resource folder when no resources were actually copied.
	return multierr.Append(err, fileutil.RemoveDirIfEmpty(resourceFolder))
}
