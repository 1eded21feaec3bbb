// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/manualhub/manualhub/internal/atlas"
	"github.com/manualhub/manualhub/internal/catalog"
	"github.com/manualhub/manualhub/internal/config"
	"github.com/manualhub/manualhub/internal/snapshot"
)

// assemble builds the complete snapshot value from the finished pipeline
// steps. The catalog lists non-translation records only; translations
// contribute their icon inheritance and modification times but are not
// published as standalone entries.
func assemble(
	result *catalog.LoadResult,
	sheet *atlas.Atlas,
	site *config.SiteConfig,
	manualTimes, pdfTimes map[string]time.Time,
) (*snapshot.Snapshot, error) {
	published := make([]json.RawMessage, 0, len(result.Entries))
	var lastModified time.Time
	for _, e := range result.Entries {
		if e.ModTime.After(lastModified) {
			lastModified = e.ModTime
		}
		if e.Module.IsTranslation() {
			continue
		}
		raw, err := e.PublishedJSON()
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", e.Module.Name, err)
		}
		published = append(published, raw)
	}

	catalogJSON, err := json.Marshal(published)
	if err != nil {
		return nil, fmt.Errorf("serializing catalog: %w", err)
	}

	script, err := bootstrapScript(catalogJSON, site, result.Errors)
	if err != nil {
		return nil, err
	}

	return &snapshot.Snapshot{
		CatalogJSON:        catalogJSON,
		Script:             script,
		IconPNG:            sheet.PNG,
		IconCSS:            sheet.CSS,
		LastModified:       lastModified,
		ManualLastModified: manualTimes,
		PDFLastModified:    pdfTimes,
		Errors:             result.Errors,
	}, nil
}

// bootstrapScript renders the script-initialization text the page loads:
// the catalog array, the site display/filter/selectable configuration, and
// the per-file load errors for diagnostic display.
func bootstrapScript(catalogJSON []byte, site *config.SiteConfig, loadErrors []string) (string, error) {
	siteJSON, err := json.Marshal(site)
	if err != nil {
		return "", fmt.Errorf("serializing site config: %w", err)
	}

	if loadErrors == nil {
		loadErrors = []string{}
	}
	errorsJSON, err := json.Marshal(loadErrors)
	if err != nil {
		return "", fmt.Errorf("serializing load errors: %w", err)
	}

	return fmt.Sprintf("initModulePage(%s, %s, %s);", catalogJSON, siteJSON, errorsJSON), nil
}
