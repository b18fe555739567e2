// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the site templates and renders pages.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/olegiv/fiftyfifty-toolkit/internal/i18n"
	"github.com/olegiv/fiftyfifty-toolkit/internal/model"
	"github.com/olegiv/fiftyfifty-toolkit/internal/richtext"
	"github.com/olegiv/fiftyfifty-toolkit/internal/seo"
	"github.com/olegiv/fiftyfifty-toolkit/internal/service"
	"github.com/olegiv/fiftyfifty-toolkit/internal/uikit"
)

// Template directories and the layout every page is parsed with.
const (
	baseLayout  = "layouts/base.html"
	partialsDir = "partials"
	pagesDir    = "pages"
)

// blankLinesRegex matches runs of blank lines left behind by template actions.
var blankLinesRegex = regexp.MustCompile(`(\r?\n[ \t]*){2,}`)

// Renderer handles template rendering with caching.
type Renderer struct {
	mu          sync.RWMutex
	templates   map[string]*template.Template
	templatesFS fs.FS
	mediaURL    func(string) string
	isDev       bool
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS fs.FS
	// MediaURL resolves CMS upload paths; nil leaves URLs unchanged.
	MediaURL func(string) string
	// IsDev re-parses templates on every render.
	IsDev bool
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templatesFS: cfg.TemplatesFS,
		mediaURL:    cfg.MediaURL,
		isDev:       cfg.IsDev,
	}
	if r.mediaURL == nil {
		r.mediaURL = func(s string) string { return s }
	}

	templates, err := r.parseTemplates()
	if err != nil {
		return nil, err
	}
	r.templates = templates

	return r, nil
}

// parseTemplates parses every page with the base layout and all partials.
func (r *Renderer) parseTemplates() (map[string]*template.Template, error) {
	partials, err := getTemplateFiles(r.templatesFS, partialsDir)
	if err != nil {
		return nil, fmt.Errorf("getting partials: %w", err)
	}
	pages, err := getTemplateFiles(r.templatesFS, pagesDir)
	if err != nil {
		return nil, fmt.Errorf("getting pages: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no page templates in %s", pagesDir)
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, tmplPath := range pages {
		name := strings.TrimSuffix(path.Base(tmplPath), ".html")

		// Parse in order: base layout, partials, page template
		files := append([]string{baseLayout}, partials...)
		files = append(files, tmplPath)

		tmpl, err := template.New("").Funcs(r.TemplateFuncs()).ParseFS(r.templatesFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	return templates, nil
}

// getTemplateFiles returns all .html files in a directory.
func getTemplateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// TemplateFuncs returns the uikit helpers plus the site functions.
func (r *Renderer) TemplateFuncs() template.FuncMap {
	funcs := uikit.TemplateFuncs()

	funcs["T"] = func(locale model.Locale, key string, args ...any) string {
		return i18n.T(locale, key, args...)
	}
	funcs["richtext"] = richtext.Render
	funcs["excerpt"] = richtext.Excerpt
	funcs["plain"] = richtext.StripHTML
	funcs["media"] = func(s string) string {
		if r.mediaURL == nil {
			return s
		}
		return r.mediaURL(s)
	}
	funcs["homePath"] = service.HomePath
	funcs["phasesPath"] = service.PhasesPath
	funcs["resourcesPath"] = service.ResourcesPath
	funcs["searchPath"] = service.SearchPath
	funcs["privacyPath"] = service.PrivacyPath
	funcs["phasePath"] = service.PhasePath
	funcs["modulePath"] = service.ModulePath
	funcs["percent"] = func(part, total int) int {
		if total <= 0 {
			return 0
		}
		return part * 100 / total
	}
	funcs["embedURL"] = EmbedURL

	return funcs
}

// Analytics configures the GA4 snippet. An empty MeasurementID disables it.
type Analytics struct {
	MeasurementID string
}

// Enabled reports whether the analytics snippet is rendered.
func (a Analytics) Enabled() bool {
	return a.MeasurementID != ""
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Locale model.Locale
	// Path is the request path after the locale prefix, used by the
	// language switcher.
	Path              string
	Meta              *seo.Meta
	JSONLD            []template.JS
	Breadcrumbs       []uikit.Breadcrumb
	Site              model.LocalizedSettings
	SocialLinks       []model.SocialLink
	Analytics         Analytics
	ShowConsentBanner bool
	CurrentYear       int
	Data              any
}

// SwitchPath returns the current page in the other locale.
func (d TemplateData) SwitchPath() string {
	return "/" + string(d.Locale.Opposite()) + d.Path
}

// Render renders a page template with the given status code.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data TemplateData) error {
	buf := new(bytes.Buffer)
	if err := r.Execute(buf, name, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Execute writes the page template to out.
func (r *Renderer) Execute(out io.Writer, name string, data TemplateData) error {
	tmpl, err := r.lookup(name)
	if err != nil {
		return err
	}

	// Add default data
	if data.CurrentYear == 0 {
		data.CurrentYear = time.Now().Year()
	}
	if data.Locale == "" {
		data.Locale = model.DefaultLocale
	}

	// Render to buffer first to catch errors
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	_, err = out.Write(blankLinesRegex.ReplaceAll(buf.Bytes(), []byte("\n")))
	return err
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	_, err := r.lookup(name)
	return err == nil
}

func (r *Renderer) lookup(name string) (*template.Template, error) {
	if r.isDev {
		templates, err := r.parseTemplates()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.templates = templates
		r.mu.Unlock()
	}

	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("template %s not found", name)
	}
	return tmpl, nil
}
