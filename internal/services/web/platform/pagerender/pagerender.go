// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"log"
	"net/http"

	"github.com/a-h/templ"

	apperrors "github.com/louisbranch/invoicing/internal/services/web/platform/errors"
	"github.com/louisbranch/invoicing/internal/services/web/platform/flash"
	"github.com/louisbranch/invoicing/internal/services/web/platform/httpx"
	"github.com/louisbranch/invoicing/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/invoicing/internal/services/web/platform/webctx"
	"github.com/louisbranch/invoicing/internal/services/web/templates"
)

// Page describes a module page response for both full-page and HTMX flows.
type Page struct {
	Title      string
	StatusCode int
	Body       templ.Component
}

// Renderer writes pages inside the shared layout.
type Renderer struct {
	policy requestmeta.SchemePolicy
}

// New returns a Renderer whose flash cookies follow policy.
func New(policy requestmeta.SchemePolicy) Renderer {
	return Renderer{policy: policy}
}

// Write renders page. HTMX requests receive only the body fragment; full
// page loads get the layout and consume any pending flash notice.
func (rd Renderer) Write(w http.ResponseWriter, r *http.Request, page Page) {
	if w == nil {
		return
	}
	status := page.StatusCode
	if status <= 0 {
		status = http.StatusOK
	}
	body := page.Body
	if body == nil {
		body = templ.NopComponent
	}

	component := body
	if !httpx.IsHTMXRequest(r) {
		chrome := templates.Chrome{
			Title:    page.Title,
			UserName: webctx.Viewer(r).DisplayName,
			Toast:    rd.toast(w, r),
		}
		if r != nil && r.URL != nil {
			chrome.CurrentPath = r.URL.Path
		}
		component = templates.Layout(chrome, body)
	}

	var buf bytes.Buffer
	if err := component.Render(httpx.RequestContext(r), &buf); err != nil {
		log.Printf("page render failed title=%q request_id=%s err=%v", page.Title, httpx.RequestIDFrom(r), err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// WriteError renders an error page for err using its typed status. Server
// errors are logged and shown with a generic message.
func (rd Renderer) WriteError(w http.ResponseWriter, r *http.Request, err error, backPath string) {
	status := apperrors.HTTPStatus(err)
	message := apperrors.PublicMessage(err)
	if status >= http.StatusInternalServerError {
		path := "-"
		if r != nil && r.URL != nil {
			path = r.URL.Path
		}
		log.Printf("request failed path=%s status=%d request_id=%s err=%v", path, status, httpx.RequestIDFrom(r), err)
		message = ""
	}
	rd.Write(w, r, Page{
		Title:      templates.ErrorTitle(status),
		StatusCode: status,
		Body:       templates.ErrorPage(status, message, backPath),
	})
}

func (rd Renderer) toast(w http.ResponseWriter, r *http.Request) *templates.Toast {
	notice, ok := flash.ReadAndClear(w, r, rd.policy)
	if !ok {
		return nil
	}
	return &templates.Toast{Kind: string(notice.Kind), Message: notice.Message}
}
