// Package templates renders the dashboard pages as templ components.
package templates

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/invoicing/internal/services/web/routepath"
)

// AppName is the product name shown in titles and headers.
const AppName = "Acme Invoicing"

// Toast is a one-time notice shown above page content.
type Toast struct {
	Kind    string
	Message string
}

// Chrome carries the shared layout state for a page.
type Chrome struct {
	Title       string
	UserName    string
	CurrentPath string
	Toast       *Toast
}

type navLink struct {
	label string
	path  string
}

var dashboardNav = []navLink{
	{label: "Home", path: routepath.Dashboard},
	{label: "Invoices", path: routepath.Invoices},
	{label: "Customers", path: routepath.Customers},
}

// PageTitle returns the document title for a page heading.
func PageTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return AppName
	}
	return title + " | " + AppName
}

// Layout renders a full HTML document around body.
func Layout(chrome Chrome, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(PageTitle(chrome.Title))
		h.raw(`</title><link rel="stylesheet"`)
		h.href(routepath.StaticPrefix + "app.css")
		h.raw(`></head><body>`)
		if chrome.UserName != "" {
			sidebar(h, chrome)
		} else {
			h.raw(`<header class="public-header"><a class="brand"`)
			h.href(routepath.Root)
			h.raw(`>`)
			h.text(AppName)
			h.raw(`</a></header>`)
		}
		h.raw(`<main id="main">`)
		if chrome.Toast != nil && chrome.Toast.Message != "" {
			h.raw(`<div role="status"`)
			h.attr("class", "toast toast-"+chrome.Toast.Kind)
			h.raw(`>`)
			h.text(chrome.Toast.Message)
			h.raw(`</div>`)
		}
		h.component(ctx, body)
		h.raw(`</main></body></html>`)
	})
}

func sidebar(h *htmlWriter, chrome Chrome) {
	h.raw(`<nav class="sidenav"><a class="brand"`)
	h.href(routepath.Dashboard)
	h.raw(`>`)
	h.text(AppName)
	h.raw(`</a><ul>`)
	for _, link := range dashboardNav {
		h.raw(`<li><a`)
		h.href(link.path)
		if navActive(link.path, chrome.CurrentPath) {
			h.raw(` aria-current="page"`)
		}
		h.raw(`>`)
		h.text(link.label)
		h.raw(`</a></li>`)
	}
	h.raw(`</ul><p class="viewer">`)
	h.text(chrome.UserName)
	h.raw(`</p><form method="post"`)
	h.action(routepath.Logout)
	h.raw(`><button type="submit">Sign Out</button></form></nav>`)
}

func navActive(linkPath, current string) bool {
	if linkPath == routepath.Dashboard {
		return current == routepath.Dashboard || current == routepath.DashboardPrefix
	}
	return current == linkPath || strings.HasPrefix(current, linkPath+"/")
}
