package templates

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/invoicing/internal/services/web/routepath"
)

// LoginView is the login form state.
type LoginView struct {
	Email       string
	CallbackURL string
	Message     string
}

// HomePage renders the public landing page.
func HomePage() templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section class="hero"><h1>Welcome to `)
		h.text(AppName)
		h.raw(`.</h1><p>Track customers, invoices and monthly revenue in one place.</p><a class="button"`)
		h.href(routepath.Login)
		h.raw(`>Log in</a></section>`)
	})
}

// LoginPage renders the credentials form.
func LoginPage(view LoginView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section class="login"><h1>Please log in to continue.</h1><form method="post"`)
		h.action(routepath.Login)
		h.raw(`><label for="email">Email</label><input id="email" name="email" type="email" required`)
		h.attr("value", view.Email)
		h.raw(`><label for="password">Password</label><input id="password" name="password" type="password" minlength="6" required>`)
		h.raw(`<input type="hidden"`)
		h.attr("name", routepath.CallbackParam)
		h.attr("value", view.CallbackURL)
		h.raw(`><button type="submit">Log in</button>`)
		if view.Message != "" {
			h.raw(`<p class="form-error" aria-live="polite">`)
			h.text(view.Message)
			h.raw(`</p>`)
		}
		h.raw(`</form></section>`)
	})
}

// ErrorTitle returns the heading used for an error status.
func ErrorTitle(status int) string {
	if status == http.StatusNotFound {
		return "404 Not Found"
	}
	if text := http.StatusText(status); text != "" && status >= 400 && status < 500 {
		return text
	}
	return "Something went wrong!"
}

// ErrorPage renders an error page for status with an optional message.
func ErrorPage(status int, message string, backPath string) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<section class="error"><h2>`)
		h.text(ErrorTitle(status))
		h.raw(`</h2>`)
		if message != "" {
			h.raw(`<p>`)
			h.text(message)
			h.raw(`</p>`)
		}
		if backPath != "" {
			h.raw(`<a class="button"`)
			h.href(backPath)
			h.raw(`>Go Back</a>`)
		}
		h.raw(`</section>`)
	})
}
