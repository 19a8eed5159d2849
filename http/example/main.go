/*
example provides a toy use of safespace's http stack, focusing on:

(1) constructing a default Ranger from a config.Config;
(2) binding routes to handlers returning errors;
(3) failures the end user may see, and failures they may not;
(4) picking a template by the kind of failure through placeholders.
*/
package main

import (
	"embed"
	"io/fs"
	"log"
	"net/http"

	"github.com/xy-planning-network/safespace/config"
	"github.com/xy-planning-network/safespace/http/req"
	"github.com/xy-planning-network/safespace/http/router"
	"github.com/xy-planning-network/safespace/problem"
	"github.com/xy-planning-network/safespace/ranger"
)

//go:embed tmpl
var tmpls embed.FS

// CardDeclined is presented to the end user with tmpl/safespace/card_declined.html.
type CardDeclined struct {
	*problem.Problem
}

// Handler wraps a configured *Ranger.
// The methods attached to it are the handlers the Router directs requests to.
type Handler struct {
	*ranger.Ranger
}

// checkout fails in a way meant for the end user.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) error {
	return &CardDeclined{problem.New(
		"Your card was declined.",
		problem.WithCode("card_declined"),
		problem.WithTitle("Payment failed"),
	)}
}

// signup fails validation; req.ValidationErrors is presented by default.
func (h *Handler) signup(w http.ResponseWriter, r *http.Request) error {
	return req.ValidationErrors{{Field: "email", Got: r.FormValue("email"), Rule: "required"}}
}

// broken fails in a way the end user never sees.
func (h *Handler) broken(w http.ResponseWriter, r *http.Request) error {
	return fs.ErrPermission
}

// routes binds every handler to the Ranger's router.
func routes(h *Handler) {
	h.HandleRoutes([]router.Route{
		{Path: "/checkout", Method: http.MethodPost, Name: "checkout", Handler: h.Intercept(h.checkout)},
		{Path: "/signup", Method: http.MethodPost, Name: "signup", Handler: h.Intercept(h.signup)},
		{Path: "/broken", Method: http.MethodGet, Name: "broken", Handler: h.Intercept(h.broken)},
	})
}

func newHandler(cfg config.Config) (*Handler, error) {
	files, err := fs.Sub(tmpls, "tmpl")
	if err != nil {
		return nil, err
	}

	cfg.TemplateNames = []string{"safespace/{exc_type}.html", config.DefaultTemplateName}
	rng, err := ranger.New(ranger.WithConfig(cfg), ranger.WithTemplates(files))
	if err != nil {
		return nil, err
	}

	h := &Handler{Ranger: rng}
	routes(h)

	return h, nil
}

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	h, err := newHandler(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := h.Guide(); err != nil {
		log.Fatal(err)
	}
}
