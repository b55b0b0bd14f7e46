package email

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	texttpl "text/template"
	"time"
)

// Templates mínimos, inline. Si algún día hace falta branding por entorno,
// esto pasa a archivos cargados en el arranque.

const resetSubject = "Reset your password"

var resetHTML = htmltpl.Must(htmltpl.New("reset_html").Parse(`<p>Hey {{.Name}},</p>
<p>Click <a href="{{.Link}}">here</a> to reset your password. This link expires in {{.TTL}}.</p>
<p>If you didn't request this, you can ignore this email.</p>`))

var resetText = texttpl.Must(texttpl.New("reset_text").Parse(`Hey {{.Name}},

Open this link to reset your password (expires in {{.TTL}}):
{{.Link}}

If you didn't request this, you can ignore this email.`))

const verifySubject = "Please verify your e-mail"

var verifyHTML = htmltpl.Must(htmltpl.New("verify_html").Parse(`<p>Hey {{.Name}},</p>
<p>Click <a href="{{.Link}}">here</a> to confirm your e-mail address.</p>
<p>This link will expire in {{.TTL}}.</p>`))

var verifyText = texttpl.Must(texttpl.New("verify_text").Parse(`Hey {{.Name}},

Open this link to confirm your e-mail address (expires in {{.TTL}}):
{{.Link}}`))

type linkVars struct {
	Name string
	Link string
	TTL  string
}

// humanTTL formatea el TTL como lo lee una persona ("1 hour", "24 hours").
func humanTTL(d time.Duration) string {
	if d >= time.Hour {
		h := int(d.Hours())
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	m := int(d.Minutes())
	if m <= 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}

func renderReset(name, link string, ttl time.Duration) (subject, html, text string, err error) {
	vars := linkVars{Name: name, Link: link, TTL: humanTTL(ttl)}
	var hb, tb bytes.Buffer
	if err = resetHTML.Execute(&hb, vars); err != nil {
		return "", "", "", err
	}
	if err = resetText.Execute(&tb, vars); err != nil {
		return "", "", "", err
	}
	return resetSubject, hb.String(), tb.String(), nil
}

func renderVerify(name, link string, ttl time.Duration) (subject, html, text string, err error) {
	vars := linkVars{Name: name, Link: link, TTL: humanTTL(ttl)}
	var hb, tb bytes.Buffer
	if err = verifyHTML.Execute(&hb, vars); err != nil {
		return "", "", "", err
	}
	if err = verifyText.Execute(&tb, vars); err != nil {
		return "", "", "", err
	}
	return verifySubject, hb.String(), tb.String(), nil
}
