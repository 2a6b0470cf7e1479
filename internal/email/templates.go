package email

import (
	"bytes"
	"fmt"
	"html/template"
)

var verifyTemplate = template.Must(template.New("verify").Parse(`
<h2>Welcome {{.Name}}</h2>
<p>Please verify your CrackIt360 account:</p>
<a href="{{.Link}}">Verify Email</a>
`))

var resetTemplate = template.Must(template.New("reset").Parse(`
<p>A password reset was requested for your CrackIt360 account.</p>
<a href="{{.Link}}">Reset Password</a>
<p>The link expires in 15 minutes.</p>
`))

func VerificationMessage(to, name, link string) (Message, error) {
	body, err := render(verifyTemplate, map[string]string{"Name": name, "Link": link})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Verify Your CrackIt360 Account", HTML: body}, nil
}

func ResetMessage(to, link string) (Message, error) {
	body, err := render(resetTemplate, map[string]string{"Link": link})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Password Reset", HTML: body}, nil
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}
