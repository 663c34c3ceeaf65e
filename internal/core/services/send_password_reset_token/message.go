package sendpasswordresettoken

import (
	"bytes"
	"html/template"
	"net/url"

	"linkea/internal/core/domain/user"
)

const subject = "Password reset - Linkea"

var bodyTemplate = template.Must(template.New("password-reset").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #059669;">Password reset</h2>
  <p>Hi <strong>{{.Name}}</strong>,</p>
  <p>We received a request to reset the password of your Linkea account.</p>
  <p>Follow the link below to choose a new password:</p>
  <div style="text-align: center; margin: 30px 0;">
    <a href="{{.URL}}" style="background-color: #059669; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Reset password</a>
  </div>
  <p><strong>This link expires in 1 hour.</strong></p>
  <p>If you did not request this change you can ignore this e-mail.</p>
  <hr style="margin: 30px 0; border: none; border-top: 1px solid #e5e7eb;">
  <p style="color: #6b7280; font-size: 14px;">
    If the button does not work, copy this link into your browser:<br>
    <a href="{{.URL}}" style="color: #059669;">{{.URL}}</a>
  </p>
</div>
`))

// ResetURL returns <frontendBaseURL>/auth/reset-password/<token>.
func ResetURL(frontendBaseURL url.URL, token user.PasswordResetToken) string {
	return frontendBaseURL.JoinPath("auth", "reset-password", string(token)).String()
}

func newMessage(u user.User, resetURL string) (user.Message, error) {
	var body bytes.Buffer
	err := bodyTemplate.Execute(&body, struct {
		Name string
		URL  template.URL
	}{
		Name: u.Name,
		URL:  template.URL(resetURL),
	})
	if err != nil {
		return user.Message{}, err
	}
	return user.Message{To: u.Email, Subject: subject, HTMLBody: body.String()}, nil
}
