package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Nuga25/interneefy-backend/models"
)

type WelcomeData struct {
	FullName    string
	Email       string
	Password    string
	Role        models.Role
	CompanyName string
	LoginURL    string
}

func (d WelcomeData) RoleTitle() string {
	if d.Role == models.RoleIntern {
		return "Intern"
	}
	return "Supervisor"
}

var welcomeHTML = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h1 style="background-color: #4F46E5; color: white; padding: 20px; text-align: center;">Welcome to {{.CompanyName}}!</h1>
      <p>Hello {{.FullName}},</p>
      <p>We're excited to have you join us as a {{.RoleTitle}}! Your account has been created and you can now access the internship management platform.</p>
      <div style="background-color: #f3f4f6; padding: 20px; border-left: 4px solid #4F46E5;">
        <h3>Your Login Credentials:</h3>
        <p><strong>Email:</strong> {{.Email}}</p>
        <p><strong>Temporary Password:</strong> {{.Password}}</p>
      </div>
      <p><strong>Important:</strong> Please change your password after your first login.</p>
      <p><a href="{{.LoginURL}}" style="display: inline-block; padding: 12px 24px; background-color: #4F46E5; color: white; text-decoration: none;">Login to Your Account</a></p>
      <p>Best regards,<br>{{.CompanyName}} Team</p>
      <p style="color: #666; font-size: 12px;">This is an automated message. Please do not reply to this email.</p>
    </div>
  </body>
</html>
`))

// WelcomeEmail renders the credential mail sent once to an admin-created
// user. The plaintext password appears nowhere else.
func WelcomeEmail(data WelcomeData) (*EmailData, error) {
	var html bytes.Buffer
	if err := welcomeHTML.Execute(&html, data); err != nil {
		return nil, err
	}

	text := fmt.Sprintf(`Welcome to %s!

Hello %s,

We're excited to have you join us as a %s!

Your Login Credentials:
Email: %s
Temporary Password: %s

Login here: %s

Best regards,
%s Team
`, data.CompanyName, data.FullName, data.RoleTitle(), data.Email, data.Password, data.LoginURL, data.CompanyName)

	return &EmailData{
		To:      data.Email,
		Subject: fmt.Sprintf("Welcome to %s - Your Account Details", data.CompanyName),
		HTML:    html.String(),
		Text:    text,
	}, nil
}
