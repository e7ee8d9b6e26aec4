package email

import (
	"fmt"
	"html"
)

// VerificationURL builds the link a user follows to verify their address.
// Without a base URL the link is relative.
func VerificationURL(baseURL, token string) string {
	if baseURL != "" {
		return baseURL + "/auth/verify?token=" + token
	}
	return "/auth/verify?token=" + token
}

// VerificationSubject returns the subject line for a verification email.
func VerificationSubject(appName string) string {
	return fmt.Sprintf("Verify your email for %s", appName)
}

// VerificationEmailHTML returns the HTML body for a verification link email.
func VerificationEmailHTML(verifyURL string, appName string) string {
	u := html.EscapeString(verifyURL)
	name := html.EscapeString(appName)
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Email Verification</title>
</head>
<body style="font-family:Arial,sans-serif;line-height:1.6;color:#333;max-width:600px;margin:0 auto;padding:20px;">
<div style="background:linear-gradient(135deg,#667eea 0%%,#764ba2 100%%);padding:30px;text-align:center;border-radius:10px 10px 0 0;">
  <h1 style="color:white;margin:0;font-size:28px;">Welcome to %s!</h1>
</div>
<div style="background-color:#f9f9f9;padding:30px;border-radius:0 0 10px 10px;box-shadow:0 4px 6px rgba(0,0,0,0.1);">
  <h2 style="color:#667eea;margin-top:0;">Verify Your Email Address</h2>
  <p>Thank you for signing up! To complete your registration and start using %s, please verify your email address by clicking the button below:</p>
  <div style="text-align:center;margin:30px 0;">
    <a href="%s" style="background:linear-gradient(135deg,#667eea 0%%,#764ba2 100%%);color:white;padding:15px 40px;text-decoration:none;border-radius:5px;font-weight:bold;display:inline-block;">Verify Email Address</a>
  </div>
  <p>Or copy and paste this link into your browser:</p>
  <p style="background-color:#e9ecef;padding:15px;border-radius:5px;word-break:break-all;font-size:14px;">%s</p>
  <hr style="border:none;border-top:1px solid #ddd;margin:30px 0;">
  <p style="color:#666;font-size:14px;margin-bottom:0;">If you didn't create an account with %s, you can safely ignore this email.</p>
</div>
<div style="text-align:center;margin-top:20px;color:#999;font-size:12px;">
  <p>&copy; %s. All rights reserved.</p>
</div>
</body>
</html>`, name, name, u, u, name, name)
}

// VerificationEmailText returns the plain-text body for a verification link email.
func VerificationEmailText(verifyURL string, appName string) string {
	return fmt.Sprintf(`Welcome to %s!

Thank you for signing up! To complete your registration and start using %s,
please verify your email address by visiting the following link:

%s

If you didn't create an account with %s, you can safely ignore this email.

© %s. All rights reserved.`, appName, appName, verifyURL, appName, appName)
}
