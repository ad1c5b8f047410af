package mail

import "html/template"

var (
	signupOTPTemplate    = template.Must(template.New("signup_otp").Parse(signupOTPHTML))
	otpConfirmedTemplate = template.Must(template.New("otp_confirmed").Parse(otpConfirmedHTML))
	welcomeTemplate      = template.Must(template.New("welcome").Parse(welcomeHTML))
	resetOTPTemplate     = template.Must(template.New("reset_otp").Parse(resetOTPHTML))
	resetSuccessTemplate = template.Must(template.New("reset_success").Parse(resetSuccessHTML))
)

const signupOTPHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f4f5f7; margin: 0; padding: 24px;">
  <div style="max-width: 480px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
    <h2 style="color: #1a1a2e;">Verify your email</h2>
    <p>Hi {{.FirstName}},</p>
    <p>Use this code to verify your email address for Tasko:</p>
    <p style="font-size: 32px; letter-spacing: 8px; font-weight: bold; text-align: center; color: #4f46e5;">{{.OTP}}</p>
    <p>The code expires in 10 minutes. If you did not request it, you can ignore this email.</p>
    <p style="color: #888; font-size: 12px;">&copy; {{.Year}} Tasko</p>
  </div>
</body>
</html>`

const otpConfirmedHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f4f5f7; margin: 0; padding: 24px;">
  <div style="max-width: 480px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
    <h2 style="color: #1a1a2e;">Email verified</h2>
    <p>Hi {{.FirstName}},</p>
    <p>Your email address {{.Email}} has been verified. Finish setting a password to activate your account.</p>
    <p style="color: #888; font-size: 12px;">&copy; {{.Year}} Tasko</p>
  </div>
</body>
</html>`

const welcomeHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f4f5f7; margin: 0; padding: 24px;">
  <div style="max-width: 480px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
    <h2 style="color: #1a1a2e;">Welcome to Tasko, {{.FirstName}}!</h2>
    <p>Your account is ready.</p>
    <ul style="list-style: none; padding: 0; color: #444;">
      <li><strong>Name:</strong> {{.FullName}}</li>
      <li><strong>Email:</strong> {{.Email}}</li>
      <li><strong>Member since:</strong> {{.JoinDate}}</li>
    </ul>
    <p>Log in and start organising your tasks.</p>
    <p style="color: #888; font-size: 12px;">&copy; {{.Year}} Tasko</p>
  </div>
</body>
</html>`

const resetOTPHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f4f5f7; margin: 0; padding: 24px;">
  <div style="max-width: 480px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
    <h2 style="color: #1a1a2e;">Reset your password</h2>
    <p>Hi {{.FirstName}},</p>
    <p>Use this code to reset your Tasko password:</p>
    <p style="font-size: 32px; letter-spacing: 8px; font-weight: bold; text-align: center; color: #4f46e5;">{{.OTP}}</p>
    <p>The code expires in 10 minutes. If you did not request a reset, your password is unchanged and you can ignore this email.</p>
    <p style="color: #888; font-size: 12px;">&copy; {{.Year}} Tasko</p>
  </div>
</body>
</html>`

const resetSuccessHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f4f5f7; margin: 0; padding: 24px;">
  <div style="max-width: 480px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
    <h2 style="color: #1a1a2e;">Password changed</h2>
    <p>Hi {{.FirstName}},</p>
    <p>The password for {{.Email}} has been changed. You can <a href="{{.LoginURL}}">log in</a> with your new password now.</p>
    <p>If this was not you, reset your password immediately.</p>
    <p style="color: #888; font-size: 12px;">&copy; {{.Year}} Tasko</p>
  </div>
</body>
</html>`
