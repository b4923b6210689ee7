package mailer

import "fmt"

type Template struct {
	Subject string
	Body    string
}

// TestTemplate 网关连通性验证用
func TestTemplate(username string) Template {
	body := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Email Gateway Test</title></head>
<body>
  <h1>Email Gateway working succesfully in MNavy</h1><br><br>
  <h4>Name: %s</h4>
</body>
</html>`, username)
	return Template{Subject: "Email Gateway Test", Body: body}
}

// OtpTemplate 密码重置验证码
func OtpTemplate(username, email string, otp int) Template {
	body := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>MNavy_OTP_Template</title></head>
<body style="padding: 0; margin: 0; font-family: 'Poppins', Sans-serif; background-color: #edd3f8;">
  <div style="max-width: 650px; margin: auto; background-color: #fff;">
    <div style="max-width: 650px; text-align: center; padding:24px;"><h2>MNavy Medical Inventory</h2></div>
    <div style="text-align: center; padding:24px; background-color: #0066cc;">
      <h3 style="color: #fff; font-size: 24px; font-weight: 100;">Verify Your Account On</h3>
      <h4 style="font-size: 24px; color: #fff; font-weight: 800;">MNavy</h4>
    </div>
    <div style="padding:24px;">
      <div style="max-width: 480px; text-align: left; padding:24px; margin: auto;">
        <h3 style="color: #212121; font-size: 20px; font-weight: 100;">Hello <b>%s</b>,</h3>
        <p style="color: #212121; line-height: 24px;">We received a request to access your MNavy
          account <b>%s</b> through your email address. Your MNavy verification code is:</p>
        <div style="text-align: center; padding: 24px 0px;">
          <h1 style="background-color: #0066cc; padding: 12px 32px; color: #fff; margin: auto; font-weight: 900; border-radius: 8px; width: max-content; letter-spacing: 8px;">%d</h1>
        </div>
        <p style="color: #212121; line-height: 24px;">If you did not request this code, it is possible that someone else is trying to access the
          MNavy account <b>%s</b>. <span style="color: red; font-weight: 900;">Do not forward or give this code to anyone.</span></p>
      </div>
    </div>
    <div style="padding:24px; text-align: center; background-color: #0066cc;">
      <p style="color: #fff; line-height: 20px; margin: auto;">
        <b>Team MNavy</b><br>Maritime Medical Inventory Management System<br>
        <a href="mailto:support@mnavy.com" style="color: #fff;">support@mnavy.com</a>
      </p>
    </div>
  </div>
</body>
</html>`, username, email, otp, email)
	return Template{Subject: "MNavy : OTP Verification", Body: body}
}
