package notification

import "html/template"

var (
	confirmedTmpl = template.Must(template.New("confirmed").Parse(confirmedHTML))
	rejectedTmpl  = template.Must(template.New("rejected").Parse(rejectedHTML))
	resetTmpl     = template.Must(template.New("reset").Parse(resetHTML))
)

const confirmedHTML = `<html lang="en">
<head><meta charset="UTF-8" /><title>Transaction Confirmed</title></head>
<body>
  <div style="font-family: sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #10b981; text-align: center;">Transaction Confirmed</h2>
    <div style="background-color: #f8f8f8; border-radius: 8px; padding: 20px;">
      <p>Hi {{.Username}},</p>
      <p>Great news! Your transaction for <strong>{{.EventName}}</strong>
        has been confirmed by the event organizer.</p>
      <div style="background-color: #fff; border-left: 4px solid #10b981; padding: 15px;">
        <p style="margin: 0;"><strong>Transaction ID:</strong> {{.TransactionID}}</p>
        <p style="margin: 8px 0 0;"><strong>Event Date:</strong> {{.EventDate.Format "Jan 2, 2006"}}</p>
        <p style="margin: 8px 0 0;"><strong>Quantity:</strong> {{.Quantity}} ticket(s)</p>
      </div>
      <p>You're all set! Your tickets are now confirmed and ready for the event.</p>
    </div>
    <p style="font-size: 14px; color: #666;">Best regards,<br /><strong>Ticket Team</strong></p>
  </div>
</body>
</html>`

const rejectedHTML = `<html lang="en">
<head><meta charset="UTF-8" /><title>Transaction Rejected</title></head>
<body>
  <div style="font-family: sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #e53e3e; text-align: center;">Transaction Rejected</h2>
    <div style="background-color: #f8f8f8; border-radius: 8px; padding: 20px;">
      <p>Hi {{.Username}},</p>
      <p>We regret to inform you that your transaction for
        <strong>{{.EventName}}</strong> has been rejected by the event organizer.</p>
      <div style="background-color: #fff; border-left: 4px solid #e53e3e; padding: 15px;">
        <p style="margin: 0;"><strong>Transaction ID:</strong> {{.TransactionID}}</p>
      </div>
      <p>Any points, vouchers, or coupons used for this transaction have been
        returned to your account. The seats you reserved have also been made
        available again.</p>
    </div>
    <p style="font-size: 14px; color: #666;">Best regards,<br /><strong>Ticket Team</strong></p>
  </div>
</body>
</html>`

const resetHTML = `<html lang="en">
<head><meta charset="UTF-8" /><title>Forgot Your Password?</title></head>
<body>
  <div style="font-family: sans-serif; color: #333;">
    <h2 style="color: #4F46E5;">Reset Your Password</h2>
    <p>You requested a password reset for your Ticket account.</p>
    <p>Click the button below to set a new password. This link is valid for 24 hours.</p>
    <div style="margin: 24px 0;">
      <a href="{{.ResetURL}}"
        style="background-color: #4F46E5; color: white; padding: 12px 20px; text-decoration: none; border-radius: 6px;">
        Reset Password
      </a>
    </div>
    <p>If you didn't request this, please ignore this email.</p>
  </div>
</body>
</html>`
