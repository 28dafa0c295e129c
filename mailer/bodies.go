package mailer

import "fmt"

const (
	// SubjectOTP is the subject line of every OTP mail, for both the
	// registration and the recovery flow.
	SubjectOTP = "Your OTP Code"

	// SubjectBloodRequest is the subject line of a donor notification.
	SubjectBloodRequest = "Urgent Blood Donation Request"
)

// OTPBodies returns the plaintext and HTML bodies for an OTP mail.
func OTPBodies(code string) (text, html string) {
	text = fmt.Sprintf("Your OTP code is %s", code)
	html = fmt.Sprintf("<strong>Your OTP code is %s</strong>", code)
	return text, html
}

// BloodRequestBodies renders the donor notification embedding the
// requester's contact details.
func BloodRequestBodies(name, email, phone, bloodGroup, locality string) (text, html string) {
	text = fmt.Sprintf(`Dear Donor,

A blood donation request has been made in your locality.

Requester's Details:
- Name: %s
- Email: %s
- Phone: %s
- Required Blood Group: %s
- Address/Locality: %s

If you are available to donate, please contact the requester.

Thank you for your kindness.
`, name, email, phone, bloodGroup, locality)

	html = fmt.Sprintf(`<p>Dear Donor,</p>
<p>A blood donation request has been made in your locality.</p>
<p><strong>Requester's Details:</strong></p>
<ul>
  <li><strong>Name:</strong> %s</li>
  <li><strong>Email:</strong> %s</li>
  <li><strong>Phone:</strong> %s</li>
  <li><strong>Required Blood Group:</strong> %s</li>
  <li><strong>Address/Locality:</strong> %s</li>
</ul>
<p>If you are available to donate, please contact the requester.</p>
<p>Thank you for your kindness.</p>`, name, email, phone, bloodGroup, locality)

	return text, html
}
