package domain

const (
	MailTypeOTP     = "otp"
	MailTypeWelcome = "welcome"
)

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type OTPMailData struct {
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type WelcomeMailData struct {
	Name       string `json:"name"`
	EmployeeID string `json:"employeeID"`
	IsAdmin    bool   `json:"isAdmin"`
}
