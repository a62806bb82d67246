package utils

import (
	"github.com/pquerna/otp/totp"
)

// GenerateTOTPSecret creates a new TOTP key for an account. The caller stores
// key.Secret() and shows key.URL() (or a QR of it) to the user once.
func GenerateTOTPSecret(issuer string, account string) (secret string, url string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: account,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

func VerifyTOTP(secret string, code string) bool {
	return totp.Validate(code, secret)
}
