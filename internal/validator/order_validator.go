package validator

import (
	"regexp"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	rePhone = regexp.MustCompile(`^\+?1?\d{9,15}$`)
)

// Emailは簡易メール形式をチェック
func Email(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 255 {
		return false
	}
	return reEmail.MatchString(s)
}

// Phoneは電話番号形式をチェック
func Phone(s string) bool {
	return rePhone.MatchString(strings.TrimSpace(s))
}

// ShippingAddressは配送先として最低限の体裁があるか。
// 番地・通り・市区、のような要素を緩くチェックする
func ShippingAddress(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 10 || len(s) > 255 {
		return false
	}
	required := []*regexp.Regexp{
		regexp.MustCompile(`\d+`),
		regexp.MustCompile(`[A-Za-z\s]+`),
	}
	for _, re := range required {
		if !re.MatchString(s) {
			return false
		}
	}
	return true
}
