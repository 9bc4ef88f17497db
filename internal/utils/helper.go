package utils

import (
	"strconv"
	"strings"
)

func StrPtr(s string) *string {
	return &s
}

func PtrString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func ToInt64(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

// NormalizePhone strips spaces and a leading +91 country code so the same
// number always maps to the same user record.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.TrimPrefix(phone, "+91")
	if len(phone) > 10 {
		phone = phone[len(phone)-10:]
	}
	return phone
}
