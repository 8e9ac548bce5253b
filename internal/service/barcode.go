package service

import (
	"crypto/rand"
	"math/big"
)

// In-store EAN-13 range; GS1 reserves 200-299 for restricted distribution
const instorePrefix = "200"

// ean13CheckDigit computes the check digit for the first 12 digits of an EAN-13
func ean13CheckDigit(digits12 string) byte {
	sum := 0
	for i := 0; i < 12; i++ {
		d := int(digits12[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return byte('0' + (10-sum%10)%10)
}

// ValidEAN13 reports whether code is 13 digits with a correct check digit
func ValidEAN13(code string) bool {
	if len(code) != 13 {
		return false
	}
	for i := 0; i < 13; i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return ean13CheckDigit(code[:12]) == code[12]
}

func generateBarcode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000_000))
	if err != nil {
		return "", err
	}
	body := instorePrefix + leftPad(n.String(), 9)
	return body + string(ean13CheckDigit(body)), nil
}

func leftPad(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}
