package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// ValidateSignature verifica la firma HMAC-SHA256 de un payload de webhook:
// HMAC sobre los bytes crudos con el secreto compartido, codificado base64 y
// comparado sin distinguir mayúsculas. No es una comparación de tiempo
// constante; el payload del webhook no depende del secreto.
func ValidateSignature(signature string, payload []byte, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return strings.EqualFold(strings.TrimSpace(signature), expected)
}
