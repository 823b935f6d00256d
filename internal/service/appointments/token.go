package appointments

import (
	"crypto/rand"
	"math/big"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateJoinToken возвращает случайный буквенно-цифровой токен длины domain.JoinTokenLength
func GenerateJoinToken() (string, error) {
	size := big.NewInt(int64(len(tokenAlphabet)))
	buf := make([]byte, domain.JoinTokenLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}
