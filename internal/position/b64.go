package position

import (
	"fmt"
	"math/big"
	"strings"
)

// b64alphabet is the url-safe digit set used for compact position ids.
const b64alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

var big64 = big.NewInt(64)

func intToB64(n *big.Int) string {
	if n.Sign() == 0 {
		return string(b64alphabet[0])
	}
	var digits []byte
	rest := new(big.Int).Set(n)
	rem := new(big.Int)
	for rest.Sign() > 0 {
		rest.QuoRem(rest, big64, rem)
		digits = append(digits, b64alphabet[rem.Int64()])
	}
	// Digits come out least significant first.
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

func b64ToInt(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("empty base64 id")
	}
	n := new(big.Int)
	for _, ch := range s {
		idx := strings.IndexRune(b64alphabet, ch)
		if idx < 0 {
			return nil, fmt.Errorf("invalid base64 digit %q", ch)
		}
		n.Mul(n, big64)
		n.Add(n, big.NewInt(int64(idx)))
	}
	return n, nil
}
