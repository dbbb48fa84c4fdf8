package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
)

// BuildHMACSignature computes the L2 request signature: HMAC-SHA256 over
// the canonical string timestamp+method+path+body, keyed with the
// base64url-decoded API secret, encoded back to base64url with padding.
//
// The concatenation has no separators and the body must be the exact byte
// string sent on the wire; any deviation results in a server-side 401 that
// cannot be diagnosed locally.
func BuildHMACSignature(secret string, timestamp int64, method, requestPath, body string) (string, error) {
	key, err := base64.URLEncoding.DecodeString(secret)
	if err != nil {
		return "", fmt.Errorf("decode api secret: %w", err)
	}

	message := strconv.FormatInt(timestamp, 10) + method + requestPath + body

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(message))

	return base64.URLEncoding.EncodeToString(mac.Sum(nil)), nil
}
