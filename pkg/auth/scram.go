package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"
)

const nonceBytes = 24

// newNonce returns a fresh random nonce in base64 text form.
func newNonce() (string, error) {
	raw := make([]byte, nonceBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawStdEncoding.EncodeToString(raw), nil
}

// saltedPassword derives the PBKDF2 key per RFC 5802 Hi().
func saltedPassword(password string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, sha256.Size, sha256.New)
}

func hmacSHA256(key, msg []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

// clientProof computes ClientKey XOR HMAC(StoredKey, authMessage).
func clientProof(saltedPw []byte, authMessage string) []byte {
	clientKey := hmacSHA256(saltedPw, []byte("Client Key"))
	storedKey := sha256.Sum256(clientKey)
	sig := hmacSHA256(storedKey[:], []byte(authMessage))
	proof := make([]byte, len(clientKey))
	for i := range clientKey {
		proof[i] = clientKey[i] ^ sig[i]
	}
	return proof
}

// serverSignature computes HMAC(ServerKey, authMessage), the value the
// server must present to prove it held the salted password.
func serverSignature(saltedPw []byte, authMessage string) []byte {
	serverKey := hmacSHA256(saltedPw, []byte("Server Key"))
	return hmacSHA256(serverKey, []byte(authMessage))
}
