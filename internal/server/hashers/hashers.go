// Package hashers implements versioned password hashing. Stored hashes are
// tagged with their scheme so that old hashes keep verifying while new
// hashes are always produced with the current scheme.
//
// Supported schemes:
//
//	pbkdf2_sha256$<iterations>$<salt>$<base64 digest>   (current)
//	pbkdf2_sha1$<iterations>$<salt>$<base64 digest>     (legacy, fallback store)
//	$2a$... / $2b$... / $2y$...                         (bcrypt, historical)
//
// Verify never returns an error: malformed or unrecognized input simply
// fails verification.
package hashers

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"

	"github.com/dmitrijs2005/accountsvc/internal/common"
)

const (
	AlgPBKDF2SHA256 = "pbkdf2_sha256"
	AlgPBKDF2SHA1   = "pbkdf2_sha1"

	// Iteration counts match the schemes as deployed; lowering them would
	// break NeedsUpdate detection for existing rows.
	iterationsSHA256 = 870000
	iterationsSHA1   = 180000

	saltBytes = 12
)

// Encode hashes password with the current scheme and returns the tagged,
// storable form.
func Encode(password string) (string, error) {
	salt, err := common.MakeRandHexString(saltBytes)
	if err != nil {
		return "", err
	}
	return encodePBKDF2(password, salt, AlgPBKDF2SHA256, iterationsSHA256), nil
}

// EncodeLegacy hashes password with the fallback store's scheme. Only used
// when mirroring accounts into the legacy table.
func EncodeLegacy(password string) (string, error) {
	salt, err := common.MakeRandHexString(saltBytes)
	if err != nil {
		return "", err
	}
	return encodePBKDF2(password, salt, AlgPBKDF2SHA1, iterationsSHA1), nil
}

// Verify reports whether password matches the stored hash. Any scheme the
// stored value is tagged with is honored; untagged values fall through to
// bcrypt comparison with the historical $2y prefix rewritten to $2a.
func Verify(encoded, password string) bool {
	switch identify(encoded) {
	case AlgPBKDF2SHA256, AlgPBKDF2SHA1:
		return verifyPBKDF2(encoded, password)
	default:
		return verifyBcrypt(encoded, password)
	}
}

// NeedsUpdate reports whether a successfully verified hash should be
// re-encoded under the current scheme.
func NeedsUpdate(encoded string) bool {
	return identify(encoded) != AlgPBKDF2SHA256
}

func identify(encoded string) string {
	alg, _, found := strings.Cut(encoded, "$")
	if !found || alg == "" {
		return ""
	}
	return alg
}

func encodePBKDF2(password, salt, alg string, iterations int) string {
	digest := pbkdf2Key(password, salt, alg, iterations)
	return strings.Join([]string{
		alg,
		strconv.Itoa(iterations),
		salt,
		base64.StdEncoding.EncodeToString(digest),
	}, "$")
}

func pbkdf2Key(password, salt, alg string, iterations int) []byte {
	var newHash func() hash.Hash
	var keyLen int

	switch alg {
	case AlgPBKDF2SHA1:
		newHash, keyLen = sha1.New, sha1.Size
	default:
		newHash, keyLen = sha256.New, sha256.Size
	}

	return pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLen, newHash)
}

func verifyPBKDF2(encoded, password string) bool {
	parts := strings.SplitN(encoded, "$", 4)
	if len(parts) != 4 {
		return false
	}

	alg, iterations, salt, digest := parts[0], parts[1], parts[2], parts[3]

	iter, err := strconv.Atoi(iterations)
	if err != nil || iter <= 0 {
		return false
	}

	want, err := base64.StdEncoding.DecodeString(digest)
	if err != nil {
		return false
	}

	got := pbkdf2Key(password, salt, alg, iter)

	return subtle.ConstantTimeCompare(want, got) == 1
}

// Some historical rows carry the "$2y$" bcrypt variant produced by other
// runtimes; x/crypto/bcrypt only parses "$2a$"/"$2b$". The prefix rewrite is
// a compatibility shim, not a security boundary.
func verifyBcrypt(encoded, password string) bool {
	if strings.HasPrefix(encoded, "$2y$") {
		encoded = "$2a$" + encoded[len("$2y$"):]
	}
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
}
