package hashers

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestEncodeVerify_RoundTrip(t *testing.T) {
	encoded, err := Encode("s3cret")
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if !strings.HasPrefix(encoded, AlgPBKDF2SHA256+"$") {
		t.Fatalf("expected current scheme tag, got %q", encoded)
	}
	if !Verify(encoded, "s3cret") {
		t.Fatal("expected password to verify")
	}
	if Verify(encoded, "wrong") {
		t.Fatal("expected wrong password to fail")
	}
}

func TestEncode_UniqueSalts(t *testing.T) {
	a, err := Encode("same")
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	b, err := Encode("same")
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if a == b {
		t.Fatal("expected distinct salts for identical passwords")
	}
}

func TestVerify_LegacyPBKDF2SHA1(t *testing.T) {
	encoded, err := EncodeLegacy("legacy-pass")
	if err != nil {
		t.Fatalf("EncodeLegacy error: %v", err)
	}
	if !strings.HasPrefix(encoded, AlgPBKDF2SHA1+"$") {
		t.Fatalf("expected legacy scheme tag, got %q", encoded)
	}
	if !Verify(encoded, "legacy-pass") {
		t.Fatal("expected legacy hash to verify")
	}
	if Verify(encoded, "nope") {
		t.Fatal("expected wrong password to fail against legacy hash")
	}
}

func TestVerify_Bcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("oldpass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	if !Verify(string(hash), "oldpass") {
		t.Fatal("expected bcrypt hash to verify")
	}
	if Verify(string(hash), "other") {
		t.Fatal("expected wrong password to fail against bcrypt hash")
	}
}

func TestVerify_BcryptDollarTwoYVariant(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("oldpass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}

	variant := "$2y$" + strings.TrimPrefix(string(hash), "$2a$")
	if !Verify(variant, "oldpass") {
		t.Fatal("expected $2y$ variant to verify after prefix rewrite")
	}
}

func TestVerify_MalformedInputs(t *testing.T) {
	cases := []string{
		"",
		"$",
		"plaintext",
		"pbkdf2_sha256$notanumber$salt$AAAA",
		"pbkdf2_sha256$0$salt$AAAA",
		"pbkdf2_sha256$1000$salt$!!!not-base64!!!",
		"pbkdf2_sha256$1000$salt",
		"$2y$broken",
	}

	for _, encoded := range cases {
		if Verify(encoded, "whatever") {
			t.Fatalf("expected malformed hash %q to fail verification", encoded)
		}
	}
}

func TestNeedsUpdate(t *testing.T) {
	current, err := Encode("p")
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if NeedsUpdate(current) {
		t.Fatal("current-scheme hash should not need update")
	}

	legacy, err := EncodeLegacy("p")
	if err != nil {
		t.Fatalf("EncodeLegacy error: %v", err)
	}
	if !NeedsUpdate(legacy) {
		t.Fatal("legacy-scheme hash should need update")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("p"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	if !NeedsUpdate(string(hash)) {
		t.Fatal("bcrypt hash should need update")
	}
}
