package crypto

import "testing"

const testKey = "0123456789abcdef0123456789abcdef"

func TestNewEncryptorRejectsBadKeyLength(t *testing.T) {
	if _, err := NewEncryptor("too-short"); err == nil {
		t.Error("short key accepted")
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	enc, err := NewEncryptor(testKey)
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}

	sealed, err := enc.Encrypt([]byte("asha@okbank"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if sealed == "asha@okbank" {
		t.Fatal("ciphertext equals plaintext")
	}

	plain, err := enc.Decrypt(sealed)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if string(plain) != "asha@okbank" {
		t.Errorf("round trip gave %q", plain)
	}
}

func TestEncryptProducesFreshNonces(t *testing.T) {
	enc, _ := NewEncryptor(testKey)
	a, _ := enc.Encrypt([]byte("same input"))
	b, _ := enc.Encrypt([]byte("same input"))
	if a == b {
		t.Error("two encryptions of the same input are identical")
	}
}

func TestDecryptRejectsGarbage(t *testing.T) {
	enc, _ := NewEncryptor(testKey)
	if _, err := enc.Decrypt("not base64 at all!!!"); err == nil {
		t.Error("invalid base64 accepted")
	}
	if _, err := enc.Decrypt("c2hvcnQ="); err == nil {
		t.Error("truncated ciphertext accepted")
	}
}
