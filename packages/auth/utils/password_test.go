package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == "correct-horse-battery" {
		t.Error("hash should not equal the plain password")
	}

	if !CheckPassword("correct-horse-battery", hash) {
		t.Error("CheckPassword should accept the right password")
	}
	if CheckPassword("wrong-password", hash) {
		t.Error("CheckPassword should reject a wrong password")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	second, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}
