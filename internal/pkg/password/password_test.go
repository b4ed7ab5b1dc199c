package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	plaintexts := []string{
		"CorrectHorse1",
		"",
		"päss wörd 123 ÄÖÜ",
		"short",
	}

	for _, p := range plaintexts {
		digest, err := h.Hash(p)
		if err != nil {
			t.Fatalf("Hash(%q) returned error: %v", p, err)
		}
		if digest == p {
			t.Errorf("Hash(%q) returned the plaintext", p)
		}
		if !h.Verify(p, digest) {
			t.Errorf("Verify(%q, Hash(%q)) = false, want true", p, p)
		}
		if h.Verify(p+"x", digest) {
			t.Errorf("Verify accepted wrong password for %q", p)
		}
	}
}

func TestHashSalting(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("SamePassword1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := h.Hash("SamePassword1")
	if err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Error("two hashes of the same password are identical, salting is broken")
	}
	if !h.Verify("SamePassword1", first) || !h.Verify("SamePassword1", second) {
		t.Error("both salted hashes must verify against the original password")
	}
}

func TestVerifyMalformedDigest(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	for _, digest := range []string{"", "not-a-bcrypt-hash", "$2a$garbage"} {
		if h.Verify("anything", digest) {
			t.Errorf("Verify(_, %q) = true, want false", digest)
		}
	}
}

func TestNewHasherCostClamping(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"below minimum", bcrypt.MinCost - 10, DefaultCost},
		{"above maximum", bcrypt.MaxCost + 1, DefaultCost},
		{"minimum", bcrypt.MinCost, bcrypt.MinCost},
		{"default", DefaultCost, DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHasher(tt.cost)
			if h.cost != tt.want {
				t.Errorf("NewHasher(%d).cost = %d, want %d", tt.cost, h.cost, tt.want)
			}
		})
	}
}

func TestValidateStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid", "Abcdefg1", true},
		{"valid long", "VeryLongPassword123", true},
		{"too short", "Abc1def", false},
		{"no uppercase", "abcdefg1", false},
		{"no lowercase", "ABCDEFG1", false},
		{"no digit", "Abcdefgh", false},
		{"empty", "", false},
		{"digits only", "12345678", false},
		{"exactly eight", "Abcdef12", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateStrength(tt.password); got != tt.want {
				t.Errorf("ValidateStrength(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}
