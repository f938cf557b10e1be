package hdwallet

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateSupportedEntropySizes(t *testing.T) {
	cases := []struct {
		bits  int
		words int
	}{
		{bits: 128, words: 12},
		{bits: 160, words: 15},
		{bits: 192, words: 18},
		{bits: 224, words: 21},
		{bits: 256, words: 24},
	}
	for _, tc := range cases {
		mnemonic, err := Generate(tc.bits)
		if err != nil {
			t.Fatalf("generate(%d) returned error: %v", tc.bits, err)
		}
		if got := len(strings.Fields(mnemonic)); got != tc.words {
			t.Fatalf("generate(%d): expected %d words, got %d", tc.bits, tc.words, got)
		}
		if !Validate(mnemonic) {
			t.Fatalf("generate(%d) produced a mnemonic that fails its own checksum", tc.bits)
		}
	}
}

func TestGenerateRejectsUnsupportedEntropy(t *testing.T) {
	for _, bits := range []int{0, 64, 100, 129, 512, -128} {
		if _, err := Generate(bits); !errors.Is(err, ErrInvalidEntropy) {
			t.Fatalf("generate(%d): expected ErrInvalidEntropy, got %v", bits, err)
		}
	}
}

func TestValidate(t *testing.T) {
	if !Validate("legal winner thank year wave sausage worth useful legal winner thank yellow") {
		t.Fatalf("known-good mnemonic rejected")
	}
	if Validate("legal winner thank year wave sausage worth useful legal winner thank thank") {
		t.Fatalf("bad-checksum mnemonic accepted")
	}
	if Validate("not a mnemonic at all") {
		t.Fatalf("garbage accepted")
	}
}
