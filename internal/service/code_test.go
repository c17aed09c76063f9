package service

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	digits := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Regexp(t, digits, code)
	}
}

func TestGenerateCode_RejectsBiasedBytes(t *testing.T) {
	tests := []struct {
		name    string
		random  []byte
		want    string
		wantErr bool
	}{
		{
			name:   "positive: all bytes usable",
			random: []byte{0, 11, 22, 33, 44, 249},
			want:   "012349",
		},
		{
			name:   "positive: high bytes skipped",
			random: []byte{250, 1, 255, 2, 3, 4, 5, 6, 9, 9, 9, 9},
			want:   "123456",
		},
		{
			name:    "negative: source exhausted",
			random:  []byte{250, 251, 252, 253, 254, 255},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := generateCode(bytes.NewReader(tt.random))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestCodeEqual(t *testing.T) {
	stored := HashCode("123456")

	tests := []struct {
		name string
		code string
		want bool
	}{
		{name: "positive: same code", code: "123456", want: true},
		{name: "negative: different code", code: "654321", want: false},
		{name: "negative: prefix", code: "12345", want: false},
		{name: "negative: empty", code: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeEqual(tt.code, stored))
		})
	}

	assert.NotContains(t, stored, "123456")
}
