package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "long contract address",
			in:   "0x06a4a3988dec2621eb61a20ba0869098fc93bf6e2ffad4cbb7b56c536d220524",
			want: "0x06a4...0524",
		},
		{
			name: "evm address",
			in:   "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
			want: "0x7099...79C8",
		},
		{name: "empty", in: "", want: ""},
		{name: "short", in: "0x1234", want: "0x1234"},
		{name: "exactly ten", in: "0x12345678", want: "0x12345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestExplorerLinks(t *testing.T) {
	assert.Equal(t, "https://sepolia.etherscan.io/tx/0xabc", TxURL("https://sepolia.etherscan.io/", "0xabc"))
	assert.Equal(t, "https://etherscan.io/address/0xdef", ContractURL("https://etherscan.io", "0xdef"))
	assert.Empty(t, TxURL("", "0xabc"))
	assert.Empty(t, TxURL("https://etherscan.io", ""))
}
