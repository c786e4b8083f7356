package signer

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPrivHex = "0xa285ab66393c5fdda46d6fbad9e27fafd438254ab72ad5acb681a0e9f20f5d7b"
	testAddress = "0x2036c6cd85692f0fb2c26e6c6b2eced9e4478dfd"
)

func TestDefaultProvider(t *testing.T) {
	p, err := NewDefaultProvider(testPrivHex)
	require.NoError(t, err)
	assert.Equal(t, testAddress, p.GetAddress())

	digest := crypto.Keccak256([]byte("create_account"))
	sig, err := p.Sign(digest)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	assert.LessOrEqual(t, sig[64], byte(1))

	recovered, err := RecoverAddress(digest, sig)
	require.NoError(t, err)
	assert.Equal(t, testAddress, recovered)

	// 27/28 form recovers the same address.
	legacy := append([]byte(nil), sig...)
	legacy[64] += 27
	recovered, err = RecoverAddress(digest, legacy)
	require.NoError(t, err)
	assert.Equal(t, testAddress, recovered)
}

func TestDefaultProviderRejects(t *testing.T) {
	_, err := NewDefaultProvider("0xzz")
	require.Error(t, err)

	p, err := NewDefaultProvider(testPrivHex)
	require.NoError(t, err)
	_, err = p.Sign([]byte("short"))
	require.Error(t, err)
}

func TestRecoverAddressRejectsMalformed(t *testing.T) {
	_, err := RecoverAddress(make([]byte, 32), make([]byte, 64))
	require.Error(t, err)

	bad := make([]byte, 65)
	bad[64] = 9
	_, err = RecoverAddress(make([]byte, 32), bad)
	require.Error(t, err)
}

func TestGenerateKey(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "0x"))
	assert.Len(t, key, 66)

	p, err := NewDefaultProvider(key)
	require.NoError(t, err)
	assert.Len(t, p.GetAddress(), 42)
}

func newSigningServer(t *testing.T, apiKey string) *httptest.Server {
	t.Helper()
	priv, err := crypto.HexToECDSA(strings.TrimPrefix(testPrivHex, "0x"))
	require.NoError(t, err)

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != apiKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var req struct {
			PayloadHex string `json:"payload_hex"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		digest, _ := hex.DecodeString(req.PayloadHex)
		sig, err := crypto.Sign(digest, priv)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		sig[64] += 27
		_ = json.NewEncoder(w).Encode(map[string]string{"signature_hex": "0x" + hex.EncodeToString(sig)})
	}))
}

func TestRemoteSigner(t *testing.T) {
	server := newSigningServer(t, "secret")
	defer server.Close()

	digest := crypto.Keccak256([]byte("payload"))

	tests := []struct {
		name     string
		apiKey   string
		address  string
		validate func(t *testing.T, sig []byte, err error)
	}{
		{
			name:    "signs and normalizes v",
			apiKey:  "secret",
			address: testAddress,
			validate: func(t *testing.T, sig []byte, err error) {
				require.NoError(t, err)
				require.Len(t, sig, 65)
				assert.LessOrEqual(t, sig[64], byte(1))
			},
		},
		{
			name:    "rejects signature for another address",
			apiKey:  "secret",
			address: "0x70997970c51812dc3a010c7d01b50e0d17dc79c8",
			validate: func(t *testing.T, sig []byte, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "recovers to")
			},
		},
		{
			name:    "non-200 status",
			apiKey:  "wrong",
			address: testAddress,
			validate: func(t *testing.T, sig []byte, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "401")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewRemoteSigner(server.URL, tt.apiKey, tt.address)
			require.NoError(t, err)
			sig, err := s.Sign(digest)
			tt.validate(t, sig, err)
		})
	}
}

func TestNewRemoteSignerRequiresEndpoint(t *testing.T) {
	_, err := NewRemoteSigner(" ", "", testAddress)
	require.Error(t, err)
	_, err = NewRemoteSigner("http://localhost", "", "")
	require.Error(t, err)
}
