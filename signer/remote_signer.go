package signer

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RemoteSigner is a signer that signs a payload using a remote API
type RemoteSigner struct {
	endpoint string
	apiKey   string
	address  string
	client   *http.Client
}

// NewRemoteSigner creates a new RemoteSigner for address.
//
// Every signature returned by the service is checked to recover to address.
func NewRemoteSigner(endpoint, apiKey, address string) (SignerProvider, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("endpoint required")
	}
	if strings.TrimSpace(address) == "" {
		return nil, fmt.Errorf("signer address required")
	}

	return &RemoteSigner{
		endpoint: endpoint,
		apiKey:   apiKey,
		address:  strings.ToLower(strings.TrimSpace(address)),
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

// Sign signs a digest using the remote API
func (s *RemoteSigner) Sign(digest []byte) ([]byte, error) {
	if len(digest) != 32 {
		return nil, fmt.Errorf("payload must be 32 bytes, got %d", len(digest))
	}

	reqBody, err := json.Marshal(map[string]any{
		"payload_hex": hex.EncodeToString(digest),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		context.Background(),
		http.MethodPost,
		s.endpoint,
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("x-api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call remote signer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote signer http %d", resp.StatusCode)
	}

	var out struct {
		SignatureHex string `json:"signature_hex"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode remote signer response: %w", err)
	}

	sig, err := hex.DecodeString(strings.TrimPrefix(out.SignatureHex, "0x"))
	if err != nil {
		return nil, err
	}
	if len(sig) != 65 {
		return nil, fmt.Errorf("invalid signature length %d", len(sig))
	}

	recovered, err := RecoverAddress(digest, sig)
	if err != nil {
		return nil, err
	}
	if recovered != s.address {
		return nil, fmt.Errorf("remote signature recovers to %s, want %s", recovered, s.address)
	}

	normalizeV(sig)
	return sig, nil
}

// GetAddress returns the address the remote service signs for.
func (s *RemoteSigner) GetAddress() string {
	return s.address
}
