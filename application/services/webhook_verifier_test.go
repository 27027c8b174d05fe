package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"testing"
	"time"
)

func signPayload(secret []byte, timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(timestamp + "."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func newTestVerifier(secret []byte, now time.Time) *webhookVerifier {
	v := NewWebhookVerifier(secret, DefaultSignatureTolerance).(*webhookVerifier)
	v.now = func() time.Time { return now }
	return v
}

func TestWebhookVerifier_RoundTrip(t *testing.T) {
	secret := []byte("whsec_test_123")
	payload := []byte(`{"event":"video.completed","job_id":"abc-123","video_url":"https://x/y.mp4"}`)
	now := time.Unix(1700000000, 0)
	timestamp := strconv.FormatInt(now.Unix(), 10)

	v := newTestVerifier(secret, now)

	digest := signPayload(secret, timestamp, payload)

	if !v.Verify(payload, "sha256="+digest, timestamp) {
		t.Fatal("expected a correctly signed payload to verify")
	}

	if !v.Verify(payload, digest, timestamp) {
		t.Fatal("expected a prefixless digest to verify")
	}
}

func TestWebhookVerifier_TamperedInput(t *testing.T) {
	secret := []byte("whsec_test_123")
	payload := []byte(`{"event":"video.completed","job_id":"abc-123"}`)
	now := time.Unix(1700000000, 0)
	timestamp := strconv.FormatInt(now.Unix(), 10)

	v := newTestVerifier(secret, now)
	digest := signPayload(secret, timestamp, payload)

	for i := range payload {
		flipped := append([]byte(nil), payload...)
		flipped[i] ^= 0x01
		if v.Verify(flipped, "sha256="+digest, timestamp) {
			t.Fatalf("payload byte %d flipped but signature still verified", i)
		}
	}

	badDigest := []byte(digest)
	badDigest[0] ^= 0x01
	if v.Verify(payload, "sha256="+string(badDigest), timestamp) {
		t.Fatal("first digest byte flipped but signature still verified")
	}
	badDigest = []byte(digest)
	badDigest[len(badDigest)-1] ^= 0x01
	if v.Verify(payload, "sha256="+string(badDigest), timestamp) {
		t.Fatal("last digest byte flipped but signature still verified")
	}

	wrongSecret := newTestVerifier([]byte("whsec_test_124"), now)
	if wrongSecret.Verify(payload, "sha256="+digest, timestamp) {
		t.Fatal("different secret but signature still verified")
	}
}

func TestWebhookVerifier_ReplayWindow(t *testing.T) {
	secret := []byte("whsec_test_123")
	payload := []byte(`{"event":"video.completed","job_id":"abc-123"}`)
	now := time.Unix(1700000000, 0)

	v := newTestVerifier(secret, now)

	cases := []struct {
		name   string
		offset time.Duration
		want   bool
	}{
		{"fresh", 0, true},
		{"within past tolerance", -299 * time.Second, true},
		{"within future tolerance", 299 * time.Second, true},
		{"too old", -301 * time.Second, false},
		{"too far in the future", 301 * time.Second, false},
	}

	for _, tc := range cases {
		timestamp := strconv.FormatInt(now.Add(tc.offset).Unix(), 10)
		digest := signPayload(secret, timestamp, payload)
		if got := v.Verify(payload, "sha256="+digest, timestamp); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestWebhookVerifier_MalformedInput(t *testing.T) {
	secret := []byte("whsec_test_123")
	payload := []byte(`{}`)
	now := time.Unix(1700000000, 0)
	timestamp := strconv.FormatInt(now.Unix(), 10)
	digest := signPayload(secret, timestamp, payload)

	v := newTestVerifier(secret, now)

	if v.Verify(payload, "", timestamp) {
		t.Error("empty signature header verified")
	}
	if v.Verify(payload, "sha256=", timestamp) {
		t.Error("empty digest verified")
	}
	if v.Verify(payload, "sha256="+digest, "not-a-number") {
		t.Error("non-numeric timestamp verified")
	}
	if v.Verify(payload, "sha256="+digest, "") {
		t.Error("empty timestamp verified")
	}
	if v.Verify(payload, "sha256=zz", timestamp) {
		t.Error("garbage digest verified")
	}

	empty := newTestVerifier(nil, now)
	if empty.Verify(payload, "sha256="+signPayload(nil, timestamp, payload), timestamp) {
		t.Error("verifier with an empty secret verified")
	}
}
