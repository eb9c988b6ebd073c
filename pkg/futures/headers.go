package futures

import (
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"
)

// webSignature is the nonce/signature pair attached to authenticated
// requests that carry a body. The exchange's web frontend derives it from
// the WEB token and the compact JSON body, so requests replayed with a
// different body or a stale nonce are rejected.
type webSignature struct {
	nonce string
	sign  string
}

// signBody computes the web signature for the given token, compact JSON
// body, and timestamp: a salt is taken from md5(token+nonce) past its
// seventh hex digit, and the signature is md5(nonce+body+salt).
func signBody(token string, body []byte, now time.Time) webSignature {
	nonce := strconv.FormatInt(now.UnixMilli(), 10)
	salt := md5Hex([]byte(token + nonce))[7:]
	sign := md5Hex([]byte(nonce + string(body) + salt))
	return webSignature{nonce: nonce, sign: sign}
}

func md5Hex(b []byte) string {
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}

// applyHeaders populates the request headers: SDK defaults first, then the
// credential and signature when required, then the configured extra headers
// so they can override everything.
func (s *settings) applyHeaders(header http.Header, auth bool, body []byte, now time.Time) {
	header.Set("Content-Type", "application/json")
	header.Set("User-Agent", s.userAgent)

	if auth {
		header.Set("Authorization", s.authToken)
		if len(body) > 0 {
			sig := signBody(s.authToken, body, now)
			header.Set("x-mxc-nonce", sig.nonce)
			header.Set("x-mxc-sign", sig.sign)
		}
	}

	for k, v := range s.extraHeaders {
		header.Set(k, v)
	}
}
